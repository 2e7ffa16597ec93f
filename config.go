package simplelog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btclog/v2"
	flags "github.com/jessevdk/go-flags"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/simplelogging/simplelog/build"
	"github.com/simplelogging/simplelog/netmode"
)

const (
	defaultConfigFilename  = "simplelog.conf"
	defaultLogDirname      = "logs"
	defaultLogFilename     = "simplelog.log"
	defaultLogLevel        = "info"
	defaultVerbosity       = "Log"
	defaultRole            = "none"
	defaultMaxMessages     = 32
	defaultRefreshInterval = 100 * time.Millisecond
)

var (
	// DefaultAppDir is the default directory for the configuration file
	// and the logs, in the user's application data directory.
	DefaultAppDir = btcutil.AppDataDir("simplelog", false)

	// DefaultConfigFile is the default full path of the configuration
	// file.
	DefaultConfigFile = filepath.Join(DefaultAppDir, defaultConfigFilename)

	defaultLogDir = filepath.Join(DefaultAppDir, defaultLogDirname)
)

// ScreenConfig holds the options of the on-screen overlay.
//
//nolint:lll
type ScreenConfig struct {
	Disable         bool          `long:"disable" description:"Ignore all requests to draw lines on screen"`
	Duration        time.Duration `long:"duration" description:"How long a scripted line stays on screen when no duration is given"`
	MaxMessages     int           `long:"maxmessages" description:"The maximum number of lines on screen, the oldest is dropped first; 0 means unlimited"`
	RefreshInterval time.Duration `long:"refresh" description:"How often the overlay is redrawn"`
	NoColor         bool          `long:"nocolor" description:"Draw overlay lines without colors"`
}

// Config is the configuration of a simplelog backend, loaded from flags and
// an ini style config file.
//
//nolint:lll
type Config struct {
	ConfigFile string `short:"C" long:"configfile" description:"Path to configuration file"`
	LogDir     string `long:"logdir" description:"Directory to log output."`

	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level for all categories {trace, debug, info, warn, error, critical, off} -- You may also specify <category>=<level>,<category2>=<level>,... to set the log level for individual categories, which need not exist yet"`

	Verbosity string `long:"verbosity" description:"The verbosity lines are logged at when none is given {Error, Warning, Log, Verbose, VeryVerbose}"`
	Role      string `long:"role" description:"The net mode lines are tagged with when no execution context is given {none, standalone, dedicated, listen, client}"`

	Metrics bool `long:"metrics" description:"Count dispatched lines in prometheus metrics"`

	Screen *ScreenConfig `group:"screen" namespace:"screen"`

	Logging *build.LogConfig `group:"logging" namespace:"logging"`

	// verbosity and role are the parsed forms of Verbosity and Role, set
	// by ValidateConfig.
	verbosity Verbosity
	role      fn.Option[netmode.Mode]
}

// DefaultConfig returns all default values for the Config struct.
func DefaultConfig() Config {
	return Config{
		ConfigFile: DefaultConfigFile,
		LogDir:     defaultLogDir,
		DebugLevel: defaultLogLevel,
		Verbosity:  defaultVerbosity,
		Role:       defaultRole,
		Screen: &ScreenConfig{
			Duration:        DefaultScreenDuration,
			MaxMessages:     defaultMaxMessages,
			RefreshInterval: defaultRefreshInterval,
		},
		Logging: build.DefaultLogConfig(),
	}
}

// LoadConfig starts from the defaults and applies the ini file at
// configFile on top of them. A missing file is not an error, an empty path
// uses DefaultConfigFile. The merged configuration is validated.
func LoadConfig(configFile string) (*Config, error) {
	cfg := DefaultConfig()
	if configFile == "" {
		configFile = DefaultConfigFile
	}
	cfg.ConfigFile = CleanAndExpandPath(configFile)

	err := flags.IniParse(cfg.ConfigFile, &cfg)
	if err != nil {
		// A parse error is returned right away, anything else means
		// the file could not be read, which is fine since every
		// option has a default.
		var iniErr *flags.IniError
		if errors.As(err, &iniErr) {
			return nil, err
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("unable to read config file: %w",
				err)
		}
	}

	return ValidateConfig(cfg)
}

// ValidateConfig checks the given configuration to be sane. All file system
// paths are normalized and the string options are parsed. The cleaned up
// config is returned on success.
func ValidateConfig(cfg Config) (*Config, error) {
	cfg.LogDir = CleanAndExpandPath(cfg.LogDir)

	if cfg.Logging == nil {
		cfg.Logging = build.DefaultLogConfig()
	}
	if err := cfg.Logging.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logging config: %w", err)
	}

	// Check the debug level against a scratch backend so a typo is
	// reported before any logger exists.
	scratch := build.NewCategoryManager(
		btclog.NewDefaultHandler(io.Discard), btclog.LevelInfo,
	)
	if err := build.ParseAndSetDebugLevels(
		cfg.DebugLevel, scratch,
	); err != nil {
		return nil, err
	}

	v, err := ParseVerbosity(cfg.Verbosity)
	if err != nil {
		return nil, err
	}
	cfg.verbosity = v

	cfg.role, err = netmode.ParseMode(cfg.Role)
	if err != nil {
		return nil, err
	}

	if cfg.Screen == nil {
		cfg.Screen = DefaultConfig().Screen
	}
	switch {
	case cfg.Screen.Duration < 0:
		return nil, fmt.Errorf("screen duration must not be "+
			"negative: %v", cfg.Screen.Duration)

	case cfg.Screen.MaxMessages < 0:
		return nil, fmt.Errorf("screen max messages must not be "+
			"negative: %d", cfg.Screen.MaxMessages)

	case cfg.Screen.RefreshInterval <= 0:
		return nil, fmt.Errorf("screen refresh interval must be "+
			"positive: %v", cfg.Screen.RefreshInterval)
	}

	return &cfg, nil
}

// DefaultVerbosity returns the parsed Verbosity option. It is only set on
// configs returned by ValidateConfig.
func (c *Config) DefaultVerbosity() Verbosity {
	return c.verbosity
}

// DefaultRole returns the parsed Role option.
func (c *Config) DefaultRole() fn.Option[netmode.Mode] {
	return c.role
}

// LogFile returns the path of the rotating log file.
func (c *Config) LogFile() string {
	return filepath.Join(c.LogDir, defaultLogFilename)
}

// CleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
// This function is taken from https://github.com/btcsuite/btcd
func CleanAndExpandPath(path string) string {
	if path == "" {
		return ""
	}

	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		var homeDir string
		u, err := user.Current()
		if err == nil {
			homeDir = u.HomeDir
		} else {
			homeDir = os.Getenv("HOME")
		}

		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but the variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}
