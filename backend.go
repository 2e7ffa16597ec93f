package simplelog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/btcsuite/btclog/v2"
	"github.com/lightningnetwork/lnd/clock"
	"github.com/lightningnetwork/lnd/ticker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/simplelogging/simplelog/build"
	"github.com/simplelogging/simplelog/callsite"
	"github.com/simplelogging/simplelog/logutils"
	"github.com/simplelogging/simplelog/netmode"
	"github.com/simplelogging/simplelog/overlay"
	"golang.org/x/term"
)

// Backend owns everything a configured process logs through: the console
// and file handlers, the category loggers built on them, the overlay queue
// and the Logger in front of it all.
type Backend struct {
	cfg *Config

	rotator    *build.RotatingLogWriter
	categories *build.CategoryManager
	queue      *overlay.Queue
	metrics    *Metrics

	dispatcher *Dispatcher
	logger     *Logger
}

// BackendConfig holds the runtime dependencies of a Backend that do not
// come from the config file.
type BackendConfig struct {
	// Console is where the console handler writes, os.Stdout if nil.
	Console io.Writer

	// Registerer receives the metrics when Config.Metrics is set. The
	// default prometheus registerer is used if nil.
	Registerer prometheus.Registerer

	// Clock drives overlay expiry. The wall clock is used if nil.
	Clock clock.Clock
}

// NewBackend sets up logging as described by cfg, which must have been
// returned by ValidateConfig or LoadConfig. Close must be called to flush
// the log file.
func NewBackend(cfg *Config, deps BackendConfig) (*Backend, error) {
	if deps.Console == nil {
		deps.Console = os.Stdout
	}
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Clock == nil {
		deps.Clock = clock.NewDefaultClock()
	}

	b := &Backend{cfg: cfg}

	if !cfg.Logging.File.Disable {
		b.rotator = build.NewRotatingLogWriter()
		err := b.rotator.InitLogRotator(cfg.Logging.File, cfg.LogFile())
		if err != nil {
			return nil, fmt.Errorf("unable to set up log file: %w",
				err)
		}
	}

	handlers := build.NewDefaultLoggers(
		cfg.Logging, deps.Console, b.rotator, isTerminal(deps.Console),
	)
	handler := build.NewHandlerSet(btclog.LevelInfo, handlers...)
	b.categories = build.NewCategoryManager(handler, btclog.LevelInfo)

	err := build.ParseAndSetDebugLevels(cfg.DebugLevel, b.categories)
	if err != nil {
		_ = b.Close()
		return nil, err
	}

	if cfg.Metrics {
		b.metrics, err = NewMetrics(deps.Registerer)
		if err != nil {
			_ = b.Close()
			return nil, err
		}
	}

	dispatcherCfg := DispatcherConfig{
		Sink:    NewBtclogSink(b.categories),
		Metrics: b.metrics,
	}
	if !cfg.Screen.Disable {
		b.queue = overlay.NewQueue(deps.Clock, cfg.Screen.MaxMessages)
		dispatcherCfg.Overlay = b.queue
	}

	b.dispatcher = NewDispatcher(dispatcherCfg)
	b.logger = NewLogger(b.dispatcher)

	return b, nil
}

// SetupLoggers routes the internal package loggers of this module to the
// backend, under their own categories. It replaces process wide state and
// is meant to be called once at startup.
func (b *Backend) SetupLoggers() {
	AddSubLogger(b.categories, Subsystem, UseLogger)
	AddSubLogger(b.categories, callsite.Subsystem, callsite.UseLogger)
	AddSubLogger(b.categories, overlay.Subsystem, overlay.UseLogger)

	log.Infof("%v", logutils.NewSeparatorClosure())
	log.Infof("simplelog version %s, %v build", build.Version(),
		build.Deployment)
	if build.IsDevBuild() {
		log.Warnf("Development build: package loggers without a " +
			"backend may write to stdout")
	}
	log.Debugf("Loaded configuration: %v", logutils.SpewLogClosure(b.cfg))
	log.Debugf("Known categories: %v", logutils.NewLogClosure(
		func() string {
			return strings.Join(
				b.categories.SupportedSubsystems(), ", ",
			)
		},
	))
}

// AddSubLogger creates the logger of subsystem on the given manager and
// hands it to the useLogger functions.
func AddSubLogger(m *build.CategoryManager, subsystem string,
	useLoggers ...func(btclog.Logger)) {

	logger := build.NewSubLogger(subsystem, m.GenSubLogger)
	for _, useLogger := range useLoggers {
		useLogger(logger)
	}
}

// Logger returns the logger for native call sites.
func (b *Backend) Logger() *Logger {
	return b.logger
}

// Dispatcher returns the dispatcher behind Logger.
func (b *Backend) Dispatcher() *Dispatcher {
	return b.dispatcher
}

// Categories returns the category loggers, e.g. to change levels at
// runtime with build.ParseAndSetDebugLevels.
func (b *Backend) Categories() *build.CategoryManager {
	return b.categories
}

// Overlay returns the overlay queue, or nil when the overlay is disabled.
func (b *Backend) Overlay() *overlay.Queue {
	return b.queue
}

// BlueprintParams returns DefaultBlueprintParams with the screen duration
// and verbosity taken from the configuration.
func (b *Backend) BlueprintParams() BlueprintParams {
	p := DefaultBlueprintParams()
	p.Verbosity = b.cfg.DefaultVerbosity()
	p.ScreenDuration = b.cfg.Screen.Duration

	return p
}

// ScreenDuration returns how long a line stays on screen when the caller
// gives no duration.
func (b *Backend) ScreenDuration() time.Duration {
	return b.cfg.Screen.Duration
}

// Context returns a context object carrying the configured default role,
// or nil when no role is configured.
func (b *Backend) Context() netmode.ContextObject {
	return netmode.FromOption(b.cfg.DefaultRole())
}

// NewRenderer returns a renderer drawing the overlay on w and a ticker at
// the configured refresh interval to run it with. It returns nil values
// when the overlay is disabled.
func (b *Backend) NewRenderer(w io.Writer) (*overlay.Renderer,
	ticker.Ticker) {

	if b.queue == nil {
		return nil, nil
	}

	noColor := b.cfg.Screen.NoColor || !isTerminal(w)

	return overlay.NewRenderer(w, b.queue, noColor),
		ticker.New(b.cfg.Screen.RefreshInterval)
}

// Close flushes and closes the log file, if any.
func (b *Backend) Close() error {
	if b.rotator == nil {
		return nil
	}

	return b.rotator.Close()
}

// isTerminal reports whether w is a terminal, which is what decides between
// styled and plain output.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
