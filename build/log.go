package build

import (
	"fmt"
	"os"
	"strings"

	"github.com/btcsuite/btclog/v2"
)

// LogType indicates the type of logging selected by the build flags.
type LogType byte

const (
	// LogTypeNone indicates no logging.
	LogTypeNone LogType = iota

	// LogTypeStdOut all logging is written directly to stdout.
	LogTypeStdOut

	// LogTypeDefault logs through the backend of the application.
	LogTypeDefault
)

// String returns a human readable identifier for the logging type.
func (t LogType) String() string {
	switch t {
	case LogTypeNone:
		return "none"
	case LogTypeStdOut:
		return "stdout"
	case LogTypeDefault:
		return "default"
	default:
		return "unknown"
	}
}

// LogLevel is the level used by package loggers that fall back to stdout in
// development builds. It can be overridden at link time.
var LogLevel = "info"

// NewSubLogger constructs a new subsystem logger for the current build. In
// production builds and default development builds the logger comes from
// genSubLogger, the application's backend; stdlog development builds write
// to stdout instead. Without a backend the logger is disabled.
func NewSubLogger(subsystem string,
	genSubLogger func(string) btclog.Logger) btclog.Logger {

	switch Deployment {

	// For production builds, generate a new subsystem logger from the
	// primary log backend. If no function is provided, logging will be
	// disabled.
	case Production:
		if genSubLogger != nil {
			return genSubLogger(subsystem)
		}

	// For development builds, we must handle two distinct types of logging:
	// unit tests and running a tool wired to a real backend.
	case Development:
		switch LoggingType {

		// Default logging is used when a backend has been set up. We'll
		// use the optional sublogger constructor to mimic the
		// production behavior.
		case LogTypeDefault:
			if genSubLogger != nil {
				return genSubLogger(subsystem)
			}

		// Logging to stdout is used in unit tests. It is not important
		// that they share the same backend, since all output is written
		// to std out.
		case LogTypeStdOut:
			handler := btclog.NewDefaultHandler(os.Stdout)
			logger := btclog.NewSLogger(handler.SubSystem(subsystem))

			// Set the logging level of the stdout logger to use the
			// configured logging level specified by build flags.
			level, _ := btclog.LevelFromString(LogLevel)
			logger.SetLevel(level)

			return logger
		}
	}

	// For any other configurations, we'll disable logging.
	return btclog.Disabled
}

// SubLoggers is a type that holds a map of category loggers keyed by their
// category name.
type SubLoggers map[string]btclog.Logger

// LeveledSubLogger provides the ability to retrieve the category loggers of
// a backend and set their log levels individually or all at once.
type LeveledSubLogger interface {
	// SubLoggers returns the map of all registered category loggers.
	SubLoggers() SubLoggers

	// SupportedSubsystems returns the sorted names of the registered
	// categories.
	SupportedSubsystems() []string

	// SetLogLevel assigns an individual category logger a new log level.
	SetLogLevel(subsystemID string, logLevel string)

	// SetLogLevels assigns all category loggers the same new log level.
	SetLogLevels(logLevel string)
}

// CategoryRegistrar is implemented by backends whose categories are created
// on demand. ParseAndSetDebugLevels registers categories it does not know
// yet through it instead of rejecting them.
type CategoryRegistrar interface {
	Register(category string) btclog.Logger
}

// ParseAndSetDebugLevels parses a debug level specification of the form
// "level" or "[level,]category1=level1,category2=level2" and applies it to
// the given logger. An appropriate error is returned if anything is invalid,
// in which case no levels have been changed.
func ParseAndSetDebugLevels(level string, logger LeveledSubLogger) error {
	if strings.TrimSpace(level) == "" {
		return fmt.Errorf("invalid log level: %q", level)
	}

	var (
		globalLevel string
		pairs       [][2]string
	)
	for i, entry := range strings.Split(level, ",") {
		category, catLevel, isPair := strings.Cut(entry, "=")

		// Only the first entry may omit the category, in which case
		// it applies to every category.
		if !isPair {
			if i != 0 {
				return fmt.Errorf("the specified debug level "+
					"contains an invalid category/level "+
					"pair [%v]", entry)
			}
			if !validLogLevel(entry) {
				return fmt.Errorf("the specified debug level "+
					"[%v] is invalid", entry)
			}
			globalLevel = entry

			continue
		}

		if category == "" || strings.Contains(catLevel, "=") {
			return fmt.Errorf("the specified debug level has an "+
				"invalid format [%v] -- use format "+
				"category1=level1,category2=level2", entry)
		}
		if !validLogLevel(catLevel) {
			return fmt.Errorf("the specified debug level [%v] is "+
				"invalid", catLevel)
		}

		_, known := logger.SubLoggers()[category]
		_, canRegister := logger.(CategoryRegistrar)
		if !known && !canRegister {
			return fmt.Errorf("the specified category [%v] is "+
				"invalid -- supported categories are %v",
				category, logger.SupportedSubsystems())
		}

		pairs = append(pairs, [2]string{category, catLevel})
	}

	if globalLevel != "" {
		logger.SetLogLevels(globalLevel)
	}
	for _, pair := range pairs {
		if registrar, ok := logger.(CategoryRegistrar); ok {
			registrar.Register(pair[0])
		}
		logger.SetLogLevel(pair[0], pair[1])
	}

	return nil
}

// validLogLevel returns whether or not logLevel is a valid debug log level.
func validLogLevel(logLevel string) bool {
	_, ok := btclog.LevelFromString(logLevel)
	return ok
}
