package simplelog

import (
	"github.com/btcsuite/btclog/v2"
)

// Sink receives every dispatched line. The sink is responsible for
// delivering it; failures are not reported back to the dispatcher.
type Sink interface {
	// Log writes line to category at the given verbosity.
	Log(category string, v Verbosity, line string)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(category string, v Verbosity, line string)

// Log calls f(category, v, line).
func (f SinkFunc) Log(category string, v Verbosity, line string) {
	f(category, v, line)
}

// CategoryLoggers hands out the btclog logger of a category, creating it if
// needed. build.CategoryManager implements it.
type CategoryLoggers interface {
	Register(category string) btclog.Logger
}

// BtclogSink writes lines through one btclog logger per category, so every
// category can have its own level and shows up with its own tag.
type BtclogSink struct {
	loggers CategoryLoggers
}

// A compile-time check to ensure BtclogSink implements the Sink interface.
var _ Sink = (*BtclogSink)(nil)

// NewBtclogSink returns a sink writing through the given category loggers.
func NewBtclogSink(loggers CategoryLoggers) *BtclogSink {
	return &BtclogSink{loggers: loggers}
}

// Log writes line to the logger of category at the level v maps to. Invalid
// verbosities never reach a sink through the Dispatcher and are dropped.
func (s *BtclogSink) Log(category string, v Verbosity, line string) {
	logger := s.loggers.Register(category)

	switch v {
	case VerbosityError:
		logger.Error(line)
	case VerbosityWarning:
		logger.Warn(line)
	case VerbosityLog:
		logger.Info(line)
	case VerbosityVerbose:
		logger.Debug(line)
	case VerbosityVeryVerbose:
		logger.Trace(line)
	}
}
