// Package simplelog decorates log lines with the role of the process and the
// name of the calling function, writes them to categorized btclog loggers
// and optionally draws them on an on-screen overlay.
package simplelog

import (
	"fmt"
	"time"

	"github.com/simplelogging/simplelog/callsite"
	"github.com/simplelogging/simplelog/netmode"
	"github.com/simplelogging/simplelog/once"
	"github.com/simplelogging/simplelog/overlay"
)

const (
	// TransientCategory is the category quick logs and scripted logs
	// without an explicit category are written to.
	TransientCategory = "LogSimpleTransientCategory"

	// DefaultScreenDuration is how long scripted lines stay on screen
	// unless told otherwise.
	DefaultScreenDuration = 5 * time.Second
)

// Logger is the native entry point: each method attributes the line to the
// Go function calling it and dispatches it. A Logger is safe for concurrent
// use.
type Logger struct {
	dispatcher *Dispatcher
	metrics    *Metrics

	// sites holds the guards of the LogOnce call sites.
	sites *once.Registry
}

// NewLogger returns a logger dispatching through d.
func NewLogger(d *Dispatcher) *Logger {
	return &Logger{
		dispatcher: d,
		metrics:    d.cfg.Metrics,
		sites:      once.NewRegistry(),
	}
}

// OnceSites returns the registry of LogOnce guards. Resetting it lets every
// LogOnce call site log again, e.g. at the start of a new session.
func (l *Logger) OnceSites() *once.Registry {
	return l.sites
}

// emit formats and dispatches a line attributed to caller, the short name
// of the Go function that called the exported method.
func (l *Logger) emit(caller, tag, category string, v Verbosity,
	format string, args []any) {

	l.dispatcher.Emit(LogRecord{
		Category:   category,
		Verbosity:  v,
		ContextTag: tag,
		CallerName: caller + "()",
		Message:    fmt.Sprintf(format, args...),
	}, ScreenOptions{})
}

// Log writes a line tagged with the role of ctx and the calling function:
// "[Client] pkg.Type.Method() : message".
func (l *Logger) Log(ctx netmode.ContextObject, category string,
	v Verbosity, format string, args ...any) {

	l.emit(
		callsite.FuncName(1), netmode.ContextTag(ctx), category, v,
		format, args,
	)
}

// LogStatic is Log for callers without an execution context. The line has
// no role tag.
func (l *Logger) LogStatic(category string, v Verbosity, format string,
	args ...any) {

	l.emit(callsite.FuncName(1), "", category, v, format, args)
}

// QuickLog writes a warning to TransientCategory. It is meant for throwaway
// "got here" lines while debugging.
func (l *Logger) QuickLog(ctx netmode.ContextObject, format string,
	args ...any) {

	l.emit(
		callsite.FuncName(1), netmode.ContextTag(ctx), TransientCategory,
		VerbosityWarning, format, args,
	)
}

// QuickLogStatic is QuickLog without a role tag.
func (l *Logger) QuickLogStatic(format string, args ...any) {
	l.emit(
		callsite.FuncName(1), "", TransientCategory, VerbosityWarning,
		format, args,
	)
}

// LogOnce is Log, but only the first call from a given source line is
// written. Later calls from the same line are counted and dropped until the
// registry returned by OnceSites is reset.
func (l *Logger) LogOnce(ctx netmode.ContextObject, category string,
	v Verbosity, format string, args ...any) {

	caller := callsite.FuncName(1)
	fired := l.sites.Fire(once.CallSiteID(1), func() {
		l.emit(
			caller, netmode.ContextTag(ctx), category, v, format,
			args,
		)
	})
	if !fired {
		l.metrics.onceSuppressedCall()
	}
}

// LogOnceStatic is LogOnce without a role tag.
func (l *Logger) LogOnceStatic(category string, v Verbosity, format string,
	args ...any) {

	caller := callsite.FuncName(1)
	fired := l.sites.Fire(once.CallSiteID(1), func() {
		l.emit(caller, "", category, v, format, args)
	})
	if !fired {
		l.metrics.onceSuppressedCall()
	}
}

// LogOnceGuard is LogOnce with a guard owned by the caller instead of one
// keyed by source line, e.g. a field of a long lived object.
func (l *Logger) LogOnceGuard(g *once.Guard, ctx netmode.ContextObject,
	category string, v Verbosity, format string, args ...any) {

	caller := callsite.FuncName(1)
	fired := g.Fire(func() {
		l.emit(
			caller, netmode.ContextTag(ctx), category, v, format,
			args,
		)
	})
	if !fired {
		l.metrics.onceSuppressedCall()
	}
}

// ScreenLog draws a line on the overlay for d. It is not written to any
// log category.
func (l *Logger) ScreenLog(d time.Duration, c overlay.Color, format string,
	args ...any) {

	l.dispatcher.Screen(d, c, fmt.Sprintf(format, args...))
}
