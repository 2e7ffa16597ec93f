package callsite

import (
	"sync"

	"github.com/simplelogging/simplelog/once"
)

// DiagnosticFunc receives developer facing diagnostics: conditions that are
// not fatal but point at a misuse that should be fixed at the call site.
type DiagnosticFunc func(msg string)

var (
	diagnosticMu sync.RWMutex
	diagnostic   DiagnosticFunc = logDiagnostic

	// reported latches the default diagnostic per message so a misuse in
	// a hot loop is reported once rather than flooding the log.
	reported = once.NewRegistry()
)

// logDiagnostic is the default DiagnosticFunc. It reports each distinct
// message once at error level through the package logger.
func logDiagnostic(msg string) {
	reported.Fire(msg, func() {
		log.Errorf("Ensure condition failed: %v", msg)
	})
}

// SetDiagnostic installs fn as the receiver of diagnostics and returns a
// function restoring the previous one. Passing nil restores the default.
func SetDiagnostic(fn DiagnosticFunc) func() {
	if fn == nil {
		fn = logDiagnostic
	}

	diagnosticMu.Lock()
	prev := diagnostic
	diagnostic = fn
	diagnosticMu.Unlock()

	return func() {
		diagnosticMu.Lock()
		diagnostic = prev
		diagnosticMu.Unlock()
	}
}

// Ensure raises a diagnostic with msg. It never panics and never returns an
// error: the condition it reports has already been handled by a fallback.
func Ensure(msg string) {
	diagnosticMu.RLock()
	fn := diagnostic
	diagnosticMu.RUnlock()

	fn(msg)
}
