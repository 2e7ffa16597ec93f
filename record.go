package simplelog

import (
	"time"

	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/simplelogging/simplelog/overlay"
)

// LogRecord is a single log call, decorated and ready to be dispatched.
type LogRecord struct {
	// Category is the log category the line is written to.
	Category string

	// Verbosity is the severity of the line.
	Verbosity Verbosity

	// ContextTag is the role prefix, e.g. "[Client] ", or empty.
	ContextTag string

	// CallerName names the function that issued the call. It is never
	// empty when attribution failed, it is the sentinel "None" then.
	CallerName string

	// Message is the user supplied text, already formatted.
	Message string
}

// Line composes the text written to the sink and the overlay.
func (r LogRecord) Line() string {
	return r.ContextTag + r.CallerName + " : " + r.Message
}

// ScreenOptions controls whether and how a record is also drawn on the
// on-screen overlay.
type ScreenOptions struct {
	// Enabled pushes the line to the overlay.
	Enabled bool

	// Duration is how long the line stays on screen.
	Duration time.Duration

	// Color overrides the color derived from the verbosity.
	Color fn.Option[overlay.Color]
}

// ColorForVerbosity returns the overlay color used for lines of the given
// verbosity: red for errors, yellow for warnings and cyan otherwise.
func ColorForVerbosity(v Verbosity) overlay.Color {
	switch v {
	case VerbosityError:
		return overlay.Red
	case VerbosityWarning:
		return overlay.Yellow
	default:
		return overlay.Cyan
	}
}
