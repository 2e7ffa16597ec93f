package simplelog

import (
	"time"

	"github.com/simplelogging/simplelog/callsite"
	"github.com/simplelogging/simplelog/netmode"
)

// BlueprintParams are the arguments of a scripted log call.
type BlueprintParams struct {
	// Message is the text to log.
	Message string

	// Category is the log category. It does not need to be declared
	// anywhere, unknown categories are created on first use.
	Category string

	// Verbosity is the severity of the line.
	Verbosity Verbosity

	// PrintToScreen also draws the line on the overlay.
	PrintToScreen bool

	// ScreenDuration is how long the line stays on screen. It is ignored
	// unless PrintToScreen is set.
	ScreenDuration time.Duration
}

// DefaultBlueprintParams returns the parameters a scripted log node starts
// with.
func DefaultBlueprintParams() BlueprintParams {
	return BlueprintParams{
		Message:        "Hello",
		Category:       TransientCategory,
		Verbosity:      VerbosityLog,
		ScreenDuration: DefaultScreenDuration,
	}
}

// BlueprintLog logs p.Message on behalf of a script. The caller is taken
// from frames, the script stack with the most recent frame last, and the
// role from ctx.
//
// The line has the form "[Role] Pkg.Graph:Function : message". When frames
// is empty the caller is reported as "None" and a diagnostic is raised:
// native code should use the Logger methods instead.
func (l *Logger) BlueprintLog(frames []string, ctx netmode.ContextObject,
	p BlueprintParams) {

	if len(frames) == 0 {
		l.metrics.attributionFailed()
	}

	l.dispatcher.Emit(LogRecord{
		Category:   p.Category,
		Verbosity:  p.Verbosity,
		ContextTag: netmode.ContextTag(ctx),
		CallerName: callsite.ExtractCallerName(frames),
		Message:    p.Message,
	}, ScreenOptions{
		Enabled:  p.PrintToScreen,
		Duration: p.ScreenDuration,
	})
}

// BlueprintLogTrace is BlueprintLog for a script stack in its textual form,
// one frame per line.
func (l *Logger) BlueprintLogTrace(trace string, ctx netmode.ContextObject,
	p BlueprintParams) {

	l.BlueprintLog(callsite.SplitFrames(trace), ctx, p)
}
