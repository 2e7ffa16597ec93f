// Package callsite attributes a log line to the function that issued it,
// either from a textual script stack trace or from the Go call stack.
package callsite

import (
	"runtime"
	"strings"
)

const (
	// Sentinel is the caller name used when attribution is impossible.
	Sentinel = "None"

	// FunctionMarker is the token the scripting runtime puts in front of
	// every frame of a textual stack trace.
	FunctionMarker = "\tFunction "

	// DispatchMarker identifies the generated entry point a script graph
	// compiles to. Such frames forward into user logic and never name it.
	DispatchMarker = "ExecuteUbergraph_"

	// nativeCallerMsg is raised when a script-only entry point is reached
	// without any script frame on the stack.
	nativeCallerMsg = "script stack is empty: the scripted log entry " +
		"point should not be called natively, use the native helpers " +
		"instead"
)

// ExtractCallerName returns the name of the function that issued a scripted
// log call, given the script stack with the most recent frame last.
//
// The most recent frame is used unless it is a generated dispatch wrapper,
// in which case the frame that invoked the wrapper is used. The function
// marker is stripped from the chosen frame; when that leaves nothing the
// empty string is returned as is. An empty stack yields Sentinel and raises
// a diagnostic, since only native code can log without a script frame.
func ExtractCallerName(frames []string) string {
	var caller string
	switch n := len(frames); {
	case n >= 2 && strings.Contains(frames[n-1], DispatchMarker):
		caller = frames[n-2]

	case n >= 1:
		caller = frames[n-1]

	default:
		Ensure(nativeCallerMsg)

		return Sentinel
	}

	return strings.TrimPrefix(caller, FunctionMarker)
}

// SplitFrames splits a textual stack trace into its frames, one per line.
// "\n", "\r\n" and a lone "\r" all end a line, and the empty lines this
// produces are dropped. Leading tabs are kept since they are part of the
// marker.
func SplitFrames(trace string) []string {
	frames := strings.FieldsFunc(trace, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
	if frames == nil {
		return []string{}
	}

	return frames
}

// Attribute splits trace and extracts the caller name from it. The boolean
// result is false when the trace held no frame and Sentinel was returned.
func Attribute(trace string) (string, bool) {
	frames := SplitFrames(trace)

	return ExtractCallerName(frames), len(frames) > 0
}

// FuncName returns the short name of a Go function on the current call
// stack: skip 0 names the caller of FuncName, 1 its caller, and so on. It
// is the native counterpart of ExtractCallerName. Sentinel is returned when
// the frame cannot be resolved.
func FuncName(skip int) string {
	pcs := make([]uintptr, 1)

	// Skip runtime.Callers and FuncName itself.
	if runtime.Callers(skip+2, pcs) == 0 {
		return Sentinel
	}

	frame, _ := runtime.CallersFrames(pcs).Next()
	if frame.Function == "" {
		return Sentinel
	}

	return ShortFuncName(frame.Function)
}

// ShortFuncName reduces a fully qualified Go function name such as
// "github.com/org/repo/pkg.(*Server).Start" to "pkg.Server.Start".
func ShortFuncName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	return strings.NewReplacer("(*", "", "(", "", ")", "").Replace(name)
}
