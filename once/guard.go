// Package once provides latches that let a call site log at most once.
package once

import (
	"fmt"
	"runtime"

	"go.uber.org/atomic"
)

// Guard is a latch bound to one logical call site. The zero value is an
// unfired guard ready for use. A Guard must not be copied after first use.
type Guard struct {
	fired atomic.Bool
}

// Fire invokes fn if the guard has not fired yet and marks it fired. The
// check and the mark are a single compare-and-swap, so concurrent first
// callers observe exactly one invocation. It reports whether fn was called.
func (g *Guard) Fire(fn func()) bool {
	if !g.fired.CompareAndSwap(false, true) {
		return false
	}

	fn()

	return true
}

// Fired reports whether the guard has fired.
func (g *Guard) Fired() bool {
	return g.fired.Load()
}

// Reset re-arms the guard so the next Fire invokes its function again.
func (g *Guard) Reset() {
	g.fired.Store(false)
}

// CallSiteID returns a stable identifier of the form "/full/path/file.go:line"
// for the caller skip frames above CallSiteID's caller. The full path keeps
// files that share a directory and file name in different packages apart. An
// empty string is returned when the frame cannot be resolved.
func CallSiteID(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return ""
	}

	return fmt.Sprintf("%s:%d", file, line)
}
