package build

import (
	"fmt"
	"io"
	"strings"

	btclogv1 "github.com/btcsuite/btclog"
	"github.com/btcsuite/btclog/v2"
)

// NewDefaultLoggers returns the console handler and, when a rotating log
// writer is given, the log file handler, with the various config options
// applied. The returned slice leaves out loggers that are disabled. Styled
// output is only requested when isTerminal reports that the console is a
// terminal.
func NewDefaultLoggers(cfg *LogConfig, console io.Writer,
	rotator *RotatingLogWriter, isTerminal bool) []btclog.Handler {

	var handlers []btclog.Handler

	if !cfg.Console.Disable {
		consoleOpts := cfg.Console.HandlerOptions()
		if cfg.Console.Style && isTerminal {
			consoleOpts = append(consoleOpts, styleOptions()...)
		}

		handlers = append(handlers, btclog.NewDefaultHandler(
			console, consoleOpts...,
		))
	}

	if rotator != nil && !cfg.File.Disable {
		handlers = append(handlers, btclog.NewDefaultHandler(
			rotator, cfg.File.HandlerOptions()...,
		))
	}

	return handlers
}

// styleOptions returns the handler options coloring the level, call site
// and attribute keys of console lines.
func styleOptions() []btclog.HandlerOption {
	return []btclog.HandlerOption{
		btclog.WithStyledLevel(func(l btclogv1.Level) string {
			return styleString(
				fmt.Sprintf("[%s]", l), levelStyle(l),
			)
		}),
		btclog.WithStyledCallSite(func(file string, line int) string {
			return styleString(
				fmt.Sprintf("%s:%d", file, line), faint,
			)
		}),
		btclog.WithStyledKeys(func(key string) string {
			return styleString(key, bold)
		}),
	}
}

// ANSI SGR parameters used to style console output.
const (
	reset   = "0"
	bold    = "1"
	faint   = "2"
	red     = "31"
	yellow  = "33"
	magenta = "35"
	cyan    = "36"

	csi = "\x1b["
)

// levelStyle returns the style of a level tag.
func levelStyle(l btclogv1.Level) string {
	switch l {
	case btclog.LevelCritical:
		return magenta
	case btclog.LevelError:
		return red
	case btclog.LevelWarn:
		return yellow
	case btclog.LevelInfo:
		return cyan
	default:
		return faint
	}
}

// styleString wraps s in the given SGR styles followed by a reset.
func styleString(s string, styles ...string) string {
	if len(styles) == 0 {
		return s
	}

	return csi + strings.Join(styles, ";") + "m" + s + csi + reset + "m"
}
