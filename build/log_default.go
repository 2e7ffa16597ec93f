//go:build !stdlog && !nolog
// +build !stdlog,!nolog

package build

// LoggingType is a log type that routes package loggers to the backend the
// application installs.
const LoggingType = LogTypeDefault
