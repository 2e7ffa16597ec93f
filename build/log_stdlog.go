//go:build stdlog
// +build stdlog

package build

// LoggingType is a log type where package loggers write straight to stdout,
// ignoring any backend.
const LoggingType = LogTypeStdOut
