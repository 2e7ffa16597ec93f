package simplelog

import (
	"errors"
	"fmt"
	"strings"

	btclogv1 "github.com/btcsuite/btclog"
	"github.com/btcsuite/btclog/v2"
)

// Verbosity is the severity a line is logged at. The numeric values match
// the host engine's verbosity enumeration so records can cross that
// boundary unchanged, but every conversion goes through verbosityTable.
type Verbosity uint8

const (
	// VerbosityNone is not a valid severity. It is the zero value so an
	// uninitialized verbosity is caught rather than logged.
	VerbosityNone Verbosity = 0

	// VerbosityError reports a failure that needs attention.
	VerbosityError Verbosity = 2

	// VerbosityWarning reports something unexpected that was recovered
	// from.
	VerbosityWarning Verbosity = 3

	// VerbosityLog is the regular informational level.
	VerbosityLog Verbosity = 4

	// VerbosityVerbose is for detail that is only useful when debugging.
	VerbosityVerbose Verbosity = 5

	// VerbosityVeryVerbose is for tracing.
	VerbosityVeryVerbose Verbosity = 6
)

// ErrInvalidVerbosity is returned or reported when a verbosity outside of
// the closed enumeration is used.
var ErrInvalidVerbosity = errors.New("invalid verbosity")

type verbosityInfo struct {
	name  string
	level btclogv1.Level
}

// verbosityTable is the mapping between our verbosities and the btclog
// levels the sink writes at. Anything not in it is invalid.
var verbosityTable = map[Verbosity]verbosityInfo{
	VerbosityError:       {name: "Error", level: btclog.LevelError},
	VerbosityWarning:     {name: "Warning", level: btclog.LevelWarn},
	VerbosityLog:         {name: "Log", level: btclog.LevelInfo},
	VerbosityVerbose:     {name: "Verbose", level: btclog.LevelDebug},
	VerbosityVeryVerbose: {name: "VeryVerbose", level: btclog.LevelTrace},
}

// Verbosities lists the valid verbosities from most to least severe.
var Verbosities = []Verbosity{
	VerbosityError, VerbosityWarning, VerbosityLog, VerbosityVerbose,
	VerbosityVeryVerbose,
}

// Valid reports whether v is part of the enumeration.
func (v Verbosity) Valid() bool {
	_, ok := verbosityTable[v]
	return ok
}

// String returns the name of the verbosity.
func (v Verbosity) String() string {
	if info, ok := verbosityTable[v]; ok {
		return info.name
	}

	return fmt.Sprintf("Verbosity(%d)", uint8(v))
}

// Level returns the btclog level v is written at.
func (v Verbosity) Level() (btclogv1.Level, error) {
	info, ok := verbosityTable[v]
	if !ok {
		return btclog.LevelOff, fmt.Errorf("%w: %d", ErrInvalidVerbosity,
			uint8(v))
	}

	return info.level, nil
}

// ParseVerbosity returns the verbosity with the given name. Names are
// matched without regard to case, and the btclog level names ("error",
// "warn", "info", "debug", "trace") are accepted as aliases.
func ParseVerbosity(name string) (Verbosity, error) {
	level, isLevel := btclog.LevelFromString(strings.ToLower(name))
	for _, v := range Verbosities {
		info := verbosityTable[v]
		if strings.EqualFold(info.name, name) ||
			(isLevel && info.level == level) {

			return v, nil
		}
	}

	return VerbosityNone, fmt.Errorf("%w: %q", ErrInvalidVerbosity, name)
}
