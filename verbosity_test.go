package simplelog

import (
	"testing"

	btclogv1 "github.com/btcsuite/btclog"
	"github.com/btcsuite/btclog/v2"
	"github.com/stretchr/testify/require"
)

// TestVerbosityTable checks the engine ordinals and the btclog mapping.
func TestVerbosityTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v       Verbosity
		ordinal uint8
		name    string
		level   btclogv1.Level
	}{
		{VerbosityError, 2, "Error", btclog.LevelError},
		{VerbosityWarning, 3, "Warning", btclog.LevelWarn},
		{VerbosityLog, 4, "Log", btclog.LevelInfo},
		{VerbosityVerbose, 5, "Verbose", btclog.LevelDebug},
		{VerbosityVeryVerbose, 6, "VeryVerbose", btclog.LevelTrace},
	}
	for _, test := range tests {
		require.Equal(t, test.ordinal, uint8(test.v))
		require.True(t, test.v.Valid())
		require.Equal(t, test.name, test.v.String())

		level, err := test.v.Level()
		require.NoError(t, err)
		require.Equal(t, test.level, level)
	}
	require.Len(t, Verbosities, len(tests))
}

// TestVerbosityInvalid checks values outside the enumeration.
func TestVerbosityInvalid(t *testing.T) {
	t.Parallel()

	for _, v := range []Verbosity{VerbosityNone, 1, 7, 200} {
		require.False(t, v.Valid())

		_, err := v.Level()
		require.ErrorIs(t, err, ErrInvalidVerbosity)
	}
	require.Equal(t, "Verbosity(0)", VerbosityNone.String())
}

// TestParseVerbosity covers names and level aliases.
func TestParseVerbosity(t *testing.T) {
	t.Parallel()

	valid := map[string]Verbosity{
		"Error":       VerbosityError,
		"error":       VerbosityError,
		"warning":     VerbosityWarning,
		"warn":        VerbosityWarning,
		"Log":         VerbosityLog,
		"info":        VerbosityLog,
		"VERBOSE":     VerbosityVerbose,
		"debug":       VerbosityVerbose,
		"VeryVerbose": VerbosityVeryVerbose,
		"trace":       VerbosityVeryVerbose,
	}
	for name, want := range valid {
		got, err := ParseVerbosity(name)
		require.NoError(t, err, name)
		require.Equal(t, want, got, name)
	}

	for _, name := range []string{"", "None", "off", "critical", "loud"} {
		_, err := ParseVerbosity(name)
		require.ErrorIs(t, err, ErrInvalidVerbosity, name)
	}
}

// TestEnumString covers lookups and the fallback text.
func TestEnumString(t *testing.T) {
	t.Parallel()

	names := []string{"Idle", "Running", "Dead"}
	require.Equal(t, "Running", EnumString(names, 1))
	require.Equal(t, "Dead", EnumString(names, uint8(2)))
	require.Equal(t, enumNotFound, EnumString(names, 3))
	require.Equal(t, enumNotFound, EnumString(names, -1))
	require.Equal(t, enumNotFound, EnumString[int](nil, 0))
}
