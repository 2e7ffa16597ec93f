package netmode

import (
	"testing"

	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/stretchr/testify/require"
)

// orphan is a context object that is not placed in any world.
type orphan struct{}

func (orphan) World() World { return nil }

// TestTag checks the tag of every role, including an unknown one.
func TestTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role fn.Option[Mode]
		want string
	}{
		{fn.None[Mode](), ""},
		{fn.Some(Client), "[Client] "},
		{fn.Some(ListenServer), "[ListenServer] "},
		{fn.Some(DedicatedServer), "[DedicatedServer] "},
		{fn.Some(Standalone), "[Standalone] "},
		{fn.Some(Mode(42)), "[Standalone] "},
	}

	allowed := map[string]bool{
		"": true, "[Client] ": true, "[ListenServer] ": true,
		"[DedicatedServer] ": true, "[Standalone] ": true,
	}
	for _, test := range tests {
		got := Tag(test.role)
		require.Equal(t, test.want, got)
		require.True(t, allowed[got])
	}
}

// TestResolve checks role lookup from context objects.
func TestResolve(t *testing.T) {
	t.Parallel()

	require.True(t, Resolve(nil).IsNone())
	require.True(t, Resolve(orphan{}).IsNone())
	require.Equal(t, fn.Some(Client), Resolve(Static(Client)))

	require.Equal(t, "", ContextTag(nil))
	require.Equal(t, "", ContextTag(orphan{}))
	require.Equal(t, "[ListenServer] ", ContextTag(Static(ListenServer)))
}

// TestParseMode checks the config names of every mode.
func TestParseMode(t *testing.T) {
	t.Parallel()

	for _, mode := range []Mode{
		Standalone, DedicatedServer, ListenServer, Client,
	} {
		parsed, err := ParseMode(mode.String())
		require.NoError(t, err)
		require.Equal(t, fn.Some(mode), parsed)
	}

	parsed, err := ParseMode("none")
	require.NoError(t, err)
	require.True(t, parsed.IsNone())
	require.Nil(t, FromOption(parsed))
	require.Equal(t, "[Client] ", ContextTag(FromOption(fn.Some(Client))))

	_, err = ParseMode("spectator")
	require.Error(t, err)
	require.Equal(t, "mode(9)", Mode(9).String())
}
