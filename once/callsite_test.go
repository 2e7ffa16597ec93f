package once_test

import (
	"testing"

	"github.com/simplelogging/simplelog/once"
	sitea "github.com/simplelogging/simplelog/once/internal/sitea/sites"
	siteb "github.com/simplelogging/simplelog/once/internal/siteb/sites"
	"github.com/stretchr/testify/require"
)

// TestCallSiteIDSameDirName checks that two packages whose directory and file
// names match, calling from the same line, still latch separately.
func TestCallSiteIDSameDirName(t *testing.T) {
	t.Parallel()

	a, b := sitea.ID(), siteb.ID()
	require.NotEmpty(t, a)
	require.NotEqual(t, a, b)
	require.Contains(t, a, "sitea/sites/site.go:")
	require.Contains(t, b, "siteb/sites/site.go:")

	r := once.NewRegistry()
	var calls int
	require.True(t, r.Fire(a, func() { calls++ }))
	require.True(t, r.Fire(b, func() { calls++ }))
	require.False(t, r.Fire(a, func() { calls++ }))
	require.Equal(t, 2, calls)
}
