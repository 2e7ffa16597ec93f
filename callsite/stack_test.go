package callsite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// captureDiagnostics installs a diagnostic receiver for the duration of the
// test and returns the messages it collected.
func captureDiagnostics(t *testing.T) *[]string {
	t.Helper()

	var msgs []string
	restore := SetDiagnostic(func(msg string) {
		msgs = append(msgs, msg)
	})
	t.Cleanup(restore)

	return &msgs
}

// TestExtractCallerName covers the frame selection and marker stripping
// rules.
func TestExtractCallerName(t *testing.T) {
	diags := captureDiagnostics(t)

	tests := []struct {
		name   string
		frames []string
		want   string
	}{
		{
			name:   "single frame",
			frames: []string{"\tFunction Pkg.MyBP:MyFunc"},
			want:   "Pkg.MyBP:MyFunc",
		},
		{
			name:   "single frame without marker",
			frames: []string{"Pkg.MyBP:MyFunc"},
			want:   "Pkg.MyBP:MyFunc",
		},
		{
			name: "single dispatch frame is kept",
			frames: []string{
				"\tFunction Pkg.MyBP:ExecuteUbergraph_MyBP",
			},
			want: "Pkg.MyBP:ExecuteUbergraph_MyBP",
		},
		{
			name: "last frame is a plain function",
			frames: []string{
				"\tFunction Pkg.MyBP:ExecuteUbergraph_MyBP",
				"\tFunction Pkg.MyBP:MyEvent",
			},
			want: "Pkg.MyBP:MyEvent",
		},
		{
			name: "last frame is the dispatch wrapper",
			frames: []string{
				"\tFunction Pkg.Outer:Tick",
				"\tFunction Pkg.MyBP:MyEvent",
				"\tFunction Pkg.MyBP:ExecuteUbergraph_MyBP",
			},
			want: "Pkg.MyBP:MyEvent",
		},
		{
			name: "marker only in the middle",
			frames: []string{
				"\tFunction Pkg.MyBP:ExecuteUbergraph_MyBP",
				"\tFunction Pkg.MyBP:Other",
				"\tFunction Pkg.MyBP:Leaf",
			},
			want: "Pkg.MyBP:Leaf",
		},
		{
			name:   "marker is only stripped at the start",
			frames: []string{"Pkg.X:Y\tFunction Z"},
			want:   "Pkg.X:Y\tFunction Z",
		},
		{
			name:   "stripping leaves nothing",
			frames: []string{"\tFunction "},
			want:   "",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.want, ExtractCallerName(test.frames))
		})
	}

	require.Empty(t, *diags)
}

// TestExtractCallerNameEmpty checks the sentinel and the diagnostic raised
// for an empty stack.
func TestExtractCallerNameEmpty(t *testing.T) {
	diags := captureDiagnostics(t)

	require.Equal(t, Sentinel, ExtractCallerName(nil))
	require.Equal(t, Sentinel, ExtractCallerName([]string{}))
	require.Len(t, *diags, 2)
	require.Contains(t, (*diags)[0], "natively")
}

// TestExtractCallerNameProperty checks, over generated stacks, that the
// chosen frame is the last one unless it is a dispatch wrapper, and that the
// marker is only ever stripped from the front.
func TestExtractCallerNameProperty(t *testing.T) {
	captureDiagnostics(t)

	rapid.Check(t, func(t *rapid.T) {
		frames := rapid.SliceOfN(frameGen(), 1, 8).Draw(t, "frames")

		n := len(frames)
		chosen := frames[n-1]
		if n >= 2 && strings.Contains(chosen, DispatchMarker) {
			chosen = frames[n-2]
		}

		got := ExtractCallerName(frames)
		require.Equal(t, strings.TrimPrefix(chosen, FunctionMarker), got)

		if strings.HasPrefix(chosen, FunctionMarker) {
			require.Equal(t, FunctionMarker+got, chosen)
		} else {
			require.Equal(t, chosen, got)
		}
	})
}

// frameGen draws a script frame: a name with the dispatch marker placed at
// a random position or left out, with or without the function marker.
func frameGen() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		name := rapid.StringMatching(`[A-Za-z][A-Za-z0-9_.:]{0,12}`).
			Draw(t, "name")

		if rapid.Bool().Draw(t, "dispatch") {
			at := rapid.IntRange(0, len(name)).Draw(t, "at")
			name = name[:at] + DispatchMarker + name[at:]
		}

		if rapid.Bool().Draw(t, "marker") {
			name = FunctionMarker + name
		}

		return name
	})
}

// TestSplitFramesAndAttribute checks line splitting of a raw trace.
func TestSplitFramesAndAttribute(t *testing.T) {
	diags := captureDiagnostics(t)

	trace := "\tFunction Pkg.MyBP:ExecuteUbergraph_MyBP\r\n\n" +
		"\tFunction Pkg.MyBP:MyEvent\n"
	require.Equal(t, []string{
		"\tFunction Pkg.MyBP:ExecuteUbergraph_MyBP",
		"\tFunction Pkg.MyBP:MyEvent",
	}, SplitFrames(trace))

	name, ok := Attribute(trace)
	require.True(t, ok)
	require.Equal(t, "Pkg.MyBP:MyEvent", name)

	name, ok = Attribute("\n\r\n")
	require.False(t, ok)
	require.Equal(t, Sentinel, name)
	require.Len(t, *diags, 1)

	// A lone carriage return ends a frame too.
	require.Equal(t, []string{
		"\tFunction Pkg.A:First", "\tFunction Pkg.B:Second",
		"\tFunction Pkg.C:Third",
	}, SplitFrames("\tFunction Pkg.A:First\r\tFunction Pkg.B:Second"+
		"\r\r\tFunction Pkg.C:Third\r"))

	name, ok = Attribute("\tFunction A:Entry\r\tFunction A:Leaf")
	require.True(t, ok)
	require.Equal(t, "A:Leaf", name)

	name, ok = Attribute("\r")
	require.False(t, ok)
	require.Equal(t, Sentinel, name)
	require.Len(t, *diags, 2)
}

type widget struct{}

//go:noinline
func (w *widget) method() string {
	return FuncName(0)
}

//go:noinline
func helperName() string {
	return FuncName(1)
}

// TestFuncName checks native caller attribution.
func TestFuncName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "callsite.TestFuncName", FuncName(0))
	require.Equal(t, "callsite.widget.method", (&widget{}).method())
	require.Equal(t, "callsite.TestFuncName", helperName())
	require.Equal(t, Sentinel, FuncName(1000))
}

// TestShortFuncName covers receiver and closure names.
func TestShortFuncName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"github.com/org/repo/pkg.(*Server).Start": "pkg.Server.Start",
		"github.com/org/repo/pkg.Value.String":    "pkg.Value.String",
		"main.main.func1":                         "main.main.func1",
		"pkg.F":                                   "pkg.F",
	}
	for in, want := range tests {
		require.Equal(t, want, ShortFuncName(in), in)
	}
}

// TestDefaultDiagnosticReportsOnce makes sure the default receiver can be
// restored and latches per message.
func TestDefaultDiagnosticReportsOnce(t *testing.T) {
	restore := SetDiagnostic(nil)
	defer restore()

	before := reported.Suppressed()
	Ensure("repeated misuse")
	Ensure("repeated misuse")
	require.Equal(t, before+1, reported.Suppressed())
}
