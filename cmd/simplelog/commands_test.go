package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestReadTrace reads a trace from a file.
func TestReadTrace(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "trace.txt")
	trace := "\tFunction Pkg.MyBP:ExecuteUbergraph_MyBP\n" +
		"\tFunction Pkg.MyBP:MyEvent\n"
	require.NoError(t, os.WriteFile(path, []byte(trace), 0600))

	got, err := readTrace(path)
	require.NoError(t, err)
	require.Equal(t, trace, got)

	_, err = readTrace(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}

// runApp runs the application with the given arguments after the global
// flags that keep it away from the user's config and log directory. It
// returns everything written to stdout. It swaps stdout and stdin, so tests
// calling it do not run in parallel.
func runApp(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()

	var out bytes.Buffer
	prevOut, prevIn := stdout, stdin
	stdout, stdin = &out, strings.NewReader(input)
	t.Cleanup(func() {
		stdout, stdin = prevOut, prevIn
	})

	argv := append([]string{
		"simplelog",
		"--configfile", filepath.Join(dir, "absent.conf"),
		"--logdir", dir,
		"--nologfile",
	}, args...)
	err := newApp().Run(argv)

	return out.String(), err
}

// TestLogCommand covers the log once and static variants of the log
// command.
func TestLogCommand(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantLines int
		wantTag   bool
	}{
		{
			name:      "repeated",
			args:      []string{"--repeat", "3"},
			wantLines: 3,
			wantTag:   true,
		},
		{
			name:      "once",
			args:      []string{"--once", "--repeat", "3"},
			wantLines: 1,
			wantTag:   true,
		},
		{
			name:      "static",
			args:      []string{"--static", "--repeat", "2"},
			wantLines: 2,
		},
		{
			name:      "once static",
			args:      []string{"--once", "--static", "--repeat", "3"},
			wantLines: 1,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			args := append([]string{"--role", "client", "log"},
				test.args...)
			args = append(args, "hello", "world")

			out, err := runApp(t, "", args...)
			require.NoError(t, err)

			line := "main.logMessage() : hello world"
			require.Equal(t, test.wantLines,
				strings.Count(out, line), out)

			if test.wantTag {
				require.Contains(t, out, "[Client] "+line)
			} else {
				require.NotContains(t, out, "[Client]")
			}
		})
	}
}

// TestLogCommandOnceMetrics checks that suppressed log once calls are
// counted.
func TestLogCommandOnceMetrics(t *testing.T) {
	out, err := runApp(t, "", "--metrics", "log", "--once", "--repeat",
		"4", "quiet")
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(out, "quiet"))
	require.Contains(t, out, "simplelog_once_suppressed_total{} 3")
}

// TestBlueprintCommand logs a trace read from stdin and checks the line is
// attributed to the function that invoked the dispatch wrapper.
func TestBlueprintCommand(t *testing.T) {
	trace := "\tFunction Pkg.Outer:Tick\n" +
		"\tFunction Pkg.MyBP:MyEvent\r\n" +
		"\tFunction Pkg.MyBP:ExecuteUbergraph_MyBP\n"

	out, err := runApp(t, trace, "--role", "listen", "blueprint",
		"--message", "opened", "--verbosity", "Warning")
	require.NoError(t, err)
	require.Contains(t, out, "[ListenServer] Pkg.MyBP:MyEvent : opened")
	require.Contains(t, out, "[WRN]")
	require.NotContains(t, out, "ExecuteUbergraph_")
}

// TestParseCommand prints the attributed caller of a trace file and fails
// on a trace without frames.
func TestParseCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.txt")
	require.NoError(t, os.WriteFile(path, []byte(
		"\tFunction Pkg.MyBP:MyEvent\r\tFunction Pkg.MyBP:Leaf\n",
	), 0600))

	out, err := runApp(t, "", "parse", "--trace", path, "--frames")
	require.NoError(t, err)
	require.Equal(t, "0: \"\\tFunction Pkg.MyBP:MyEvent\"\n"+
		"1: \"\\tFunction Pkg.MyBP:Leaf\"\n"+
		"Pkg.MyBP:Leaf\n", out)

	empty := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("\n\r\n"), 0600))

	out, err = runApp(t, "", "parse", "--trace", empty)
	require.ErrorContains(t, err, "no script frame")
	require.Equal(t, "None\n", out)

	_, err = runApp(t, "", "parse", "--trace", "-")
	require.ErrorContains(t, err, "no script frame")
}
