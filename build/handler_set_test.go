package build

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/btcsuite/btclog/v2"
	"github.com/stretchr/testify/require"
)

// TestHandlerSet checks that records reach every handler enabled for their
// level and that levels propagate to derived sets.
func TestHandlerSet(t *testing.T) {
	t.Parallel()

	var console, file bytes.Buffer
	set := NewHandlerSet(
		btclog.LevelInfo,
		btclog.NewDefaultHandler(&console, btclog.WithNoTimestamp()),
		btclog.NewDefaultHandler(&file, btclog.WithNoTimestamp()),
	)

	logger := btclog.NewSLogger(set.SubSystem("LogTemp"))
	logger.Info("to both")
	logger.Debug("filtered")

	for _, buf := range []*bytes.Buffer{&console, &file} {
		require.Contains(t, buf.String(), "LogTemp: to both")
		require.NotContains(t, buf.String(), "filtered")
	}

	logger.SetLevel(btclog.LevelDebug)
	require.Equal(t, btclog.LevelDebug, logger.Level())
	logger.Debug("now visible")
	require.Contains(t, console.String(), "now visible")
	require.Contains(t, file.String(), "now visible")

	prefixed := btclog.NewSLogger(
		set.SubSystem("LogAI").WithPrefix("[Client]"),
	)
	prefixed.Warn("prefixed line")
	require.Contains(t, console.String(), "[Client]")
	require.Contains(t, console.String(), "prefixed line")
}

// TestNewDefaultLoggers checks which handlers the config yields.
func TestNewDefaultLoggers(t *testing.T) {
	t.Parallel()

	cfg := DefaultLogConfig()
	require.NoError(t, cfg.Validate())

	var console bytes.Buffer
	handlers := NewDefaultLoggers(cfg, &console, nil, false)
	require.Len(t, handlers, 1)

	handlers = NewDefaultLoggers(
		cfg, &console, NewRotatingLogWriter(), false,
	)
	require.Len(t, handlers, 2)

	cfg.Console.Disable = true
	handlers = NewDefaultLoggers(
		cfg, &console, NewRotatingLogWriter(), true,
	)
	require.Len(t, handlers, 1)
}

// TestLogConfigValidate covers the rejected config combinations.
func TestLogConfigValidate(t *testing.T) {
	t.Parallel()

	cfg := DefaultLogConfig()
	cfg.File.Compressor = "lz4"
	require.ErrorContains(t, cfg.Validate(), "compressor")

	cfg = DefaultLogConfig()
	cfg.Console.CallSite = "medium"
	require.ErrorContains(t, cfg.Validate(), "call-site")

	cfg = DefaultLogConfig()
	cfg.File.MaxLogFileSize = 0
	require.Error(t, cfg.Validate())

	require.True(t, SupportedLogCompressor(Zstd))
	require.False(t, SupportedLogCompressor(""))
}

// TestRotatingLogWriter writes through the rotator and checks the file
// content once the writer is closed.
func TestRotatingLogWriter(t *testing.T) {
	t.Parallel()

	for _, compressor := range []string{Gzip, Zstd} {
		logFile := filepath.Join(t.TempDir(), "logs", "simplelog.log")

		cfg := DefaultLogConfig().File
		cfg.Compressor = compressor

		w := NewRotatingLogWriter()

		// Writes before initialisation are dropped silently.
		n, err := w.Write([]byte("dropped\n"))
		require.NoError(t, err)
		require.Equal(t, 8, n)

		require.NoError(t, w.InitLogRotator(cfg, logFile))

		handler := btclog.NewDefaultHandler(w, btclog.WithNoTimestamp())
		logger := btclog.NewSLogger(handler.SubSystem("LogTemp"))
		logger.Info("rotated line")

		require.NoError(t, w.Close())
		require.NoError(t, w.Close())

		content, err := os.ReadFile(logFile)
		require.NoError(t, err)
		require.Contains(t, string(content), "LogTemp: rotated line")
		require.NotContains(t, string(content), "dropped")
	}

	w := NewRotatingLogWriter()
	cfg := DefaultLogConfig().File
	cfg.Compressor = "lz4"
	err := w.InitLogRotator(cfg, filepath.Join(t.TempDir(), "x.log"))
	require.ErrorContains(t, err, "unknown log compressor")
}

// TestStyleString checks the escape sequences of styled console output.
func TestStyleString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "plain", styleString("plain"))
	require.Equal(t, "\x1b[1;31m[ERR]\x1b[0m",
		styleString("[ERR]", bold, red))

	require.Equal(t, red, levelStyle(btclog.LevelError))
	require.Equal(t, yellow, levelStyle(btclog.LevelWarn))
	require.Equal(t, faint, levelStyle(btclog.LevelTrace))
	require.Len(t, styleOptions(), 3)
}
