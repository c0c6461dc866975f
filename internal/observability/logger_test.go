package observability

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesConsoleAndFile(t *testing.T) {
	var console bytes.Buffer
	logPath := filepath.Join(t.TempDir(), "logs", "scraper.log")

	logger, err := NewLogger(Options{
		LogPath:    logPath,
		LogLevel:   "info",
		MaxSizeMB:  1,
		MaxBackups: 1,
		Console:    &console,
	})
	require.NoError(t, err)

	logger.Info("Page navigated", "url", "https://ekantipur.com/cartoon")
	logger.Debug("hidden at info level")
	require.NoError(t, logger.Close())

	assert.Contains(t, console.String(), "Page navigated")
	assert.NotContains(t, console.String(), "hidden at info level")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"url":"https://ekantipur.com/cartoon"`)
	assert.Contains(t, string(data), `"level":"info"`)
}

func TestLoggerUnknownLevelFallsBackToInfo(t *testing.T) {
	var console bytes.Buffer
	logger, err := NewLogger(Options{LogLevel: "loud", Console: &console})
	require.NoError(t, err)

	logger.With("component", "test").Warn("careful")
	assert.Contains(t, console.String(), "careful")
	assert.Contains(t, console.String(), "component")
	assert.NoError(t, logger.Close())
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Error("nothing happens", "k", 1)
	assert.NoError(t, logger.Close())
}
