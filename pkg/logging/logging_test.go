package logging

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	original := log.Logger
	originalLevel := zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf).Level(zerolog.TraceLevel)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(originalLevel)
	})
	return &buf
}

func TestGetLogFilePath(t *testing.T) {
	stateHome := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateHome)
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	got, err := getLogFilePath()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, filepath.Join(stateHome, "pathsfilter", "pathsfilter.log"), got)
	assert.DirExists(t, filepath.Join(stateHome, "pathsfilter"))
}

func TestGetLogger(t *testing.T) {
	buf := captureLogs(t)

	logger := GetLogger("filter.compiler")
	logger.Info().Msg("test message")

	assert.Contains(t, buf.String(), `"component":"filter.compiler"`)
	assert.Contains(t, buf.String(), "test message")
}

func TestLogCommand(t *testing.T) {
	buf := captureLogs(t)

	LogCommand("git", []string{"diff", "--name-status"})

	output := buf.String()
	assert.Contains(t, output, "git")
	assert.Contains(t, output, "--name-status")
	assert.Contains(t, output, "Executing command")
}

func TestLogOperationStart(t *testing.T) {
	buf := captureLogs(t)

	done := LogOperationStart(log.Logger, "match")
	assert.Contains(t, buf.String(), "Operation started")

	done()
	assert.Contains(t, buf.String(), "Operation completed")
	assert.Contains(t, buf.String(), "duration")
}
