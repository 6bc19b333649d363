// pkg/logging/logging_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: XDG_STATE_HOME (temp dir)
// PURPOSE: Test logger setup, log file location and log helpers

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			t.Setenv("XDG_STATE_HOME", tempDir)

			var console bytes.Buffer
			SetupLoggerWithOutput(tt.verbosity, &console)

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())

			logPath := filepath.Join(tempDir, "typedisk", "typedisk.log")
			_, err := os.Stat(logPath)
			assert.NoError(t, err, "log file should exist at %s", logPath)
		})
	}
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
}

func TestSetupLogger_WritesBothOutputs(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tempDir)

	var console bytes.Buffer
	SetupLoggerWithOutput(0, &console)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	log.Warn().Str("dir", "/tmp/x").Msg("delete retry")

	assert.Contains(t, console.String(), "delete retry")
	assert.NotContains(t, console.String(), "\x1b[", "non-terminal output is uncolored")

	data, err := os.ReadFile(filepath.Join(tempDir, "typedisk", "typedisk.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"dir":"/tmp/x"`)
}

func TestLogFilePath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", filepath.Join(string(filepath.Separator), "custom", "state"))
	assert.Equal(t,
		filepath.Join(string(filepath.Separator), "custom", "state", "typedisk", "typedisk.log"),
		LogFilePath())

	t.Setenv("XDG_STATE_HOME", "")
	assert.True(t, filepath.IsAbs(LogFilePath()))
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	original := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = original })

	logger := GetLogger("disk")
	logger.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"component":"disk"`)
}

func TestLogCommand(t *testing.T) {
	var buf bytes.Buffer
	original := log.Logger
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	t.Cleanup(func() { log.Logger = original })

	LogCommand("rm", []string{"/tmp/a", "--force"})

	output := buf.String()
	assert.Contains(t, output, "rm")
	assert.Contains(t, output, "--force")
	assert.Contains(t, output, "Executing command")
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	done := LogOperationStart(logger, "copy-directory")
	assert.Contains(t, buf.String(), "Operation started")

	done()
	assert.Contains(t, buf.String(), "Operation completed")
	assert.Contains(t, buf.String(), "duration")
}
