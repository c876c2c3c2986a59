package logging_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/agentstation/coursemap/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	t.Helper()
	original := *logging.Default()
	level := zerolog.GlobalLevel()
	t.Cleanup(func() {
		logging.SetDefault(original)
		zerolog.SetGlobalLevel(level)
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := logging.DefaultConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.False(t, cfg.AddCaller)
}

func TestNewLoggerFromConfig(t *testing.T) {
	restoreDefault(t)

	t.Run("json to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "log.txt")
		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:  "debug",
			Format: "json",
			Output: path,
			Fields: map[string]any{"service": "coursemap"},
		})
		logger.Info().Msg("catalog loaded")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "catalog loaded")
		assert.Contains(t, string(content), `"service":"coursemap"`)
	})

	t.Run("console format", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "log.txt")
		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:   "info",
			Format:  "console",
			Output:  path,
			NoColor: true,
		})
		logger.Info().Str("dept", "COMS").Msg("console test")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "console test")
		assert.Contains(t, string(content), "INF")
	})

	t.Run("level filtering", func(t *testing.T) {
		tests := []struct {
			level     string
			shouldLog bool
		}{
			{"debug", true},
			{"info", true},
			{"warn", false},
			{"off", false},
			{"bogus", true},
		}
		for _, tc := range tests {
			t.Run(tc.level, func(t *testing.T) {
				var buf bytes.Buffer
				logger := logging.NewLoggerFromConfig(&logging.Config{Level: tc.level, Format: "json", Output: "discard"})
				logger = logger.Output(&buf)
				logger.Info().Msg("probe")
				assert.Equal(t, tc.shouldLog, buf.Len() > 0)
			})
		}
	})
}

func TestConfigure(t *testing.T) {
	restoreDefault(t)

	path := filepath.Join(t.TempDir(), "log.txt")
	logging.Configure(&logging.Config{Level: "warn", Format: "json", Output: path})

	logging.Debug().Msg("debug message")
	logging.Info().Msg("info message")
	logging.Warn().Msg("warn message")
	logging.Error().Msg("error message")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	output := string(content)
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_FIELDS", "env=test, region = east")

	cfg := logging.ConfigFromEnv()
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.Equal(t, map[string]any{"env": "test", "region": "east"}, cfg.Fields)
}

func TestContextLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithDepartment(ctx, "COMS")
	ctx = logging.WithCourse(ctx, "1004")
	ctx = logging.WithOperation(ctx, "enroll")
	ctx = logging.WithRequestID(ctx, "req-1")

	logging.FromContext(ctx).Info().Msg("student enrolled")

	tl.AssertContains(t, `"dept":"COMS"`)
	tl.AssertContains(t, `"course":"1004"`)
	tl.AssertContains(t, `"operation":"enroll"`)
	tl.AssertContains(t, `"request_id":"req-1"`)
	assert.Equal(t, "req-1", logging.RequestID(ctx))
	assert.Equal(t, 1, tl.Count())

	tl.Clear()
	assert.Equal(t, 0, tl.Count())
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	assert.Empty(t, logging.RequestID(context.Background()))
}

func TestSetDefault(t *testing.T) {
	restoreDefault(t)

	var buf bytes.Buffer
	logging.SetDefault(zerolog.New(&buf).Level(zerolog.InfoLevel))
	logging.Err(assert.AnError).Msg("boom")

	component := logging.Component("server")
	component.Info().Msg("listening")

	assert.Contains(t, buf.String(), assert.AnError.Error())
	assert.Contains(t, buf.String(), `"component":"server"`)
}
