package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatherly/notify/pkg/logger"
)

func captureLog(t *testing.T, cfg appConfig) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	log := logger.New(append(buildLogOptions(cfg), logger.WithOutput(&buf))...)
	log.Debug("debug line")
	log.Info("info line")
	return &buf
}

func TestBuildLogOptions(t *testing.T) {
	t.Parallel()

	t.Run("production defaults to json with a single service attr", func(t *testing.T) {
		t.Parallel()

		buf := captureLog(t, appConfig{Env: "production"})

		line := strings.TrimSpace(buf.String())
		assert.NotContains(t, line, "debug line")

		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &record))
		assert.Equal(t, "notifyd", record["service"])
		assert.Equal(t, 1, strings.Count(line, `"service"`))
	})

	t.Run("development uses text at debug level", func(t *testing.T) {
		t.Parallel()

		buf := captureLog(t, appConfig{Env: "development"})

		out := buf.String()
		assert.Contains(t, out, "debug line")
		assert.Contains(t, out, "service=notifyd")
		assert.Equal(t, 2, strings.Count(out, "service=notifyd"), "one attr per record")
	})

	t.Run("explicit format overrides the profile", func(t *testing.T) {
		t.Parallel()

		buf := captureLog(t, appConfig{Env: "development", LogFormat: "json"})

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		for _, line := range lines {
			var record map[string]any
			require.NoError(t, json.Unmarshal([]byte(line), &record))
			assert.Equal(t, "notifyd", record["service"])
		}
	})
}
