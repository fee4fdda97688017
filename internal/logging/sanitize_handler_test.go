package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logLine(t *testing.T, fn func(log *slog.Logger)) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	log := slog.New(NewSanitizeHandler(slog.NewJSONHandler(&buf, nil)))
	fn(log)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	return record
}

func TestReservedKeysAreRenamed(t *testing.T) {
	record := logLine(t, func(log *slog.Logger) {
		log.Info("incoming payload",
			slog.String("msg", "user supplied"),
			slog.String("level", "9000"),
			slog.String("client_name", "Alice"),
		)
	})

	assert.Equal(t, "incoming payload", record["msg"])
	assert.Equal(t, "user supplied", record["field_msg"])
	assert.Equal(t, "9000", record["field_level"])
	assert.Equal(t, "Alice", record["client_name"])
}

func TestSensitiveKeysAreMasked(t *testing.T) {
	record := logLine(t, func(log *slog.Logger) {
		log.Info("auth attempt",
			slog.String("token", "eyJhbGciOi..."),
			slog.String("api_key", "sk-live-123"),
			slog.String("user_id", "42"),
		)
	})

	assert.Equal(t, "***", record["token"])
	assert.Equal(t, "***", record["api_key"])
	assert.Equal(t, "42", record["user_id"])
}

func TestWithAttrsSanitized(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewSanitizeHandler(slog.NewJSONHandler(&buf, nil)))
	log = log.With(slog.String("password", "hunter2"))

	log.Info("scoped")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "***", record["password"])
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		raw      string
		expected slog.Level
	}{
		{raw: "debug", expected: slog.LevelDebug},
		{raw: "info", expected: slog.LevelInfo},
		{raw: "warn", expected: slog.LevelWarn},
		{raw: "warning", expected: slog.LevelWarn},
		{raw: "error", expected: slog.LevelError},
		{raw: "garbage", expected: slog.LevelInfo},
		{raw: "", expected: slog.LevelInfo},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.expected, parseLevel(tc.raw))
		})
	}
}
