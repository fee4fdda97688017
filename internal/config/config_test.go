package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 30*time.Minute, cfg.SessionTimeout)
	assert.Equal(t, 60, cfg.MinAdvanceMinutes)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://app.voicebook.io, https://admin.voicebook.io")
	t.Setenv("SESSION_TIMEOUT", "10m")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t,
		[]string{"https://app.voicebook.io", "https://admin.voicebook.io"},
		cfg.CORSOrigins,
	)
	assert.Equal(t, 10*time.Minute, cfg.SessionTimeout)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestSplitOrigins(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected []string
	}{
		{name: "single origin", raw: "https://a.example", expected: []string{"https://a.example"}},
		{name: "multiple with spaces", raw: "https://a.example , https://b.example", expected: []string{"https://a.example", "https://b.example"}},
		{name: "empty entries dropped", raw: "https://a.example,,", expected: []string{"https://a.example"}},
		{name: "wildcard", raw: "*", expected: []string{"*"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, splitOrigins(tc.raw))
		})
	}
}

func TestInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("LOCK_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.LockTimeout)
}
