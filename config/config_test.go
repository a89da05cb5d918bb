package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8288, config.ServerPort)
	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, 30*time.Minute, config.FormIdleTTL)
	assert.Equal(t, time.Minute, config.FormSweepInterval)
	assert.Equal(t, 2*time.Minute, config.GuardTTL)
	assert.Equal(t, time.Duration(0), config.ContactTimeout)
	assert.False(t, config.CacheEnabled())
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "SERVER_PORT=9000\n" +
		"CONTACT_ENDPOINT_URL= https://script.example.com/exec \n" +
		"CONTACT_TIMEOUT=5s\n" +
		"CACHE_ADDRESS=localhost\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	config, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, 9000, config.ServerPort)
	assert.Equal(t, "https://script.example.com/exec", config.ContactEndpointURL)
	assert.Equal(t, 5*time.Second, config.ContactTimeout)
	assert.True(t, config.CacheEnabled())
	assert.Equal(t, "localhost:6379", config.CacheAddr())
	assert.Equal(t, ":9000", config.ListenAddress())
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SERVER_PORT=9000\n"), 0o600))

	t.Setenv("SERVER_PORT", "9100")

	config, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, 9100, config.ServerPort)
}

func TestValidate(t *testing.T) {
	valid := Config{
		ServerPort:        8288,
		FormIdleTTL:       time.Minute,
		FormSweepInterval: time.Second,
		GuardTTL:          time.Minute,
	}

	tests := []struct {
		name     string
		mutate   func(c *Config)
		errorMsg string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "port zero", mutate: func(c *Config) { c.ServerPort = 0 }, errorMsg: "invalid SERVER_PORT"},
		{name: "port too high", mutate: func(c *Config) { c.ServerPort = 70000 }, errorMsg: "invalid SERVER_PORT"},
		{name: "negative timeout", mutate: func(c *Config) { c.ContactTimeout = -time.Second }, errorMsg: "CONTACT_TIMEOUT"},
		{name: "zero idle ttl", mutate: func(c *Config) { c.FormIdleTTL = 0 }, errorMsg: "FORM_IDLE_TTL"},
		{name: "zero sweep interval", mutate: func(c *Config) { c.FormSweepInterval = 0 }, errorMsg: "FORM_SWEEP_INTERVAL"},
		{name: "zero guard ttl", mutate: func(c *Config) { c.GuardTTL = 0 }, errorMsg: "GUARD_TTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid
			tt.mutate(&config)
			err := config.Validate()
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}
