package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, DefaultServerBaseURL, c.ServerBaseURL)
	assert.Equal(t, 5*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, "arcanedex.db", c.DatabasePath)
	assert.Equal(t, 6, c.PageSize)
	assert.Equal(t, 10, c.OfflinePageSize)
	assert.True(t, c.ClearTokenOnDisconnect)
	require.NoError(t, c.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad url", func(c *Config) { c.ServerBaseURL = "not a url" }},
		{"zero interval", func(c *Config) { c.OnlineCheckInterval = 0 }},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }},
		{"zero page size", func(c *Config) { c.PageSize = 0 }},
		{"zero rps", func(c *Config) { c.RequestsPerSecond = 0 }},
		{"empty db path", func(c *Config) { c.DatabasePath = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)
			require.Error(t, c.Validate())
		})
	}
}

func TestParseEnv(t *testing.T) {
	t.Setenv("ARCANEDEX_SERVER_URL", "http://env:3000")
	t.Setenv("ARCANEDEX_ONLINE_CHECK_INTERVAL", "2s")
	t.Setenv("ARCANEDEX_PAGE_SIZE", "9")
	t.Setenv("ARCANEDEX_CLEAR_TOKEN_ON_DISCONNECT", "false")

	var c Config
	c.LoadDefaults()
	require.NoError(t, parseEnv(&c))

	assert.Equal(t, "http://env:3000", c.ServerBaseURL)
	assert.Equal(t, 2*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, 9, c.PageSize)
	assert.False(t, c.ClearTokenOnDisconnect)
}

func TestParseEnv_Invalid(t *testing.T) {
	t.Setenv("ARCANEDEX_PAGE_SIZE", "many")

	var c Config
	c.LoadDefaults()
	require.Error(t, parseEnv(&c))
}

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestParseFile_JSON(t *testing.T) {
	b, err := json.Marshal(map[string]any{
		"server_base_url":       "http://file:1",
		"online_check_interval": "10s",
		"page_size":             4,
	})
	require.NoError(t, err)
	path := writeTempFile(t, "cfg.json", b)

	var c Config
	c.LoadDefaults()
	require.NoError(t, parseFile(&c, []string{"-config", path}))

	assert.Equal(t, "http://file:1", c.ServerBaseURL)
	assert.Equal(t, 10*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, 4, c.PageSize)
	// untouched keys keep their defaults
	assert.Equal(t, "arcanedex.db", c.DatabasePath)
}

func TestParseFile_YAML(t *testing.T) {
	path := writeTempFile(t, "cfg.yaml", []byte("database_path: /tmp/a.db\nclear_token_on_disconnect: false\nrequest_timeout: 3s\n"))

	var c Config
	c.LoadDefaults()
	require.NoError(t, parseFile(&c, []string{"-c", path}))

	assert.Equal(t, "/tmp/a.db", c.DatabasePath)
	assert.False(t, c.ClearTokenOnDisconnect)
	assert.Equal(t, 3*time.Second, c.RequestTimeout)
}

func TestParseFile_NoFlagNoChange(t *testing.T) {
	var c Config
	c.LoadDefaults()
	want := c

	require.NoError(t, parseFile(&c, []string{"-a", "http://x:1"}))
	assert.Equal(t, want, c)
}

func TestParseFile_Missing(t *testing.T) {
	var c Config
	c.LoadDefaults()
	require.Error(t, parseFile(&c, []string{"-c", filepath.Join(t.TempDir(), "nope.json")}))
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantErr   bool
		wantURL   string
		wantEvery time.Duration
		wantPage  int
	}{
		{name: "ok", args: []string{"-a", "http://127.0.0.1:9090", "-i", "10", "-p", "3"},
			wantURL: "http://127.0.0.1:9090", wantEvery: 10 * time.Second, wantPage: 3},
		{name: "unknown flags ignored", args: []string{"-z", "1", "-i", "1"},
			wantURL: DefaultServerBaseURL, wantEvery: time.Second, wantPage: 6},
		{name: "incorrect check interval", args: []string{"-i", "abc"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()

			err := parseFlags(&c, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, c.ServerBaseURL)
			assert.Equal(t, tt.wantEvery, c.OnlineCheckInterval)
			assert.Equal(t, tt.wantPage, c.PageSize)
		})
	}
}

func TestLoad_Precedence(t *testing.T) {
	t.Setenv("ARCANEDEX_DATABASE_PATH", "env.db")
	t.Setenv("ARCANEDEX_SERVER_URL", "http://env:1")
	path := writeTempFile(t, "cfg.yml", []byte("server_base_url: http://file:2\n"))

	cfg, err := Load([]string{"-c", path, "-a", "http://flag:3"})
	require.NoError(t, err)

	assert.Equal(t, "http://flag:3", cfg.ServerBaseURL)
	assert.Equal(t, "env.db", cfg.DatabasePath)
}

func TestLoad_InvalidResult(t *testing.T) {
	_, err := Load([]string{"-p", "0"})
	require.Error(t, err)
}
