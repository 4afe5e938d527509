package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/foldersize/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 5, cfg.DefaultCount)
	assert.Zero(t, cfg.Concurrency)
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	cfg, err = config.Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `{"addr": "127.0.0.1:9000", "concurrency": 4, "shutdownTimeout": "3s", "logFormat": "json"}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "json", cfg.LogFormat)

	assert.Equal(t, config.Default().DefaultCount, cfg.DefaultCount)
	assert.Equal(t, config.Default().ReadHeaderTimeout, cfg.ReadHeaderTimeout)
}

func TestLoadRejectsBadFiles(t *testing.T) {
	_, err := config.Load(writeConfig(t, `{"addr":`))
	assert.ErrorContains(t, err, "parsing config")

	_, err = config.Load(writeConfig(t, `{"readHeaderTimeout": "soon"}`))
	assert.ErrorContains(t, err, "readHeaderTimeout")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"empty addr", func(c *config.Config) { c.Addr = "" }, "addr"},
		{"zero count", func(c *config.Config) { c.DefaultCount = 0 }, "default count"},
		{"negative concurrency", func(c *config.Config) { c.Concurrency = -1 }, "concurrency"},
		{"zero header timeout", func(c *config.Config) { c.ReadHeaderTimeout = 0 }, "read header timeout"},
		{"zero shutdown timeout", func(c *config.Config) { c.ShutdownTimeout = 0 }, "shutdown timeout"},
		{"bad log format", func(c *config.Config) { c.LogFormat = "xml" }, "log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)

			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}
