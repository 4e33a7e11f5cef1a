package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, 1816, cfg.Web.Port)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 100, cfg.RateLimit.Requests)
}

func TestLoadConfigYamlFile(t *testing.T) {
	cfile := filepath.Join(t.TempDir(), "catalogd.yml")
	data := []byte("web:\n  port: 9090\ndatabase:\n  name: catalog_test\n")
	require.NoError(t, os.WriteFile(cfile, data, 0o644))

	cfg := LoadConfig(cfile)
	assert.Equal(t, 9090, cfg.Web.Port)
	assert.Equal(t, "catalog_test", cfg.Database.Name)
	// untouched sections keep defaults
	assert.Equal(t, "postgres", cfg.Database.Type)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("CATALOGD_WEB_PORT", "8088")
	t.Setenv("CATALOGD_DB_NAME", "from_env")
	t.Setenv("CATALOGD_RATELIMIT_ENABLED", "false")

	cfg := LoadConfig("")
	assert.Equal(t, 8088, cfg.Web.Port)
	assert.Equal(t, "from_env", cfg.Database.Name)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg := LoadConfig("/nonexistent/catalogd.yml")
	assert.Equal(t, DefaultAppConfig().Web.Port, cfg.Web.Port)
}
