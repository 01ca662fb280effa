package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, 3100, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, 25, cfg.Media.MaxUploadSizeMB)
	assert.Equal(t, "typeless", cfg.Storage.Folder)
	assert.Equal(t, "http://localhost:3000", cfg.URLs.Dashboard)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	yaml := `
port: 8080
env: production
jwt_secret: test-secret
database:
  dsn: "user:pass@tcp(db:3306)/typeless"
media:
  max_upload_size_mb: 50
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "user:pass@tcp(db:3306)/typeless", cfg.Database.DSN)
	assert.Equal(t, 50, cfg.Media.MaxUploadSizeMB)
}

func TestLoad_EnvFallback(t *testing.T) {
	t.Setenv("TYPELESS_PORT", "9090")
	t.Setenv("TYPELESS_JWT_SECRET", "from-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "from-env", cfg.JWTSecret)
}

func TestLoad_InvalidPort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: 99999"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not a port"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
