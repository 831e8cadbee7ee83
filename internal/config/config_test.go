package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
app:
  name: "ShortURL API"
  mode: "development"
  test_mode: false
server:
  port: 8080
  read_timeout: 10
  write_timeout: 10
database:
  host: "localhost"
  port: 3306
  user: "shorturl"
  password: "secret"
  name: "shorturl"
cache:
  host: ""
  port: 6379
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "ShortURL API", cfg.App.Name)
	assert.False(t, cfg.App.TestMode)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Empty(t, cfg.Database.DSN)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_DSN", "user:pass@tcp(db:3306)/shorturl")
	t.Setenv("TEST_MODE", "true")

	cfg, err := Load(writeConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "user:pass@tcp(db:3306)/shorturl", cfg.Database.DSN)
	assert.True(t, cfg.App.TestMode)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
