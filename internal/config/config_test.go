package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_DefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))

	var missing *MissingFileError
	require.ErrorAs(t, err, &missing)
	require.NotNil(t, cfg)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "garment_db", cfg.Database.Name)
	assert.Equal(t, 15*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, "Asia/Dhaka", cfg.Factory.Timezone)
	assert.False(t, cfg.Archive.Usable())
}

func TestLoadFile_ReadsYAMLAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: 9001
upstream:
  base_url: http://factory.local
  timeout: 5s
archive:
  enabled: true
  bucket: sheets
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("ARCHIVE_ACCESS_KEY", "ak")
	t.Setenv("ARCHIVE_SECRET_KEY", "sk")

	cfg, err := LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, 9001, cfg.Server.Port)
	assert.Equal(t, "http://factory.local", cfg.Upstream.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.True(t, cfg.Archive.Usable())
	assert.Contains(t, cfg.DSN(), "@db.internal:5432/garment_db")
}

func TestLoadFile_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: [9001\n"), 0o644))

	cfg, err := LoadFile(path)

	require.Error(t, err)
	assert.Nil(t, cfg)
	var missing *MissingFileError
	assert.False(t, errors.As(err, &missing))
}
