package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultCacheDir, cfg.CacheDir)
	assert.Equal(t, DefaultCacheTTL, cfg.CacheTTL)
	assert.Equal(t, DefaultMinBlockSize, cfg.MinBlock)
	assert.Equal(t, DefaultMaxFiles, cfg.MaxFiles)
	assert.Equal(t, DefaultFormat, cfg.Format)
	assert.False(t, cfg.Verbose)
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empatia.yaml")

	content := "format: json\nmin_block_size: 8\ncache_ttl: 2h\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 8, cfg.MinBlock)
	assert.Equal(t, 2*time.Hour, cfg.CacheTTL)
	assert.Equal(t, DefaultMaxFiles, cfg.MaxFiles)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("EMPATIA_FORMAT", "yaml")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.Format)
}

func TestLoadRejectsInvalidFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empatia.yaml")

	require.NoError(t, os.WriteFile(path, []byte("format: pdf\n"), 0o600))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidFormat)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	base := Config{
		CacheDir: DefaultCacheDir,
		CacheTTL: DefaultCacheTTL,
		MinBlock: DefaultMinBlockSize,
		MaxFiles: DefaultMaxFiles,
		Format:   DefaultFormat,
	}

	require.NoError(t, base.Validate())

	broken := base
	broken.MinBlock = 0
	require.ErrorIs(t, broken.Validate(), ErrInvalidMinBlockSize)

	broken = base
	broken.MaxFiles = -1
	require.ErrorIs(t, broken.Validate(), ErrInvalidMaxFiles)

	broken = base
	broken.CacheTTL = -time.Hour
	require.ErrorIs(t, broken.Validate(), ErrInvalidCacheTTL)

	broken = base
	broken.Format = "pdf"
	require.ErrorIs(t, broken.Validate(), ErrInvalidFormat)
}
