package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poppolopoppo/vsexport/internal/base"
)

func loadTestConfig(t *testing.T, configFile string, flags ...string) (*Config, error) {
	t.Helper()
	root, _ := newRootCommand("vsexport")
	require.NoError(t, root.ParseFlags(flags))
	return LoadConfig(viper.New(), root, configFile)
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := loadTestConfig(t, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig, *config)

	format, err := config.ManifestCompression()
	require.NoError(t, err)
	assert.Equal(t, base.COMPRESSION_FORMAT_LZ4, format)
}

func TestLoadConfigFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "vsexport.yaml")
	require.NoError(t, os.WriteFile(filename, []byte("exporter: VS2019\nworkers: 3\nmanifest:\n  compression: zstd\n"), 0o644))

	config, err := loadTestConfig(t, filename)
	require.NoError(t, err)
	assert.Equal(t, "VS2019", config.Exporter)
	assert.Equal(t, 3, config.Workers)
	assert.True(t, config.Manifest.Enabled)

	format, err := config.ManifestCompression()
	require.NoError(t, err)
	assert.Equal(t, base.COMPRESSION_FORMAT_ZSTD, format)
}

func TestLoadConfigOverrides(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "vsexport.toml")
	require.NoError(t, os.WriteFile(filename, []byte("log_level = \"trace\"\nworkers = 3\n"), 0o644))

	t.Setenv("VSEXPORT_LOG_LEVEL", "warning")
	t.Setenv("VSEXPORT_MANIFEST_ENABLED", "false")

	config, err := loadTestConfig(t, filename, "--workers", "5")
	require.NoError(t, err)
	assert.Equal(t, "warning", config.LogLevel)
	assert.False(t, config.Manifest.Enabled)
	assert.Equal(t, 5, config.Workers)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadTestConfig(t, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	config := DefaultConfig
	config.Manifest.Compression = "gzip"
	_, err = config.ManifestCompression()
	assert.Error(t, err)
}

func TestLoadConfigDotenv(t *testing.T) {
	folder := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(folder, DOTENV_FILE), []byte("VSEXPORT_EXPORTER=VS2015\nVSEXPORT_WORKERS=4\n"), 0o644))
	t.Setenv("VSEXPORT_WORKERS", "6")

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(folder))
	t.Cleanup(func() {
		os.Unsetenv("VSEXPORT_EXPORTER")
		require.NoError(t, os.Chdir(cwd))
	})

	config, err := loadTestConfig(t, "")
	require.NoError(t, err)
	assert.Equal(t, "VS2015", config.Exporter)
	assert.Equal(t, 6, config.Workers)
}
