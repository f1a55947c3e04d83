package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("VIMICONS_CONFIG_PATH", filepath.Join(t.TempDir(), "nested", "config.json"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv("VIMICONS_CONFIG_PATH", path)

	cfg := Default()
	cfg.Enabled = false
	cfg.IconSize = 22
	require.NoError(t, Save(cfg))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")

	loaded, err := Load()
	require.NoError(t, err)
	assert.False(t, loaded.Enabled)
	assert.Equal(t, 22, loaded.IconSize)
	assert.Equal(t, FallbackFail, loaded.Fallback)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("VIMICONS_CONFIG_PATH", filepath.Join(t.TempDir(), "config.json"))
	t.Setenv("VIMICONS_DEBUG", "true")
	t.Setenv("VIMICONS_ASSET_DIR", "/opt/ideavim/assets")
	t.Setenv("VIMICONS_FALLBACK", "Placeholder")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "/opt/ideavim/assets", cfg.AssetDir)
	assert.Equal(t, FallbackPlaceholder, cfg.Fallback)
}

func TestLoadRejectsBadDebugValue(t *testing.T) {
	t.Setenv("VIMICONS_CONFIG_PATH", filepath.Join(t.TempDir(), "config.json"))
	t.Setenv("VIMICONS_DEBUG", "sometimes")

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "zero value normalised", cfg: Config{}},
		{name: "placeholder", cfg: Config{Fallback: FallbackPlaceholder, IconSize: 16}},
		{name: "unknown fallback", cfg: Config{Fallback: "retry"}, wantErr: true},
		{name: "too small", cfg: Config{IconSize: 4}, wantErr: true},
		{name: "too large", cfg: Config{IconSize: 512}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, cfg.Fallback)
			assert.NotZero(t, cfg.IconSize)
		})
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv("VIMICONS_CONFIG_PATH", path)
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	_, err := Load()
	require.Error(t, err)
}

func TestSetEnabledKeepsEnvOverridesOutOfFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv("VIMICONS_CONFIG_PATH", path)

	stored := Default()
	stored.IconSize = 24
	require.NoError(t, Save(stored))

	t.Setenv("VIMICONS_DEBUG", "true")
	t.Setenv("VIMICONS_ASSET_DIR", "/tmp/override-assets")
	t.Setenv("VIMICONS_FALLBACK", "placeholder")

	require.NoError(t, SetEnabled(false))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk Config
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	assert.False(t, onDisk.Enabled)
	assert.False(t, onDisk.Debug)
	assert.Empty(t, onDisk.AssetDir)
	assert.Equal(t, FallbackFail, onDisk.Fallback)
	assert.Equal(t, 24, onDisk.IconSize)

	loaded, err := Load()
	require.NoError(t, err)
	assert.False(t, loaded.Enabled)
	assert.Equal(t, FallbackPlaceholder, loaded.Fallback)
}
