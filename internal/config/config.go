package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	configDirName  = "vimicons"
	configFileName = "config.json"

	DefaultIconSize = 32
	minIconSize     = 8
	maxIconSize     = 256
)

// FallbackPolicy controls what the host does when an icon cannot be resolved.
type FallbackPolicy string

const (
	// FallbackFail surfaces resolution failures to the caller.
	FallbackFail FallbackPolicy = "fail"
	// FallbackPlaceholder masks failures with a built-in placeholder icon.
	FallbackPlaceholder FallbackPolicy = "placeholder"
)

// Config represents the persisted configuration file.
type Config struct {
	Enabled  bool           `json:"enabled"`
	Debug    bool           `json:"debug,omitempty"`
	AssetDir string         `json:"assetDir,omitempty"`
	Fallback FallbackPolicy `json:"fallback,omitempty"`
	IconSize int            `json:"iconSize,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Enabled:  true,
		Fallback: FallbackFail,
		IconSize: DefaultIconSize,
	}
}

// Path returns the resolved configuration file path.
func Path() (string, error) {
	if custom := os.Getenv("VIMICONS_CONFIG_PATH"); custom != "" {
		if err := os.MkdirAll(filepath.Dir(custom), 0o700); err != nil {
			return "", fmt.Errorf("ensure custom config directory: %w", err)
		}
		return custom, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("determine user config dir: %w", err)
	}

	dir := filepath.Join(base, configDirName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("ensure config directory: %w", err)
	}

	return filepath.Join(dir, configFileName), nil
}

// Load reads the configuration file, applies environment overrides and
// validates the result. A missing file yields the defaults.
func Load() (*Config, error) {
	cfg, err := loadFile()
	if err != nil {
		return nil, err
	}

	if err := applyEnv(cfg, os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetEnabled persists the enabled flag. Every other field is rewritten as
// stored on disk; environment overrides are never saved.
func SetEnabled(enabled bool) error {
	cfg, err := loadFile()
	if err != nil {
		return err
	}
	cfg.Enabled = enabled
	return Save(cfg)
}

func loadFile() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	cfg := Default()
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := json.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}
	return cfg, nil
}

// Save persists the configuration.
func Save(cfg *Config) error {
	if cfg == nil {
		return errors.New("nil configuration")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	path, err := Path()
	if err != nil {
		return err
	}

	tempFile := path + ".tmp"
	if err := os.WriteFile(tempFile, raw, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return os.Rename(tempFile, path)
}

// Validate normalises empty fields and rejects unsupported values.
func (c *Config) Validate() error {
	if c.Fallback == "" {
		c.Fallback = FallbackFail
	}
	switch c.Fallback {
	case FallbackFail, FallbackPlaceholder:
	default:
		return fmt.Errorf("unsupported fallback policy: %s", c.Fallback)
	}

	if c.IconSize == 0 {
		c.IconSize = DefaultIconSize
	}
	if c.IconSize < minIconSize || c.IconSize > maxIconSize {
		return fmt.Errorf("icon size %d outside %d-%d", c.IconSize, minIconSize, maxIconSize)
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if raw := strings.TrimSpace(getenv("VIMICONS_DEBUG")); raw != "" {
		debug, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("parse VIMICONS_DEBUG: %w", err)
		}
		cfg.Debug = debug
	}
	if dir := strings.TrimSpace(getenv("VIMICONS_ASSET_DIR")); dir != "" {
		cfg.AssetDir = dir
	}
	if policy := strings.TrimSpace(getenv("VIMICONS_FALLBACK")); policy != "" {
		cfg.Fallback = FallbackPolicy(strings.ToLower(policy))
	}
	return nil
}
