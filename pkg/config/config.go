// Package config manages the application configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the persisted configuration.
type Config struct {
	Version    string           `json:"version"`
	Defaults   DefaultSettings  `json:"defaults"`
	Validation ValidationConfig `json:"validation"`
	QR         QRConfig         `json:"qr"`
	Media      MediaConfig      `json:"media"`
	Storage    StorageConfig    `json:"storage"`
}

// DefaultSettings holds the threshold parameters applied when flags are
// omitted.
type DefaultSettings struct {
	Threshold int    `json:"threshold"` // k
	Shares    int    `json:"shares"`    // n
	Scheme    string `json:"scheme"`
}

// ValidationConfig bounds accepted media URLs.
type ValidationConfig struct {
	MinURLLength    int      `json:"min_url_length"`
	MaxURLLength    int      `json:"max_url_length"`
	MediaExtensions []string `json:"media_extensions"`
}

// QRConfig controls image rendering.
type QRConfig struct {
	ModuleSize int    `json:"module_size"`
	Format     string `json:"format"` // PNG, SVG, ASCII, UTF8
	OutputPath string `json:"output_path"`
}

// MediaConfig selects the player used after reveal.
type MediaConfig struct {
	UseBrowser bool   `json:"use_browser"`
	PlayerPath string `json:"player_path,omitempty"`
}

// StorageConfig locates session files.
type StorageConfig struct {
	SessionPath   string `json:"session_path"`
	EncryptAtRest bool   `json:"encrypt_at_rest"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: "1",
		Defaults: DefaultSettings{
			Threshold: 2,
			Shares:    3,
			Scheme:    "gfp",
		},
		Validation: ValidationConfig{
			MinURLLength: 10,
			MaxURLLength: 1000,
			MediaExtensions: []string{
				".mp4", ".mkv", ".avi", ".mov", ".flv", ".webm",
				".m3u8", ".mp3", ".wav", ".flac",
			},
		},
		QR: QRConfig{
			ModuleSize: 8,
			Format:     "PNG",
			OutputPath: "envelope_qr.png",
		},
		Media: MediaConfig{
			UseBrowser: true,
		},
		Storage: StorageConfig{
			SessionPath: "session.json",
		},
	}
}

// Load reads the config at path, filling any missing sections with
// defaults. A missing file yields the defaults without error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to path.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// Validate checks the config for values that would break later operations.
func (c *Config) Validate() error {
	if c.Defaults.Threshold < 2 {
		return fmt.Errorf("default threshold must be at least 2, got %d", c.Defaults.Threshold)
	}
	if c.Defaults.Threshold > c.Defaults.Shares {
		return fmt.Errorf("default threshold (%d) cannot exceed default shares (%d)",
			c.Defaults.Threshold, c.Defaults.Shares)
	}
	if c.Validation.MinURLLength <= 0 || c.Validation.MaxURLLength < c.Validation.MinURLLength {
		return fmt.Errorf("invalid URL length bounds [%d, %d]",
			c.Validation.MinURLLength, c.Validation.MaxURLLength)
	}
	if c.QR.ModuleSize <= 0 {
		return fmt.Errorf("QR module size must be positive, got %d", c.QR.ModuleSize)
	}
	return nil
}
