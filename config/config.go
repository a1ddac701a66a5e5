// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

// Package config loads and validates the client configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml"

	"github.com/bitfsorg/catapult-go/chain"
	"github.com/bitfsorg/catapult-go/keypair"
)

// Config is the client configuration.
type Config struct {
	DataDir        string `toml:"data_dir"`
	Network        string `toml:"network"`
	NodeURL        string `toml:"node_url"`
	GenerationHash string `toml:"generation_hash"`
	SignSchema     string `toml:"sign_schema"`
	FeeMultiplier  uint32 `toml:"fee_multiplier"`
	DeadlineHours  int    `toml:"deadline_hours"`
	LogLevel       string `toml:"log_level"`
	LogFormat      string `toml:"log_format"`
	DNSDomain      string `toml:"dns_domain"`
}

// fileConfig mirrors Config with optional fields so keys absent from the
// file keep their defaults.
type fileConfig struct {
	DataDir        *string `toml:"data_dir"`
	Network        *string `toml:"network"`
	NodeURL        *string `toml:"node_url"`
	GenerationHash *string `toml:"generation_hash"`
	SignSchema     *string `toml:"sign_schema"`
	FeeMultiplier  *uint32 `toml:"fee_multiplier"`
	DeadlineHours  *int    `toml:"deadline_hours"`
	LogLevel       *string `toml:"log_level"`
	LogFormat      *string `toml:"log_format"`
	DNSDomain      *string `toml:"dns_domain"`
}

// DefaultDataDir returns ~/.catapult, or .catapult when the home directory is unknown.
func DefaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".catapult")
	}
	return ".catapult"
}

// ConfigPath returns the configuration file path inside dataDir.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, "config.toml")
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		DataDir:       DefaultDataDir(),
		Network:       "mijintest",
		DeadlineHours: 2,
		LogLevel:      "info",
		LogFormat:     "plain",
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig. Unknown keys are ignored.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	var f fileConfig
	if err := toml.Unmarshal(data, &f); err != nil {
		return cfg, fmt.Errorf("%w: %s: %w", ErrInvalidConfigFile, path, err)
	}
	setString(&cfg.DataDir, f.DataDir)
	setString(&cfg.Network, f.Network)
	setString(&cfg.NodeURL, f.NodeURL)
	setString(&cfg.GenerationHash, f.GenerationHash)
	setString(&cfg.SignSchema, f.SignSchema)
	setString(&cfg.LogLevel, f.LogLevel)
	setString(&cfg.LogFormat, f.LogFormat)
	setString(&cfg.DNSDomain, f.DNSDomain)
	if f.FeeMultiplier != nil {
		cfg.FeeMultiplier = *f.FeeMultiplier
	}
	if f.DeadlineHours != nil {
		cfg.DeadlineHours = *f.DeadlineHours
	}
	return cfg, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

const fileHeader = "# catapult client configuration\n\n"

// SaveConfig writes cfg as TOML, creating parent directories.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	data = append([]byte(fileHeader), data...)
	return os.WriteFile(path, data, 0600)
}

// Deadline returns the configured deadline window.
func (c Config) Deadline() time.Duration {
	return time.Duration(c.DeadlineHours) * time.Hour
}

// Params resolves the chain parameters for c: the network preset with any
// configured schema, generation hash and node URL applied.
func (c Config) Params() (chain.Params, error) {
	p, err := chain.GetParams(c.Network)
	if err != nil {
		return chain.Params{}, fmt.Errorf("%w: %q", ErrInvalidNetwork, c.Network)
	}
	if c.SignSchema != "" {
		if p.Schema, err = keypair.ParseSignSchema(c.SignSchema); err != nil {
			return chain.Params{}, fmt.Errorf("%w: %q", ErrInvalidSignSchema, c.SignSchema)
		}
	}
	if c.GenerationHash != "" {
		if p.GenerationHash, err = chain.ParseGenerationHash(c.GenerationHash); err != nil {
			return chain.Params{}, fmt.Errorf("%w: %q", ErrInvalidGenerationHash, c.GenerationHash)
		}
	}
	if c.NodeURL != "" {
		p.NodeURL = c.NodeURL
	}
	return p, nil
}
