// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"plain": true,
	"text":  true,
	"json":  true,
}

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	if _, err := cfg.Params(); err != nil {
		return err
	}

	if cfg.NodeURL != "" {
		if err := validateURL(cfg.NodeURL); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidNodeURL, err)
		}
	}

	if cfg.DeadlineHours < 1 || cfg.DeadlineHours > 24 {
		return ErrInvalidDeadline
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	if !validLogFormats[strings.ToLower(cfg.LogFormat)] {
		return ErrInvalidLogFormat
	}

	return nil
}

// validateURL checks that raw is an absolute http or https URL.
func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}
