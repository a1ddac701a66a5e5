// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds a leveled logger writing to w in the configured format.
func NewLogger(cfg Config, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return zerolog.Nop(), ErrInvalidLogLevel
	}

	switch strings.ToLower(cfg.LogFormat) {
	case "plain", "text":
		w = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    true,
			TimeFormat: time.RFC3339,
			FormatLevel: func(i interface{}) string {
				if ll, ok := i.(string); ok {
					return strings.ToUpper(ll)
				}
				return "????"
			},
		}
	case "json":
	default:
		return zerolog.Nop(), ErrInvalidLogFormat
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
