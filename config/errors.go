// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import "errors"

var (
	// ErrInvalidNetwork indicates the network name is not recognized.
	ErrInvalidNetwork = errors.New("config: invalid network (must be \"mainnet\", \"testnet\", \"mijin\", or \"mijintest\")")

	// ErrInvalidNodeURL indicates the node URL is not an http(s) URL.
	ErrInvalidNodeURL = errors.New("config: invalid node URL")

	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"debug\", \"info\", \"warn\", or \"error\")")

	// ErrInvalidLogFormat indicates the log format is not recognized.
	ErrInvalidLogFormat = errors.New("config: invalid log format (must be \"plain\", \"text\", or \"json\")")

	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrInvalidDeadline indicates deadline hours outside 1..24.
	ErrInvalidDeadline = errors.New("config: deadline hours must be between 1 and 24")

	// ErrInvalidGenerationHash indicates a generation hash that is not 64 hex characters.
	ErrInvalidGenerationHash = errors.New("config: invalid generation hash")

	// ErrInvalidSignSchema indicates an unknown sign schema name.
	ErrInvalidSignSchema = errors.New("config: invalid sign schema")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfigFile indicates the configuration file is not valid TOML.
	ErrInvalidConfigFile = errors.New("config: invalid configuration file")
)
