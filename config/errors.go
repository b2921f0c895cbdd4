// Copyright (c) 2026 The RAIR developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package config

import "errors"

var (
	// ErrInvalidNetwork indicates the network name is not recognized.
	ErrInvalidNetwork = errors.New("config: invalid network (must be \"devnet\", \"testnet\", or \"mainnet\")")

	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"debug\", \"info\", \"warn\", or \"error\")")

	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrInvalidOperator indicates the operator address does not parse.
	ErrInvalidOperator = errors.New("config: invalid operator address")

	// ErrInvalidTreasury indicates the treasury address does not parse.
	ErrInvalidTreasury = errors.New("config: invalid treasury address")

	// ErrInvalidFeeRate indicates the combined fee rates exceed the denominator.
	ErrInvalidFeeRate = errors.New("config: combined fee rates exceed the denominator")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfigLine indicates a line in the config file is malformed.
	ErrInvalidConfigLine = errors.New("config: invalid configuration line")
)
