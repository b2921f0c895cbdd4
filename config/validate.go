// Copyright (c) 2026 The RAIR developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package config

import (
	"fmt"
	"strings"

	"github.com/Ngipiek/rair-dapp/addr"
	"github.com/Ngipiek/rair-dapp/settlement"
)

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	if cfg.Network != "devnet" && cfg.Network != "testnet" && cfg.Network != "mainnet" {
		return ErrInvalidNetwork
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	if cfg.Operator != "" {
		if _, err := addr.Parse(cfg.Operator); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidOperator, err)
		}
	}
	if cfg.Treasury != "" {
		if _, err := addr.Parse(cfg.Treasury); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidTreasury, err)
		}
	}

	if cfg.TreasuryFeeRate+cfg.NodeFeeRate > settlement.FeeDenominator {
		return fmt.Errorf("%w: treasury %d + node %d > %d",
			ErrInvalidFeeRate, cfg.TreasuryFeeRate, cfg.NodeFeeRate, settlement.FeeDenominator)
	}

	return nil
}
