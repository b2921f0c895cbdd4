// Copyright (c) 2026 The RAIR developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables overriding config file values.
const (
	EnvDataDir     = "RAIR_DATADIR"
	EnvNetwork     = "RAIR_NETWORK"
	EnvLogLevel    = "RAIR_LOGLEVEL"
	EnvLogFile     = "RAIR_LOGFILE"
	EnvOperator    = "RAIR_OPERATOR"
	EnvTreasury    = "RAIR_TREASURY"
	EnvTreasuryFee = "RAIR_TREASURYFEE"
	EnvNodeFee     = "RAIR_NODEFEE"
	EnvRPCURL      = "RAIR_RPCURL"
	EnvRPCUser     = "RAIR_RPCUSER"
	EnvRPCPass     = "RAIR_RPCPASS"
)

// ApplyEnv overlays environment variables onto cfg. lookup abstracts
// os.LookupEnv for testing; pass nil to read the process environment.
func ApplyEnv(cfg Config, lookup func(string) (string, bool)) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	setString := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	setString(EnvDataDir, &cfg.DataDir)
	setString(EnvNetwork, &cfg.Network)
	setString(EnvLogLevel, &cfg.LogLevel)
	setString(EnvLogFile, &cfg.LogFile)
	setString(EnvOperator, &cfg.Operator)
	setString(EnvTreasury, &cfg.Treasury)
	setString(EnvRPCURL, &cfg.RPCURL)
	setString(EnvRPCUser, &cfg.RPCUser)
	setString(EnvRPCPass, &cfg.RPCPass)

	for _, e := range []struct {
		key string
		dst *uint64
	}{
		{EnvTreasuryFee, &cfg.TreasuryFeeRate},
		{EnvNodeFee, &cfg.NodeFeeRate},
	} {
		v, ok := lookup(e.key)
		if !ok {
			continue
		}
		rate, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("config: %s: %w", e.key, err)
		}
		*e.dst = rate
	}

	return cfg, nil
}
