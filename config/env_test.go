// Copyright (c) 2026 The RAIR developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package config

import (
	"testing"
)

func envLookup(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Network = "devnet"

	got, err := ApplyEnv(cfg, envLookup(map[string]string{
		EnvNetwork:     "testnet",
		EnvOperator:    testAddrHex,
		EnvTreasuryFee: "15000",
		EnvRPCURL:      "http://env:8547",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}

	if got.Network != "testnet" {
		t.Errorf("Network = %q, want %q", got.Network, "testnet")
	}
	if got.Operator != testAddrHex {
		t.Errorf("Operator = %q, want %q", got.Operator, testAddrHex)
	}
	if got.TreasuryFeeRate != 15000 {
		t.Errorf("TreasuryFeeRate = %d, want 15000", got.TreasuryFeeRate)
	}
	if got.RPCURL != "http://env:8547" {
		t.Errorf("RPCURL = %q, want %q", got.RPCURL, "http://env:8547")
	}
	// Unset variables keep the file/default values.
	if got.NodeFeeRate != 1000 {
		t.Errorf("NodeFeeRate = %d, want default 1000", got.NodeFeeRate)
	}
	if got.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want default %q", got.LogLevel, "info")
	}
}

func TestApplyEnv_NoVariables(t *testing.T) {
	cfg := DefaultConfig()
	got, err := ApplyEnv(cfg, envLookup(nil))
	if err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if got != cfg {
		t.Errorf("ApplyEnv without variables changed the config:\n got  %+v\n want %+v", got, cfg)
	}
}

func TestApplyEnv_BadFeeRate(t *testing.T) {
	_, err := ApplyEnv(DefaultConfig(), envLookup(map[string]string{
		EnvNodeFee: "one-percent",
	}))
	if err == nil {
		t.Fatal("ApplyEnv with non-numeric fee rate: expected error, got nil")
	}
}
