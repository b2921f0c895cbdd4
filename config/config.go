// Copyright (c) 2026 The RAIR developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package config loads, saves, and validates the marketplace daemon
// configuration from a simple key = value file.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Ngipiek/rair-dapp/settlement"
)

// Config holds all daemon configuration.
type Config struct {
	// DataDir is the root directory for the event journal and other state.
	DataDir string

	// Network selects the deployment environment: "devnet", "testnet",
	// or "mainnet".
	Network string

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string

	// LogFile is an optional log destination; empty means stderr.
	LogFile string

	// Operator is the hex address allowed to run administrative operations.
	Operator string

	// Treasury is the hex address receiving the treasury fee share.
	Treasury string

	// TreasuryFeeRate and NodeFeeRate are fee rates over
	// settlement.FeeDenominator.
	TreasuryFeeRate uint64
	NodeFeeRate     uint64

	// RPCURL, RPCUser, and RPCPass configure the collection service client.
	RPCURL  string
	RPCUser string
	RPCPass string
}

// DefaultDataDir returns the default data directory (~/.rair).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rair"
	}
	return filepath.Join(home, ".rair")
}

// DefaultConfig returns a Config populated with default values.
func DefaultConfig() Config {
	return Config{
		DataDir:         DefaultDataDir(),
		Network:         "mainnet",
		LogLevel:        "info",
		TreasuryFeeRate: settlement.DefaultTreasuryFeeRate,
		NodeFeeRate:     settlement.DefaultNodeFeeRate,
	}
}

// ConfigPath returns the path of the config file inside dataDir.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, "config")
}

// JournalPath returns the path of the event journal inside dataDir.
func JournalPath(dataDir string) string {
	return filepath.Join(dataDir, "events.db")
}

// LoadConfig reads a config file. Missing keys keep their default values;
// unknown keys are ignored so newer files load under older binaries.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, err := parseKeyValue(line)
		if err != nil {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, lineNo, line)
		}
		if err := applyKey(&cfg, key, value); err != nil {
			return cfg, fmt.Errorf("%w: line %d: %w", ErrInvalidConfigLine, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	return cfg, nil
}

// parseKeyValue splits a line on the first '='.
func parseKeyValue(line string) (string, string, error) {
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", fmt.Errorf("missing '='")
	}
	return strings.ToLower(strings.TrimSpace(key)), strings.TrimSpace(value), nil
}

// applyKey sets one config field from its file key.
func applyKey(cfg *Config, key, value string) error {
	switch key {
	case "datadir":
		cfg.DataDir = value
	case "network":
		cfg.Network = value
	case "loglevel":
		cfg.LogLevel = value
	case "logfile":
		cfg.LogFile = value
	case "operator":
		cfg.Operator = value
	case "treasury":
		cfg.Treasury = value
	case "treasuryfee":
		rate, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("treasuryfee: %w", err)
		}
		cfg.TreasuryFeeRate = rate
	case "nodefee":
		rate, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("nodefee: %w", err)
		}
		cfg.NodeFeeRate = rate
	case "rpcurl":
		cfg.RPCURL = value
	case "rpcuser":
		cfg.RPCUser = value
	case "rpcpass":
		cfg.RPCPass = value
	default:
		// Ignore unknown keys.
	}
	return nil
}

// SaveConfig writes a config file, creating the parent directory if needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# RAIR Configuration\n\n")
	fmt.Fprintf(&b, "datadir = %s\n", cfg.DataDir)
	fmt.Fprintf(&b, "network = %s\n", cfg.Network)
	fmt.Fprintf(&b, "loglevel = %s\n", cfg.LogLevel)
	fmt.Fprintf(&b, "logfile = %s\n", cfg.LogFile)
	fmt.Fprintf(&b, "operator = %s\n", cfg.Operator)
	fmt.Fprintf(&b, "treasury = %s\n", cfg.Treasury)
	fmt.Fprintf(&b, "treasuryfee = %d\n", cfg.TreasuryFeeRate)
	fmt.Fprintf(&b, "nodefee = %d\n", cfg.NodeFeeRate)
	fmt.Fprintf(&b, "rpcurl = %s\n", cfg.RPCURL)
	fmt.Fprintf(&b, "rpcuser = %s\n", cfg.RPCUser)
	fmt.Fprintf(&b, "rpcpass = %s\n", cfg.RPCPass)

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
