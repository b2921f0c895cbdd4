package collection

import "fmt"

// RPCConfig holds the connection parameters for the collection service's
// JSON-RPC interface.
type RPCConfig struct {
	URL      string `json:"url"`
	User     string `json:"user"`
	Password string `json:"password"`
	Network  string `json:"network"`
}

// NetworkPresets contains default RPC configurations for known networks.
// Mainnet is intentionally omitted to require explicit configuration.
var NetworkPresets = map[string]RPCConfig{
	"devnet":  {URL: "http://localhost:8547"},
	"testnet": {URL: "http://localhost:8547"},
}

// ResolveConfig merges RPC configuration from three sources with decreasing
// priority:
//  1. Explicit overrides (highest priority)
//  2. Environment variables (RAIR_COLLECTION_RPC_URL, _USER, _PASS)
//  3. Network presets (lowest priority, devnet/testnet only)
//
// For mainnet, explicit configuration is required -- there is no preset.
func ResolveConfig(overrides *RPCConfig, env map[string]string, network string) (*RPCConfig, error) {
	result := RPCConfig{Network: network}

	if preset, ok := NetworkPresets[network]; ok {
		result = preset
		result.Network = network
	}

	if env != nil {
		if v, ok := env["RAIR_COLLECTION_RPC_URL"]; ok && v != "" {
			result.URL = v
		}
		if v, ok := env["RAIR_COLLECTION_RPC_USER"]; ok && v != "" {
			result.User = v
		}
		if v, ok := env["RAIR_COLLECTION_RPC_PASS"]; ok && v != "" {
			result.Password = v
		}
	}

	if overrides != nil {
		if overrides.URL != "" {
			result.URL = overrides.URL
		}
		if overrides.User != "" {
			result.User = overrides.User
		}
		if overrides.Password != "" {
			result.Password = overrides.Password
		}
	}

	if result.URL == "" {
		return nil, fmt.Errorf("collection: %s requires explicit RPC configuration (set RAIR_COLLECTION_RPC_URL or the config file)", network)
	}

	return &result, nil
}
