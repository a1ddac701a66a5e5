package network

import (
	"fmt"

	"github.com/bitfsorg/catapult-go/chain"
)

// NodeConfig holds the connection parameters for a node's REST gateway.
type NodeConfig struct {
	URL     string `json:"url"`
	Network string `json:"network"`
}

// ResolveConfig merges node configuration from three sources with decreasing priority:
//  1. CLI flags (highest priority)
//  2. Environment variables (CATAPULT_NODE_URL)
//  3. Network presets from chain (lowest priority, only networks with a default node)
func ResolveConfig(flags *NodeConfig, env map[string]string, network string) (*NodeConfig, error) {
	result := NodeConfig{Network: network}

	if p, err := chain.GetParams(network); err == nil {
		result.URL = p.NodeURL
	}

	if env != nil {
		if v, ok := env["CATAPULT_NETWORK"]; ok && v != "" && network == "" {
			result.Network = v
			if p, err := chain.GetParams(v); err == nil && result.URL == "" {
				result.URL = p.NodeURL
			}
		}
		if v, ok := env["CATAPULT_NODE_URL"]; ok && v != "" {
			result.URL = v
		}
	}

	if flags != nil {
		if flags.URL != "" {
			result.URL = flags.URL
		}
		if flags.Network != "" {
			result.Network = flags.Network
		}
	}

	if result.URL == "" {
		return nil, fmt.Errorf("%w: %s requires an explicit node (set --node, CATAPULT_NODE_URL, or config file)",
			ErrMissingConfig, result.Network)
	}
	return &result, nil
}
