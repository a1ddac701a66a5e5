package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfig_Preset(t *testing.T) {
	cfg, err := ResolveConfig(nil, nil, "mijintest")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", cfg.URL)
	assert.Equal(t, "mijintest", cfg.Network)
}

func TestResolveConfig_Priority(t *testing.T) {
	env := map[string]string{"CATAPULT_NODE_URL": "http://env:3000"}

	cfg, err := ResolveConfig(nil, env, "mijintest")
	require.NoError(t, err)
	assert.Equal(t, "http://env:3000", cfg.URL)

	cfg, err = ResolveConfig(&NodeConfig{URL: "http://flag:3000"}, env, "mijintest")
	require.NoError(t, err)
	assert.Equal(t, "http://flag:3000", cfg.URL)
}

func TestResolveConfig_EnvNetwork(t *testing.T) {
	cfg, err := ResolveConfig(nil, map[string]string{"CATAPULT_NETWORK": "mijintest"}, "")
	require.NoError(t, err)
	assert.Equal(t, "mijintest", cfg.Network)
	assert.Equal(t, "http://localhost:3000", cfg.URL)
}

func TestResolveConfig_MissingURL(t *testing.T) {
	_, err := ResolveConfig(nil, nil, "mainnet")
	assert.ErrorIs(t, err, ErrMissingConfig)

	_, err = ResolveConfig(nil, nil, "unknown")
	assert.ErrorIs(t, err, ErrMissingConfig)

	cfg, err := ResolveConfig(&NodeConfig{URL: "http://node:3000"}, nil, "mainnet")
	require.NoError(t, err)
	assert.Equal(t, "mainnet", cfg.Network)
}
