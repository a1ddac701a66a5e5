package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/bitfsorg/catapult-go/chain"
	"github.com/bitfsorg/catapult-go/network"
)

// nodeURL picks the REST endpoint: --node, then CATAPULT_NODE_URL, then the
// config file, then the network preset. When none is set and a DNS domain is
// configured, the node is discovered through SRV records.
func (s *session) nodeURL() (string, error) {
	env := environ()
	flags := &network.NodeConfig{URL: flagMain.Node}
	if flags.URL == "" && env["CATAPULT_NODE_URL"] == "" {
		flags.URL = s.cfg.NodeURL
	}

	nc, err := network.ResolveConfig(flags, env, s.cfg.Network)
	if err == nil {
		return nc.URL, nil
	}
	if !errors.Is(err, network.ErrMissingConfig) || s.cfg.DNSDomain == "" {
		return "", err
	}

	d := network.NewDiscoverer(network.NewDNSResolver("", false), false)
	endpoints, derr := d.Discover(s.cfg.DNSDomain)
	if derr != nil {
		return "", fmt.Errorf("discover %s: %w", s.cfg.DNSDomain, derr)
	}
	s.log.Debug().Str("domain", s.cfg.DNSDomain).Int("endpoints", len(endpoints)).Msg("discovered nodes")
	return endpoints[0].RESTURL(), nil
}

func (s *session) client() (*network.Client, error) {
	url, err := s.nodeURL()
	if err != nil {
		return nil, err
	}
	return network.NewClient(url, network.WithLogger(s.log)), nil
}

// ensureGenerationHash fills s.params.GenerationHash from override, or from
// the node when neither the override nor the config file supplies one.
func (s *session) ensureGenerationHash(ctx context.Context, override string) error {
	if override != "" {
		g, err := chain.ParseGenerationHash(override)
		if err != nil {
			return err
		}
		s.params.GenerationHash = g
		return nil
	}
	if !s.params.GenerationHash.IsZero() {
		return nil
	}

	c, err := s.client()
	if err != nil {
		return fmt.Errorf("%w (pass --generation-hash or configure a node)", chain.ErrMissingGenerationHash)
	}
	g, err := c.GetGenerationHash(ctx)
	if err != nil {
		return fmt.Errorf("fetch generation hash: %w", err)
	}
	s.log.Debug().Str("generationHash", g.String()).Msg("fetched generation hash")
	s.params.GenerationHash = g
	return nil
}
