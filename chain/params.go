// Package chain holds the per-network parameters every signing operation
// depends on. Params values are passed explicitly; there is no global cache.
package chain

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bitfsorg/catapult-go/account"
	"github.com/bitfsorg/catapult-go/keypair"
)

// GenerationHashSize is the length of a network's generation hash.
const GenerationHashSize = 32

// GenerationHash identifies a chain and prefixes every signing digest.
type GenerationHash [GenerationHashSize]byte

// String returns the uppercase hex form.
func (g GenerationHash) String() string { return strings.ToUpper(hex.EncodeToString(g[:])) }

// IsZero reports whether the hash is unset.
func (g GenerationHash) IsZero() bool { return g == GenerationHash{} }

// ParseGenerationHash decodes a 64-character hex generation hash.
func ParseGenerationHash(s string) (GenerationHash, error) {
	var g GenerationHash
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil || len(b) != GenerationHashSize {
		return g, fmt.Errorf("%w: %q", ErrInvalidGenerationHash, s)
	}
	copy(g[:], b)
	return g, nil
}

// Params describes one network.
type Params struct {
	Name           string
	Network        account.NetworkType
	Schema         keypair.SignSchema
	GenerationHash GenerationHash
	NodeURL        string

	// Clock returns the current time; time.Now when nil.
	Clock func() time.Time
}

// Predefined network parameters. The generation hash depends on the
// deployment and must be supplied with WithGenerationHash or fetched from a node.
var (
	MainNet = Params{
		Name:    "mainnet",
		Network: account.MainNet,
		Schema:  keypair.KeccakReversedKey,
	}

	TestNet = Params{
		Name:    "testnet",
		Network: account.TestNet,
		Schema:  keypair.KeccakReversedKey,
	}

	Mijin = Params{
		Name:    "mijin",
		Network: account.Mijin,
		Schema:  keypair.SHA3,
	}

	MijinTest = Params{
		Name:    "mijintest",
		Network: account.MijinTest,
		Schema:  keypair.SHA3,
		NodeURL: "http://localhost:3000",
	}
)

var predefined = map[string]*Params{
	"mainnet":   &MainNet,
	"testnet":   &TestNet,
	"mijin":     &Mijin,
	"mijintest": &MijinTest,
}

// GetParams returns a copy of the predefined parameters for name.
func GetParams(name string) (Params, error) {
	if p, ok := predefined[strings.ToLower(name)]; ok {
		return *p, nil
	}
	return Params{}, fmt.Errorf("%w: %q", ErrInvalidNetwork, name)
}

// Now returns the current time according to the configured clock.
func (p Params) Now() time.Time {
	if p.Clock != nil {
		return p.Clock()
	}
	return time.Now()
}

// WithGenerationHash returns a copy of p using g.
func (p Params) WithGenerationHash(g GenerationHash) Params {
	p.GenerationHash = g
	return p
}

// WithClock returns a copy of p reading time from clock.
func (p Params) WithClock(clock func() time.Time) Params {
	p.Clock = clock
	return p
}

// Validate checks that p can be used for signing.
func (p Params) Validate() error {
	if !p.Network.Valid() {
		return fmt.Errorf("%w: 0x%02x", account.ErrUnknownNetwork, uint8(p.Network))
	}
	if !p.Schema.Valid() {
		return fmt.Errorf("%w: %d", keypair.ErrUnknownSignSchema, p.Schema)
	}
	if p.GenerationHash.IsZero() {
		return ErrMissingGenerationHash
	}
	return nil
}

type paramsFile struct {
	Name           string `json:"name"`
	Network        string `json:"network"`
	SignSchema     string `json:"sign_schema"`
	GenerationHash string `json:"generation_hash"`
	NodeURL        string `json:"node_url"`
}

// LoadCustomParams loads Params from a JSON file.
func LoadCustomParams(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("chain: failed to read network params: %w", err)
	}

	var f paramsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return Params{}, fmt.Errorf("chain: failed to parse network params: %w", err)
	}
	if f.Name == "" {
		return Params{}, fmt.Errorf("chain: network params must have a name")
	}

	network, err := account.ParseNetworkType(f.Network)
	if err != nil {
		return Params{}, err
	}
	p := Params{Name: f.Name, Network: network, Schema: keypair.SHA3, NodeURL: f.NodeURL}
	if f.SignSchema != "" {
		if p.Schema, err = keypair.ParseSignSchema(f.SignSchema); err != nil {
			return Params{}, err
		}
	}
	if f.GenerationHash != "" {
		if p.GenerationHash, err = ParseGenerationHash(f.GenerationHash); err != nil {
			return Params{}, err
		}
	}
	return p, nil
}
