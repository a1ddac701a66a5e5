package account

import (
	"fmt"
	"strings"
)

// NetworkType is the single byte that prefixes every address and is carried
// in every transaction envelope.
type NetworkType uint8

const (
	MainNet   NetworkType = 0x68
	TestNet   NetworkType = 0x98
	Mijin     NetworkType = 0x60
	MijinTest NetworkType = 0x90
)

var networkNames = map[NetworkType]string{
	MainNet:   "mainnet",
	TestNet:   "testnet",
	Mijin:     "mijin",
	MijinTest: "mijintest",
}

// String returns the lowercase network name.
func (n NetworkType) String() string {
	if name, ok := networkNames[n]; ok {
		return name
	}
	return fmt.Sprintf("network(0x%02x)", uint8(n))
}

// Valid reports whether n is one of the known networks.
func (n NetworkType) Valid() bool {
	_, ok := networkNames[n]
	return ok
}

// Prefix returns the leading character of a plain address on this network.
func (n NetworkType) Prefix() byte {
	return base32Alphabet[n>>3]
}

// ParseNetworkType maps a network name ("mainnet", "testnet", "mijin",
// "mijintest") to its NetworkType.
func ParseNetworkType(name string) (NetworkType, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for n, s := range networkNames {
		if s == lower {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownNetwork, name)
}

func networkFromPrefix(c byte) (NetworkType, bool) {
	for n := range networkNames {
		if n.Prefix() == c {
			return n, true
		}
	}
	return 0, false
}
