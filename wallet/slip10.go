package wallet

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

const (
	// Hardened is the SLIP-10 hardened index offset.
	Hardened = 0x80000000

	// PurposeBIP44 and CoinTypeNEM form the account path prefix.
	PurposeBIP44 = 44
	CoinTypeNEM  = 43

	curveSeed = "ed25519 seed"
)

// Node is an extended Ed25519 private key.
type Node struct {
	Key       [32]byte
	ChainCode [32]byte
}

// NewMasterNode derives the SLIP-10 Ed25519 master node from seed.
func NewMasterNode(seed []byte) (*Node, error) {
	if len(seed) < 16 || len(seed) > 64 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidSeed, len(seed))
	}
	return split(hmacSHA512([]byte(curveSeed), seed)), nil
}

// Child derives the hardened child at index. Non-hardened indices are rejected.
func (n *Node) Child(index uint32) (*Node, error) {
	if index < Hardened {
		return nil, fmt.Errorf("%w: %d", ErrNonHardened, index)
	}
	data := make([]byte, 0, 1+32+4)
	data = append(data, 0)
	data = append(data, n.Key[:]...)
	data = binary.BigEndian.AppendUint32(data, index)
	return split(hmacSHA512(n.ChainCode[:], data)), nil
}

// Derive follows path from n.
func (n *Node) Derive(path []uint32) (*Node, error) {
	cur := n
	for _, idx := range path {
		next, err := cur.Child(idx)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

func hmacSHA512(key, data []byte) []byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

func split(i []byte) *Node {
	n := &Node{}
	copy(n.Key[:], i[:32])
	copy(n.ChainCode[:], i[32:])
	return n
}

// ParsePath parses "m/44'/43'/0'/0'/0'". Every level must be hardened
// (marked with ' or H).
func ParsePath(path string) ([]uint32, error) {
	parts := strings.Split(strings.TrimSpace(path), "/")
	if len(parts) == 0 || parts[0] != "m" {
		return nil, fmt.Errorf("%w: %q must start with m", ErrInvalidPath, path)
	}
	out := make([]uint32, 0, len(parts)-1)
	for _, p := range parts[1:] {
		trimmed := strings.TrimRight(p, "'H")
		if trimmed == p {
			return nil, fmt.Errorf("%w: %q in %q", ErrNonHardened, p, path)
		}
		v, err := strconv.ParseUint(trimmed, 10, 32)
		if err != nil || v >= Hardened {
			return nil, fmt.Errorf("%w: level %q in %q", ErrInvalidPath, p, path)
		}
		out = append(out, uint32(v)+Hardened)
	}
	return out, nil
}

// AccountPath returns m/44'/43'/index'/0'/0'.
func AccountPath(index uint32) string {
	return fmt.Sprintf("m/%d'/%d'/%d'/0'/0'", PurposeBIP44, CoinTypeNEM, index)
}
