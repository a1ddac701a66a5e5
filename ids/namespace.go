package ids

import (
	"encoding/binary"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/sha3"
)

const (
	// MaxNamespaceDepth is the number of levels the network accepts (root.sub.sub).
	MaxNamespaceDepth = 3

	// MaxNamespacePartLength is the longest allowed single level.
	MaxNamespacePartLength = 64
)

var namespacePart = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// NamespaceId identifies a namespace. Two ids are equal when their values are
// equal, regardless of whether the name is known.
type NamespaceId struct {
	id       UInt64
	fullName string
}

// NewNamespaceId wraps a raw value whose name is unknown.
func NewNamespaceId(v UInt64) NamespaceId { return NamespaceId{id: v} }

// NamespaceIdFromHex parses a 16-character hex id.
func NamespaceIdFromHex(s string) (NamespaceId, error) {
	v, err := UInt64FromHex(s)
	if err != nil {
		return NamespaceId{}, err
	}
	return NamespaceId{id: v}, nil
}

// NamespaceIdFromName derives the id of the last level of a dotted name.
func NamespaceIdFromName(name string) (NamespaceId, error) {
	path, err := NamespacePath(name)
	if err != nil {
		return NamespaceId{}, err
	}
	return path[len(path)-1], nil
}

// NamespacePath derives the id of every level of a dotted name, root first.
// The last element is the id of the full name.
func NamespacePath(name string) ([]NamespaceId, error) {
	parts := strings.Split(name, ".")
	if len(parts) > MaxNamespaceDepth {
		return nil, fmt.Errorf("%w: %q has %d levels (max %d)",
			ErrNamespaceTooDeep, name, len(parts), MaxNamespaceDepth)
	}

	path := make([]NamespaceId, 0, len(parts))
	parent := NamespaceId{}
	for _, part := range parts {
		child, err := ChildNamespaceId(parent, part)
		if err != nil {
			return nil, fmt.Errorf("%w (in %q)", err, name)
		}
		path = append(path, child)
		parent = child
	}
	return path, nil
}

// ChildNamespaceId derives the id of part under parent. A zero parent derives
// a root namespace. The result depends only on parent's value and part.
func ChildNamespaceId(parent NamespaceId, part string) (NamespaceId, error) {
	if err := validatePart(part); err != nil {
		return NamespaceId{}, err
	}

	h := sha3.New256()
	h.Write(parent.id.Bytes())
	h.Write([]byte(part))
	sum := h.Sum(nil)

	child := NamespaceId{id: UInt64(binary.LittleEndian.Uint64(sum[:8])) | namespaceFlag}
	switch {
	case parent.fullName != "":
		child.fullName = parent.fullName + "." + part
	case parent.id == 0:
		child.fullName = part
	}
	return child, nil
}

func validatePart(part string) error {
	if len(part) == 0 || len(part) > MaxNamespacePartLength {
		return fmt.Errorf("%w: %q must be 1..%d characters",
			ErrInvalidNamespaceName, part, MaxNamespacePartLength)
	}
	if !namespacePart.MatchString(part) {
		return fmt.Errorf("%w: %q", ErrInvalidNamespaceName, part)
	}
	return nil
}

// Id returns the 64-bit value.
func (n NamespaceId) Id() UInt64 { return n.id }

// FullName returns the dotted name when the id was derived from one.
func (n NamespaceId) FullName() string { return n.fullName }

// IsZero reports whether the id is the zero root seed.
func (n NamespaceId) IsZero() bool { return n.id == 0 }

// Hex returns the 16-character uppercase hex form.
func (n NamespaceId) Hex() string { return n.id.Hex() }

// String implements fmt.Stringer.
func (n NamespaceId) String() string {
	if n.fullName != "" {
		return n.fullName
	}
	return n.id.Hex()
}

// Equals compares by value.
func (n NamespaceId) Equals(o Unresolved) bool { return o != nil && n.id == o.Id() }

// MarshalJSON encodes the id as a word pair.
func (n NamespaceId) MarshalJSON() ([]byte, error) { return n.id.MarshalJSON() }
