package ids

// Unresolved is a 64-bit field that may hold either a mosaic id or a
// namespace alias. Bit 63 tells them apart.
type Unresolved interface {
	Id() UInt64
}

var (
	_ Unresolved = MosaicId{}
	_ Unresolved = NamespaceId{}
)

// IsNamespace reports whether v carries the namespace flag.
func IsNamespace(v UInt64) bool { return v&namespaceFlag != 0 }

// Decode turns an unresolved wire value into a MosaicId or NamespaceId.
func Decode(v UInt64) Unresolved {
	if IsNamespace(v) {
		return NewNamespaceId(v)
	}
	return NewMosaicId(v)
}
