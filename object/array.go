package object

// Array is a native, growable sequence object. It has no literal syntax
// and no opcode of its own; it is reachable only through the native
// functions Array(), push, get, set, and len registered by vm (see
// SPEC_FULL.md's SUPPLEMENTED FEATURES) — a Lox-level convenience the
// bytecode grammar itself knows nothing about.
type Array struct {
	Elements []Value
}

// NewArray creates an empty array.
func NewArray() *Array {
	return &Array{}
}
