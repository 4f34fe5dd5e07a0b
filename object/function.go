package object

// Function is a compiled Lox function: its bytecode body, arity, and the
// upvalue layout its closures need to build at OP_CLOSURE time (§4.2,
// §4.4). Name is empty for the implicit top-level script function.
type Function struct {
	Name         string
	Arity        int
	UpvalueCount int
	Chunk        *Chunk
}

// NativeFn is a Go-backed Lox function, such as clock() or an Array method,
// invoked directly by the VM instead of through a call frame.
type NativeFn struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

// UpvalueRef describes, at compile time, where a closure's Nth upvalue
// comes from: either the enclosing function's local slot stack (IsLocal)
// or the enclosing function's own upvalue list at Index.
type UpvalueRef struct {
	IsLocal bool
	Index   int
}

// Closure pairs a compiled Function with the upvalues it captured at the
// point it was created. Every Lox function value the VM manipulates at
// runtime is wrapped in a Closure, even one that captures nothing.
type Closure struct {
	Function *Function
	Upvalues []*Upvalue
}

// Upvalue is a reference cell for a variable captured by a closure. While
// Open, Location points directly into the VM's value stack at slot Slot,
// so writes made by the owning frame are visible to the closure and vice
// versa; Close copies the current value into Closed and repoints Location
// at it, after which the variable outlives the stack frame that declared
// it.
type Upvalue struct {
	Location *Value
	Closed   Value
	Slot     int
	Next     *Upvalue
}

// Close detaches the upvalue from the stack, preserving its current value.
func (u *Upvalue) Close() {
	u.Closed = *u.Location
	u.Location = &u.Closed
}
