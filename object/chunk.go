package object

// Chunk is a sequence of compiled bytecode together with the constants it
// references and the source line each instruction byte came from, for
// runtime error reporting (§4.3).
type Chunk struct {
	Code      []byte
	Lines     []int32
	Constants []Value
}

// Write appends a single bytecode byte, recording the source line it came
// from, and returns the index the byte was written at.
func (c *Chunk) Write(b byte, line int32) int {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
	return len(c.Code) - 1
}

// AddConstant interns v into the chunk's constant pool and returns its
// index. String constants are de-duplicated so that, e.g., a global
// variable referenced many times in one function shares a single constant
// slot.
func (c *Chunk) AddConstant(v Value) int {
	if s, ok := v.(string); ok {
		for i, existing := range c.Constants {
			if es, ok := existing.(string); ok && es == s {
				return i
			}
		}
	}
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1
}
