package compiler

import "fmt"

// CompileError is a single syntax or semantic error discovered while
// compiling one chunk. The compiler runs in panic mode: after the first
// error it discards tokens until it finds a statement boundary, then
// keeps going so a single compile can report several errors at once.
type CompileError struct {
	Line    int32
	AtEnd   bool
	Lexeme  string
	Message string
}

func (e CompileError) Error() string {
	if e.AtEnd {
		return fmt.Sprintf("[line %d] Error at end: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Line, e.Lexeme, e.Message)
}

// DeveloperError indicates an invariant the compiler itself violated
// (e.g. patching a jump that was never emitted). It should never surface
// from compiling a well-formed Lox program and is not recovered from the
// same way a CompileError is.
type DeveloperError struct {
	Message string
}

func (e DeveloperError) Error() string {
	return fmt.Sprintf("compiler bug: %s", e.Message)
}
