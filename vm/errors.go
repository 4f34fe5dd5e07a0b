package vm

import (
	"fmt"
	"strings"
)

// RuntimeError is a failure raised while executing already-compiled
// bytecode (as opposed to a compiler.CompileError found before any code
// ran). It carries a backtrace, one line per call frame active when the
// error was raised, innermost first.
type RuntimeError struct {
	Message   string
	Line      int32
	Backtrace []string
}

func (e RuntimeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[line %d] Error: %s", e.Line, e.Message)
	for _, frame := range e.Backtrace {
		fmt.Fprintf(&b, "\n%s", frame)
	}
	return b.String()
}
