package compiler

import (
	"fmt"
	"strings"

	"github.com/h4ckm310n/lox/object"
)

// Disassemble renders a whole function's chunk, header first, to its
// listing form, recursing into any nested function constants it holds.
func Disassemble(fn *object.Function) string {
	var b strings.Builder
	disassembleChunk(&b, fn, nameOf(fn))
	return b.String()
}

func nameOf(fn *object.Function) string {
	if fn.Name == "" {
		return "<script>"
	}
	return fn.Name
}

func disassembleChunk(b *strings.Builder, fn *object.Function, name string) {
	fmt.Fprintf(b, "== %s ==\n", name)
	chunk := fn.Chunk
	for offset := 0; offset < len(chunk.Code); {
		offset = disassembleInstruction(b, chunk, offset)
	}
	for _, c := range chunk.Constants {
		if nested, ok := c.(*object.Function); ok {
			b.WriteString("\n")
			disassembleChunk(b, nested, nameOf(nested))
		}
	}
}

func disassembleInstruction(b *strings.Builder, chunk *object.Chunk, offset int) int {
	op := object.Opcode(chunk.Code[offset])
	line := chunk.Lines[offset]
	fmt.Fprintf(b, "%04d %4d %s", offset, line, op)

	switch op {
	case object.OpConstant, object.OpGetGlobal, object.OpDefineGlobal, object.OpSetGlobal,
		object.OpGetProperty, object.OpSetProperty, object.OpGetSuper, object.OpClass, object.OpMethod:
		idx := chunk.Code[offset+1]
		fmt.Fprintf(b, " %4d '%s'\n", idx, object.ToString(chunk.Constants[idx]))
		return offset + 2

	case object.OpGetLocal, object.OpSetLocal, object.OpGetUpvalue, object.OpSetUpvalue, object.OpCall:
		fmt.Fprintf(b, " %4d\n", chunk.Code[offset+1])
		return offset + 2

	case object.OpInvoke, object.OpSuperInvoke:
		idx := chunk.Code[offset+1]
		argCount := chunk.Code[offset+2]
		fmt.Fprintf(b, " (%d args) %4d '%s'\n", argCount, idx, object.ToString(chunk.Constants[idx]))
		return offset + 3

	case object.OpJump, object.OpJumpIfFalse:
		jump := int(chunk.Code[offset+1])<<8 | int(chunk.Code[offset+2])
		fmt.Fprintf(b, " %4d -> %d\n", offset, offset+3+jump)
		return offset + 3

	case object.OpLoop:
		jump := int(chunk.Code[offset+1])<<8 | int(chunk.Code[offset+2])
		fmt.Fprintf(b, " %4d -> %d\n", offset, offset+3-jump)
		return offset + 3

	case object.OpClosure:
		offset++
		idx := chunk.Code[offset]
		offset++
		fn := chunk.Constants[idx].(*object.Function)
		fmt.Fprintf(b, " %4d %s\n", idx, object.ToString(fn))
		for i := 0; i < fn.UpvalueCount; i++ {
			isLocal := chunk.Code[offset]
			index := chunk.Code[offset+1]
			offset += 2
			kind := "upvalue"
			if isLocal == 1 {
				kind = "local"
			}
			fmt.Fprintf(b, "%04d      |                     %s %d\n", offset-2, kind, index)
		}
		return offset

	default:
		b.WriteString("\n")
		return offset + 1
	}
}
