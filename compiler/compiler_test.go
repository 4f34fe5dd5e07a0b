package compiler

import (
	"strings"
	"testing"

	"github.com/h4ckm310n/lox/object"
)

func compileOK(t *testing.T, source string) *object.Function {
	t.Helper()
	fn, errs := Compile(source)
	if len(errs) > 0 {
		t.Fatalf("Compile(%q) returned errors: %v", source, errs)
	}
	return fn
}

func TestCompileArithmeticExpression(t *testing.T) {
	fn := compileOK(t, "1 + 2 * 3;")
	ops := opcodesOf(fn.Chunk)
	want := []object.Opcode{
		object.OpConstant, object.OpConstant, object.OpConstant,
		object.OpMultiply, object.OpAdd, object.OpPop,
		object.OpNil, object.OpReturn,
	}
	assertOpcodes(t, ops, want)
}

func TestCompileVarDeclarationGlobal(t *testing.T) {
	fn := compileOK(t, "var x = 1; print x;")
	ops := opcodesOf(fn.Chunk)
	want := []object.Opcode{
		object.OpConstant, object.OpDefineGlobal,
		object.OpGetGlobal, object.OpPrint,
		object.OpNil, object.OpReturn,
	}
	assertOpcodes(t, ops, want)
}

func TestCompileLocalVariableUsesSlot(t *testing.T) {
	fn := compileOK(t, "{ var x = 1; x = 2; }")
	ops := opcodesOf(fn.Chunk)
	for _, op := range ops {
		if op == object.OpGetGlobal || op == object.OpSetGlobal {
			t.Fatalf("expected no global opcodes for a block-scoped local, got %v", ops)
		}
	}
	assertContains(t, ops, object.OpSetLocal)
}

func TestCompileUndefinedReturnIsError(t *testing.T) {
	_, errs := Compile("return 1;")
	if len(errs) == 0 {
		t.Fatal("expected an error returning from top-level code")
	}
	if !strings.Contains(errs[0].Error(), "Can't return from top-level code.") {
		t.Errorf("got %v", errs[0])
	}
}

func TestCompileClassWithSelfInheritanceErrors(t *testing.T) {
	_, errs := Compile("class Oops < Oops {}")
	if len(errs) == 0 {
		t.Fatal("expected an error for a class inheriting from itself")
	}
}

func TestCompileFunctionEmitsClosure(t *testing.T) {
	fn := compileOK(t, "fun add(a, b) { return a + b; }")
	ops := opcodesOf(fn.Chunk)
	assertContains(t, ops, object.OpClosure)
}

func TestCompileClassAndMethod(t *testing.T) {
	fn := compileOK(t, `
		class Greeter {
			greet() { return "hi"; }
		}
	`)
	ops := opcodesOf(fn.Chunk)
	assertContains(t, ops, object.OpClass)
	assertContains(t, ops, object.OpMethod)
}

func TestDisassembleDoesNotPanic(t *testing.T) {
	fn := compileOK(t, `
		class Animal {
			speak() { return "..."; }
		}
		class Dog < Animal {
			speak() { return super.speak(); }
		}
		var d = Dog();
		print d.speak();
	`)
	out := Disassemble(fn)
	if !strings.Contains(out, "OP_CLASS") {
		t.Errorf("expected disassembly to mention OP_CLASS, got:\n%s", out)
	}
}

func opcodesOf(chunk *object.Chunk) []object.Opcode {
	var ops []object.Opcode
	for i := 0; i < len(chunk.Code); {
		op := object.Opcode(chunk.Code[i])
		ops = append(ops, op)
		i += instructionSize(chunk, i)
	}
	return ops
}

// instructionSize mirrors the operand widths compiler.go emits, for test
// introspection only — not used by the compiler or VM themselves.
func instructionSize(chunk *object.Chunk, offset int) int {
	switch object.Opcode(chunk.Code[offset]) {
	case object.OpConstant, object.OpGetLocal, object.OpSetLocal, object.OpGetGlobal,
		object.OpDefineGlobal, object.OpSetGlobal, object.OpGetUpvalue, object.OpSetUpvalue,
		object.OpGetProperty, object.OpSetProperty, object.OpGetSuper, object.OpCall,
		object.OpClass, object.OpMethod:
		return 2
	case object.OpJump, object.OpJumpIfFalse, object.OpLoop, object.OpInvoke, object.OpSuperInvoke:
		return 3
	case object.OpClosure:
		idx := chunk.Code[offset+1]
		fn := chunk.Constants[idx].(*object.Function)
		return 2 + 2*fn.UpvalueCount
	default:
		return 1
	}
}

func assertOpcodes(t *testing.T, got, want []object.Opcode) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("instruction %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func assertContains(t *testing.T, ops []object.Opcode, want object.Opcode) {
	t.Helper()
	for _, op := range ops {
		if op == want {
			return
		}
	}
	t.Errorf("expected %s among %v", want, ops)
}
