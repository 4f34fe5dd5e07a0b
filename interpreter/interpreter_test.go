package interpreter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/h4ckm310n/lox/lexer"
	"github.com/h4ckm310n/lox/parser"
)

func run(t *testing.T, source string) (string, error) {
	t.Helper()
	lex := lexer.New(source)
	tokens, err := lex.Scan()
	if err != nil {
		t.Fatalf("lexing error: %v", err)
	}
	p := parser.Make(tokens)
	statements, parseErrs := p.Parse()
	if len(parseErrs) > 0 {
		t.Fatalf("parse errors: %v", parseErrs)
	}
	var out bytes.Buffer
	interp := Make()
	interp.SetOutput(&out)
	err = interp.Interpret(statements)
	return out.String(), err
}

func TestArithmeticAndPrint(t *testing.T) {
	out, err := run(t, `print 1 + 2 * 3;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "7" {
		t.Errorf("got %q, want 7", out)
	}
}

func TestStringConcatenation(t *testing.T) {
	out, err := run(t, `print "foo" + "bar";`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "foobar" {
		t.Errorf("got %q, want foobar", out)
	}
}

func TestAddingStringAndNumberIsRuntimeError(t *testing.T) {
	_, err := run(t, `print "foo" + 1;`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	if !strings.Contains(err.Error(), "Operands must be two numbers or two strings.") {
		t.Errorf("got %v", err)
	}
}

func TestDivisionByZeroYieldsInfinity(t *testing.T) {
	out, err := run(t, `print 1 / 0;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "+Inf" {
		t.Errorf("got %q, want +Inf", out)
	}
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	_, err := run(t, `print x;`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	if !strings.Contains(err.Error(), "Undefined variable 'x'.") {
		t.Errorf("got %v", err)
	}
}

func TestBlockScopingShadowsOuterVariable(t *testing.T) {
	out, err := run(t, `
		var x = "outer";
		{
			var x = "inner";
			print x;
		}
		print x;
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "inner\nouter" {
		t.Errorf("got %q, want inner\\nouter", out)
	}
}

func TestLogicalShortCircuit(t *testing.T) {
	out, err := run(t, `
		fun sideEffect(label, value) {
			print label;
			return value;
		}
		print sideEffect("left", false) and sideEffect("right", true);
		print sideEffect("left", true) or sideEffect("right", false);
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "left\nfalse\nleft\ntrue"
	if strings.TrimSpace(out) != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestClosureKeepsCapturedVariable(t *testing.T) {
	out, err := run(t, `
		fun makeCounter() {
			var count = 0;
			fun increment() {
				count = count + 1;
				return count;
			}
			return increment;
		}
		var counter = makeCounter();
		print counter();
		print counter();
		print counter();
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "1\n2\n3" {
		t.Errorf("got %q, want 1\\n2\\n3", out)
	}
}

func TestClassInstantiationAndInitReturnsThis(t *testing.T) {
	out, err := run(t, `
		class Counter {
			init(start) {
				this.value = start;
			}
			increment() {
				this.value = this.value + 1;
				return this.value;
			}
		}
		var c = Counter(10);
		print c.increment();
		print c.increment();
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "11\n12" {
		t.Errorf("got %q, want 11\\n12", out)
	}
}

func TestInheritanceAndSuper(t *testing.T) {
	out, err := run(t, `
		class Animal {
			speak() {
				return "...";
			}
			describe() {
				return "An animal says " + this.speak();
			}
		}
		class Dog < Animal {
			speak() {
				return "Woof, and my parent says: " + super.speak();
			}
		}
		print Dog().describe();
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "An animal says Woof, and my parent says: ..."
	if strings.TrimSpace(out) != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestForLoopDesugaring(t *testing.T) {
	out, err := run(t, `
		var sum = 0;
		for (var i = 0; i < 5; i = i + 1) {
			sum = sum + i;
		}
		print sum;
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "10" {
		t.Errorf("got %q, want 10", out)
	}
}

func TestFieldShadowsMethod(t *testing.T) {
	out, err := run(t, `
		class Box {
			value() {
				return "method";
			}
		}
		var b = Box();
		print b.value();
		b.value = "field";
		print b.value;
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "method\nfield" {
		t.Errorf("got %q, want method\\nfield", out)
	}
}

func TestCallingNonCallableIsRuntimeError(t *testing.T) {
	_, err := run(t, `
		var x = 5;
		x();
	`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	if !strings.Contains(err.Error(), "Can only call functions and classes.") {
		t.Errorf("got %v", err)
	}
}

func TestWrongArityIsRuntimeError(t *testing.T) {
	_, err := run(t, `
		fun add(a, b) { return a + b; }
		add(1);
	`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	if !strings.Contains(err.Error(), "Expected 2 arguments but got 1.") {
		t.Errorf("got %v", err)
	}
}
