package vm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/h4ckm310n/lox/compiler"
)

func run(t *testing.T, source string) (string, error) {
	t.Helper()
	fn, errs := compiler.Compile(source)
	if len(errs) > 0 {
		t.Fatalf("compile errors: %v", errs)
	}
	var out bytes.Buffer
	machine := New()
	machine.SetOutput(&out)
	err := machine.Interpret(fn)
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

func TestMethodBoundToReceiver(t *testing.T) {
	out, err := run(t, `
		class Greeter {
			init(name) {
				this.name = name;
			}
			greet() {
				return "Hello, " + this.name;
			}
		}
		var g = Greeter("Ada");
		var bound = g.greet;
		print bound();
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "Hello, Ada" {
		t.Errorf("got %q, want Hello, Ada", out)
	}
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	_, err := run(t, `print missing;`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	if !strings.Contains(err.Error(), "Undefined variable 'missing'.") {
		t.Errorf("got %v", err)
	}
}

func TestCallingNonCallableIsRuntimeError(t *testing.T) {
	_, err := run(t, `var x = 1; x();`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	if !strings.Contains(err.Error(), "Can only call functions and classes.") {
		t.Errorf("got %v", err)
	}
}

func TestArrayNatives(t *testing.T) {
	out, err := run(t, `
		var a = Array();
		push(a, 1);
		push(a, 2);
		push(a, 3);
		set(a, 1, 20);
		print len(a);
		print get(a, 1);
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "3\n20" {
		t.Errorf("got %q, want 3\\n20", out)
	}
}
