// Package object defines the runtime value representation shared by the
// bytecode compiler and the virtual machine: the Value union (§3 of the
// language spec) and the heap object kinds a Lox program can allocate.
package object

import (
	"fmt"
	"strconv"
)

// Value is any value a Lox program can manipulate.
//
// Rather than a hand-rolled tagged union, Value is Go's own any: nil (Lox
// nil), bool, float64 (Lox's only number type), or a Go string (Lox
// string — Go's native string equality is already by-content, which is
// exactly spec.md's equality rule for strings). Everything else is a heap
// object represented by a pointer type below (*Function, *NativeFn,
// *Closure, *Upvalue, *Class, *Instance, *BoundMethod, *Array); Go compares
// pointers by identity, matching spec.md's "objects compare by identity
// except strings" rule for free.
type Value = any

// IsTruthy reports a Lox value's truthiness. Only false and nil are
// falsey; everything else, including 0 and the empty string, is truthy.
func IsTruthy(v Value) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// Equal implements Lox's value-equality rule: values of different variants
// are never equal, Nil equals Nil, numbers and strings compare by value,
// and every other object compares by identity.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	default:
		return a == b
	}
}

// TypeName returns the short, user-facing type name of v, used in the
// native functions' error messages.
func TypeName(v Value) string {
	switch v.(type) {
	case nil:
		return "nil"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case *Function, *Closure:
		return "function"
	case *NativeFn:
		return "native function"
	case *Class:
		return "class"
	case *Instance:
		return "instance"
	case *BoundMethod:
		return "bound method"
	case *Array:
		return "array"
	default:
		return "object"
	}
}

// ToString renders v the way `print` and string concatenation do.
func ToString(v Value) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case string:
		return val
	case *Function:
		return functionString(val)
	case *Closure:
		return functionString(val.Function)
	case *NativeFn:
		return fmt.Sprintf("<native fn %s>", val.Name)
	case *Class:
		return val.Name
	case *Instance:
		return fmt.Sprintf("%s instance", val.Class.Name)
	case *BoundMethod:
		return functionString(val.Method.Function)
	case *Array:
		return arrayString(val)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func functionString(fn *Function) string {
	if fn.Name == "" {
		return "<script>"
	}
	return fmt.Sprintf("<fn %s>", fn.Name)
}

func arrayString(arr *Array) string {
	s := "["
	for i, el := range arr.Elements {
		if i > 0 {
			s += ", "
		}
		s += ToString(el)
	}
	return s + "]"
}
