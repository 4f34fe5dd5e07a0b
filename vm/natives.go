package vm

import (
	"fmt"
	"time"

	"github.com/h4ckm310n/lox/object"
)

// registerNatives installs the native functions every VM starts with:
// clock() and a small Array toolkit (Array/push/get/set/len). Neither
// has bytecode or grammar support of its own — they are ordinary global
// NativeFn values a Lox program calls like any other function.
func registerNatives(vm *VM) {
	define := func(name string, fn func(args []object.Value) (object.Value, error)) {
		vm.globals[name] = &object.NativeFn{Name: name, Fn: fn}
	}

	define("clock", func(args []object.Value) (object.Value, error) {
		return float64(time.Now().UnixNano()) / float64(time.Second), nil
	})

	define("Array", func(args []object.Value) (object.Value, error) {
		return object.NewArray(), nil
	})

	define("push", func(args []object.Value) (object.Value, error) {
		arr, err := arrayArg(args, 0, "push")
		if err != nil {
			return nil, err
		}
		if len(args) != 2 {
			return nil, fmt.Errorf("push() takes 2 arguments but got %d", len(args))
		}
		arr.Elements = append(arr.Elements, args[1])
		return nil, nil
	})

	define("get", func(args []object.Value) (object.Value, error) {
		arr, err := arrayArg(args, 0, "get")
		if err != nil {
			return nil, err
		}
		idx, err := indexArg(args, 1, "get")
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(arr.Elements) {
			return nil, fmt.Errorf("array index out of range: %d", idx)
		}
		return arr.Elements[idx], nil
	})

	define("set", func(args []object.Value) (object.Value, error) {
		arr, err := arrayArg(args, 0, "set")
		if err != nil {
			return nil, err
		}
		idx, err := indexArg(args, 1, "set")
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(arr.Elements) {
			return nil, fmt.Errorf("array index out of range: %d", idx)
		}
		if len(args) != 3 {
			return nil, fmt.Errorf("set() takes 3 arguments but got %d", len(args))
		}
		arr.Elements[idx] = args[2]
		return nil, nil
	})

	define("len", func(args []object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("len() takes 1 argument but got %d", len(args))
		}
		switch v := args[0].(type) {
		case string:
			return float64(len(v)), nil
		case *object.Array:
			return float64(len(v.Elements)), nil
		default:
			return nil, fmt.Errorf("len() expects a string or array, got %s", object.TypeName(v))
		}
	})
}

func arrayArg(args []object.Value, i int, fnName string) (*object.Array, error) {
	if i >= len(args) {
		return nil, fmt.Errorf("%s() expects an array argument", fnName)
	}
	arr, ok := args[i].(*object.Array)
	if !ok {
		return nil, fmt.Errorf("%s() expects an array, got %s", fnName, object.TypeName(args[i]))
	}
	return arr, nil
}

func indexArg(args []object.Value, i int, fnName string) (int, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("%s() expects a numeric index argument", fnName)
	}
	n, ok := args[i].(float64)
	if !ok {
		return 0, fmt.Errorf("%s() expects a numeric index, got %s", fnName, object.TypeName(args[i]))
	}
	return int(n), nil
}
