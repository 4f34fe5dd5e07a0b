// Package vm implements the stack-based virtual machine that executes
// bytecode produced by the compiler package: a call-frame stack, an
// operand stack, global variables, and the open-upvalue list closures
// need to share mutable captured state.
package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/h4ckm310n/lox/object"
)

const framesMax = 256

// frame is one active function call: the closure being executed, its
// instruction pointer, and the base stack slot its locals start at.
type frame struct {
	closure   *object.Closure
	ip        int
	slotsBase int
}

// VM is one Lox program's complete runtime state.
type VM struct {
	stack   Stack
	frames  []frame
	globals map[string]object.Value

	openUpvalues *object.Upvalue

	out io.Writer
}

// New creates a VM with the standard native functions registered and
// output directed to stdout.
func New() *VM {
	vm := &VM{
		globals: make(map[string]object.Value),
		out:     os.Stdout,
	}
	registerNatives(vm)
	return vm
}

// SetOutput redirects everything `print` writes, for tests and the REPL.
func (vm *VM) SetOutput(w io.Writer) {
	vm.out = w
}

// Interpret runs a freshly compiled top-level script function to
// completion.
func (vm *VM) Interpret(fn *object.Function) error {
	closure := &object.Closure{Function: fn}
	vm.stack.Push(closure)
	vm.frames = append(vm.frames, frame{closure: closure, slotsBase: 0})
	return vm.run()
}

func (vm *VM) currentFrame() *frame {
	return &vm.frames[len(vm.frames)-1]
}

func (vm *VM) readByte(f *frame) byte {
	b := f.closure.Function.Chunk.Code[f.ip]
	f.ip++
	return b
}

func (vm *VM) readShort(f *frame) int {
	hi := vm.readByte(f)
	lo := vm.readByte(f)
	return int(hi)<<8 | int(lo)
}

func (vm *VM) readConstant(f *frame) object.Value {
	return f.closure.Function.Chunk.Constants[vm.readByte(f)]
}

func (vm *VM) run() error {
	f := vm.currentFrame()

	for {
		op := object.Opcode(vm.readByte(f))

		switch op {
		case object.OpConstant:
			vm.stack.Push(vm.readConstant(f))

		case object.OpNil:
			vm.stack.Push(nil)
		case object.OpTrue:
			vm.stack.Push(true)
		case object.OpFalse:
			vm.stack.Push(false)
		case object.OpPop:
			vm.stack.Pop()

		case object.OpGetLocal:
			slot := int(vm.readByte(f))
			vm.stack.Push(vm.stack.Get(f.slotsBase + slot))
		case object.OpSetLocal:
			slot := int(vm.readByte(f))
			vm.stack.Set(f.slotsBase+slot, vm.stack.Peek(0))

		case object.OpGetGlobal:
			name := vm.readConstant(f).(string)
			v, ok := vm.globals[name]
			if !ok {
				return vm.runtimeError(f, "Undefined variable '%s'.", name)
			}
			vm.stack.Push(v)
		case object.OpDefineGlobal:
			name := vm.readConstant(f).(string)
			vm.globals[name] = vm.stack.Pop()
		case object.OpSetGlobal:
			name := vm.readConstant(f).(string)
			if _, ok := vm.globals[name]; !ok {
				return vm.runtimeError(f, "Undefined variable '%s'.", name)
			}
			vm.globals[name] = vm.stack.Peek(0)

		case object.OpGetUpvalue:
			slot := int(vm.readByte(f))
			vm.stack.Push(*f.closure.Upvalues[slot].Location)
		case object.OpSetUpvalue:
			slot := int(vm.readByte(f))
			*f.closure.Upvalues[slot].Location = vm.stack.Peek(0)

		case object.OpGetProperty:
			name := vm.readConstant(f).(string)
			inst, ok := vm.stack.Peek(0).(*object.Instance)
			if !ok {
				return vm.runtimeError(f, "Only instances have properties.")
			}
			if v, ok := inst.Fields[name]; ok {
				vm.stack.Pop()
				vm.stack.Push(v)
				break
			}
			method, ok := inst.Class.Methods[name]
			if !ok {
				return vm.runtimeError(f, "Undefined property '%s'.", name)
			}
			vm.stack.Pop()
			vm.stack.Push(&object.BoundMethod{Receiver: inst, Method: method})

		case object.OpSetProperty:
			name := vm.readConstant(f).(string)
			inst, ok := vm.stack.Peek(1).(*object.Instance)
			if !ok {
				return vm.runtimeError(f, "Only instances have fields.")
			}
			inst.Fields[name] = vm.stack.Peek(0)
			value := vm.stack.Pop()
			vm.stack.Pop()
			vm.stack.Push(value)

		case object.OpGetSuper:
			name := vm.readConstant(f).(string)
			superclass := vm.stack.Pop().(*object.Class)
			this := vm.stack.Pop()
			method, ok := superclass.Methods[name]
			if !ok {
				return vm.runtimeError(f, "Undefined property '%s'.", name)
			}
			vm.stack.Push(&object.BoundMethod{Receiver: this, Method: method})

		case object.OpEqual:
			b := vm.stack.Pop()
			a := vm.stack.Pop()
			vm.stack.Push(object.Equal(a, b))

		case object.OpGreater, object.OpLess, object.OpAdd, object.OpSubtract,
			object.OpMultiply, object.OpDivide:
			if err := vm.binaryOp(f, op); err != nil {
				return err
			}

		case object.OpNot:
			vm.stack.Push(!object.IsTruthy(vm.stack.Pop()))
		case object.OpNegate:
			n, ok := vm.stack.Peek(0).(float64)
			if !ok {
				return vm.runtimeError(f, "Operand must be a number.")
			}
			vm.stack.Pop()
			vm.stack.Push(-n)

		case object.OpPrint:
			fmt.Fprintln(vm.out, object.ToString(vm.stack.Pop()))

		case object.OpJump:
			offset := vm.readShort(f)
			f.ip += offset
		case object.OpJumpIfFalse:
			offset := vm.readShort(f)
			if !object.IsTruthy(vm.stack.Peek(0)) {
				f.ip += offset
			}
		case object.OpLoop:
			offset := vm.readShort(f)
			f.ip -= offset

		case object.OpCall:
			argCount := int(vm.readByte(f))
			if err := vm.callValue(vm.stack.Peek(argCount), argCount); err != nil {
				return err
			}
			f = vm.currentFrame()

		case object.OpInvoke:
			method := vm.readConstant(f).(string)
			argCount := int(vm.readByte(f))
			if err := vm.invoke(method, argCount); err != nil {
				return err
			}
			f = vm.currentFrame()

		case object.OpSuperInvoke:
			method := vm.readConstant(f).(string)
			argCount := int(vm.readByte(f))
			superclass := vm.stack.Pop().(*object.Class)
			if err := vm.invokeFromClass(superclass, method, argCount); err != nil {
				return err
			}
			f = vm.currentFrame()

		case object.OpClosure:
			fn := vm.readConstant(f).(*object.Function)
			closure := &object.Closure{Function: fn, Upvalues: make([]*object.Upvalue, fn.UpvalueCount)}
			for i := 0; i < fn.UpvalueCount; i++ {
				isLocal := vm.readByte(f)
				index := int(vm.readByte(f))
				if isLocal == 1 {
					closure.Upvalues[i] = vm.captureUpvalue(f.slotsBase + index)
				} else {
					closure.Upvalues[i] = f.closure.Upvalues[index]
				}
			}
			vm.stack.Push(closure)

		case object.OpCloseUpvalue:
			vm.closeUpvalues(vm.stack.Len() - 1)
			vm.stack.Pop()

		case object.OpReturn:
			result := vm.stack.Pop()
			vm.closeUpvalues(f.slotsBase)
			vm.frames = vm.frames[:len(vm.frames)-1]
			if len(vm.frames) == 0 {
				vm.stack.Pop()
				return nil
			}
			vm.stack.Truncate(f.slotsBase)
			vm.stack.Push(result)
			f = vm.currentFrame()

		case object.OpClass:
			name := vm.readConstant(f).(string)
			vm.stack.Push(object.NewClass(name))

		case object.OpInherit:
			super, ok := vm.stack.Peek(1).(*object.Class)
			if !ok {
				return vm.runtimeError(f, "Superclass must be a class.")
			}
			class := vm.stack.Peek(0).(*object.Class)
			for name, method := range super.Methods {
				class.Methods[name] = method
			}
			vm.stack.Pop()

		case object.OpMethod:
			name := vm.readConstant(f).(string)
			method := vm.stack.Pop().(*object.Closure)
			class := vm.stack.Peek(0).(*object.Class)
			class.Methods[name] = method

		default:
			return vm.runtimeError(f, "unknown opcode %v", op)
		}
	}
}

func (vm *VM) binaryOp(f *frame, op object.Opcode) error {
	bVal := vm.stack.Peek(0)
	aVal := vm.stack.Peek(1)

	if op == object.OpAdd {
		if as, ok := aVal.(string); ok {
			bs, ok := bVal.(string)
			if !ok {
				return vm.runtimeError(f, "Operands must be two numbers or two strings.")
			}
			vm.stack.Pop()
			vm.stack.Pop()
			vm.stack.Push(as + bs)
			return nil
		}
	}

	a, aok := aVal.(float64)
	b, bok := bVal.(float64)
	if !aok || !bok {
		if op == object.OpAdd {
			return vm.runtimeError(f, "Operands must be two numbers or two strings.")
		}
		return vm.runtimeError(f, "Operands must be numbers.")
	}
	vm.stack.Pop()
	vm.stack.Pop()

	switch op {
	case object.OpAdd:
		vm.stack.Push(a + b)
	case object.OpSubtract:
		vm.stack.Push(a - b)
	case object.OpMultiply:
		vm.stack.Push(a * b)
	case object.OpDivide:
		vm.stack.Push(a / b)
	case object.OpGreater:
		vm.stack.Push(a > b)
	case object.OpLess:
		vm.stack.Push(a < b)
	}
	return nil
}

func (vm *VM) callValue(callee object.Value, argCount int) error {
	switch c := callee.(type) {
	case *object.Closure:
		return vm.call(c, argCount)
	case *object.NativeFn:
		args := make([]object.Value, argCount)
		base := vm.stack.Len() - argCount
		for i := 0; i < argCount; i++ {
			args[i] = vm.stack.Get(base + i)
		}
		result, err := c.Fn(args)
		if err != nil {
			return vm.runtimeError(vm.currentFrame(), "%s", err.Error())
		}
		vm.stack.Truncate(base - 1)
		vm.stack.Push(result)
		return nil
	case *object.Class:
		inst := object.NewInstance(c)
		vm.stack.Set(vm.stack.Len()-argCount-1, inst)
		if init, ok := c.Methods["init"]; ok {
			return vm.call(init, argCount)
		}
		if argCount != 0 {
			return vm.runtimeError(vm.currentFrame(), "Expected 0 arguments but got %d.", argCount)
		}
		return nil
	case *object.BoundMethod:
		vm.stack.Set(vm.stack.Len()-argCount-1, c.Receiver)
		return vm.call(c.Method, argCount)
	default:
		return vm.runtimeError(vm.currentFrame(), "Can only call functions and classes.")
	}
}

func (vm *VM) call(closure *object.Closure, argCount int) error {
	if argCount != closure.Function.Arity {
		return vm.runtimeError(vm.currentFrame(), "Expected %d arguments but got %d.", closure.Function.Arity, argCount)
	}
	if len(vm.frames) >= framesMax {
		return vm.runtimeError(vm.currentFrame(), "Stack overflow.")
	}
	vm.frames = append(vm.frames, frame{
		closure:   closure,
		slotsBase: vm.stack.Len() - argCount - 1,
	})
	return nil
}

func (vm *VM) invoke(name string, argCount int) error {
	receiver, ok := vm.stack.Peek(argCount).(*object.Instance)
	if !ok {
		return vm.runtimeError(vm.currentFrame(), "Only instances have methods.")
	}
	if v, ok := receiver.Fields[name]; ok {
		vm.stack.Set(vm.stack.Len()-argCount-1, v)
		return vm.callValue(v, argCount)
	}
	return vm.invokeFromClass(receiver.Class, name, argCount)
}

func (vm *VM) invokeFromClass(class *object.Class, name string, argCount int) error {
	method, ok := class.Methods[name]
	if !ok {
		return vm.runtimeError(vm.currentFrame(), "Undefined property '%s'.", name)
	}
	return vm.call(method, argCount)
}

// captureUpvalue returns an open upvalue for the given absolute stack
// slot, reusing one already open at that slot if one exists, and keeps
// the VM's open-upvalue list sorted by descending slot so closeUpvalues
// can stop at the first upvalue above the closing boundary.
func (vm *VM) captureUpvalue(slot int) *object.Upvalue {
	var prev *object.Upvalue
	cur := vm.openUpvalues
	for cur != nil && cur.Slot > slot {
		prev = cur
		cur = cur.Next
	}
	if cur != nil && cur.Slot == slot {
		return cur
	}

	created := &object.Upvalue{Location: vm.stack.SlotPtr(slot), Slot: slot, Next: cur}
	if prev == nil {
		vm.openUpvalues = created
	} else {
		prev.Next = created
	}
	return created
}

func (vm *VM) closeUpvalues(lastSlot int) {
	for vm.openUpvalues != nil && vm.openUpvalues.Slot >= lastSlot {
		up := vm.openUpvalues
		up.Close()
		vm.openUpvalues = up.Next
	}
}

func (vm *VM) runtimeError(f *frame, format string, args ...any) error {
	message := fmt.Sprintf(format, args...)
	line := int32(0)
	if f != nil && f.ip-1 >= 0 && f.ip-1 < len(f.closure.Function.Chunk.Lines) {
		line = f.closure.Function.Chunk.Lines[f.ip-1]
	}
	var backtrace []string
	for i := len(vm.frames) - 1; i >= 0; i-- {
		fr := &vm.frames[i]
		name := fr.closure.Function.Name
		if name == "" {
			name = "script"
		}
		ip := fr.ip - 1
		if ip < 0 {
			ip = 0
		}
		backtrace = append(backtrace, fmt.Sprintf("[line %d] in %s", fr.closure.Function.Chunk.Lines[ip], name))
	}
	// Unwind every frame and reset the operand stack so the next
	// Interpret call on this VM starts clean.
	vm.closeUpvalues(0)
	vm.stack.Truncate(0)
	vm.frames = vm.frames[:0]
	return RuntimeError{Message: message, Line: line, Backtrace: backtrace}
}
