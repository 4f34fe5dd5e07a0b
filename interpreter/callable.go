package interpreter

import (
	"fmt"

	"github.com/h4ckm310n/lox/ast"
	"github.com/h4ckm310n/lox/token"
)

// Callable is implemented by any value that can appear on the left of a
// call expression: user-defined functions/methods, classes (whose call
// constructs an instance), and native functions.
type Callable interface {
	Arity() int
	Call(interp *TreeWalkInterpreter, arguments []any) any
	String() string
}

// returnSignal is panicked by VisitReturnStmt and recovered by the
// function call that's currently executing its body. This mirrors the
// way the rest of the tree-walker reports errors: a panic/recover pair
// rather than threading a control-flow result through every Visit method.
type returnSignal struct {
	value any
}

// NativeFunction wraps a Go function as a callable Lox value, the
// tree-walker's equivalent of the bytecode VM's object.NativeFn. Its Arity
// is always -1, so calls to it are not arity-checked; the arity passed to
// MakeNativeFunction is not stored.
type NativeFunction struct {
	name string
	fn   func(arguments []any) any
}

func MakeNativeFunction(name string, arity int, fn func(arguments []any) any) *NativeFunction {
	return &NativeFunction{name: name, fn: fn}
}

func (n *NativeFunction) Arity() int { return -1 }

func (n *NativeFunction) Call(interp *TreeWalkInterpreter, arguments []any) any {
	return n.fn(arguments)
}

func (n *NativeFunction) String() string {
	return fmt.Sprintf("<native fn %s>", n.name)
}

// LoxFunction is a user-defined function or method, closing over the
// environment that was active at its declaration site.
type LoxFunction struct {
	declaration   ast.FunctionStmt
	closure       *Environment
	isInitializer bool
}

func MakeFunction(declaration ast.FunctionStmt, closure *Environment, isInitializer bool) *LoxFunction {
	return &LoxFunction{declaration: declaration, closure: closure, isInitializer: isInitializer}
}

func (f *LoxFunction) Arity() int {
	return len(f.declaration.Params)
}

// bind returns a copy of f whose closure has "this" bound to instance,
// used when a method is looked up off an instance (instance.method) so
// the returned function carries its receiver with it.
func (f *LoxFunction) bind(instance *LoxInstance) *LoxFunction {
	env := MakeNestedEnvironment(f.closure)
	env.set("this", instance)
	return MakeFunction(f.declaration, env, f.isInitializer)
}

func (f *LoxFunction) Call(interp *TreeWalkInterpreter, arguments []any) any {
	env := MakeNestedEnvironment(f.closure)
	for i, param := range f.declaration.Params {
		env.set(param.Lexeme, arguments[i])
	}

	result := interp.executeFunctionBody(f.declaration.Body, env)

	if f.isInitializer {
		this, _ := f.closure.values["this"]
		return this
	}
	return result
}

func (f *LoxFunction) String() string {
	return fmt.Sprintf("<fn %s>", f.declaration.Name.Lexeme)
}

// LoxClass is a class value: calling it constructs a LoxInstance, running
// "init" (if defined) against the new instance.
type LoxClass struct {
	Name       string
	superclass *LoxClass
	methods    map[string]*LoxFunction
}

func MakeClass(name string, superclass *LoxClass, methods map[string]*LoxFunction) *LoxClass {
	return &LoxClass{Name: name, superclass: superclass, methods: methods}
}

func (c *LoxClass) findMethod(name string) *LoxFunction {
	if method, ok := c.methods[name]; ok {
		return method
	}
	if c.superclass != nil {
		return c.superclass.findMethod(name)
	}
	return nil
}

func (c *LoxClass) Arity() int {
	if init := c.findMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

func (c *LoxClass) Call(interp *TreeWalkInterpreter, arguments []any) any {
	instance := MakeInstance(c)
	if init := c.findMethod("init"); init != nil {
		init.bind(instance).Call(interp, arguments)
	}
	return instance
}

func (c *LoxClass) String() string {
	return c.Name
}

// LoxInstance is a runtime object created by calling a LoxClass. Fields
// set directly on the instance shadow methods of the same name, matching
// the bytecode VM's object.Instance semantics.
type LoxInstance struct {
	class  *LoxClass
	fields map[string]any
}

func MakeInstance(class *LoxClass) *LoxInstance {
	return &LoxInstance{class: class, fields: make(map[string]any)}
}

func (inst *LoxInstance) Get(name token.Token) (any, error) {
	if value, ok := inst.fields[name.Lexeme]; ok {
		return value, nil
	}
	if method := inst.class.findMethod(name.Lexeme); method != nil {
		return method.bind(inst), nil
	}
	msg := fmt.Sprintf("Undefined property '%s'.", name.Lexeme)
	return nil, CreateRuntimeError(name.Line, msg)
}

func (inst *LoxInstance) Set(name token.Token, value any) {
	inst.fields[name.Lexeme] = value
}

func (inst *LoxInstance) String() string {
	return fmt.Sprintf("%s instance", inst.class.Name)
}
