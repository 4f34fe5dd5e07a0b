package object

// Class is a Lox class: a name and a table of methods, each a Closure
// bound to the class rather than to any one instance (§3, §4.4). Methods
// are copied wholesale from a superclass's table at OP_INHERIT time, so
// method lookup never has to walk an inheritance chain at call time.
type Class struct {
	Name    string
	Methods map[string]*Closure
}

// NewClass creates an empty class with the given name.
func NewClass(name string) *Class {
	return &Class{Name: name, Methods: make(map[string]*Closure)}
}

// Instance is a runtime object created by calling a Class. Fields are
// created lazily on first assignment; there is no fixed field list.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

// NewInstance creates a fresh, field-less instance of class.
func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[string]Value)}
}

// BoundMethod pairs a method closure with the receiver it was looked up
// on, so that later calling it supplies `this` without needing the
// original instance expression to be re-evaluated (§4.4 method binding).
type BoundMethod struct {
	Receiver Value
	Method   *Closure
}
