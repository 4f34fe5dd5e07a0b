package interpreter

import (
	"fmt"

	"github.com/h4ckm310n/lox/token"
)

// Environment binds variable names to values within one lexical scope. A
// block's environment chains to its enclosing scope via `enclosing`, so a
// lookup or assignment walks outward until it finds the name or runs out
// of scopes.
type Environment struct {
	values    map[string]any
	enclosing *Environment
}

func MakeEnvironment() *Environment {
	return &Environment{
		values: make(map[string]any),
	}
}

// MakeNestedEnvironment creates a child scope of enclosing, used for block
// bodies, function calls and loop bodies.
func MakeNestedEnvironment(enclosing *Environment) *Environment {
	return &Environment{
		values:    make(map[string]any),
		enclosing: enclosing,
	}
}

// Sets a variable in the environment
// Parameters:
//   - name: string
//     The name of the variable, i.e its indentifier
//   - value: any
//     The value assigned to the variable.
func (env *Environment) set(name string, value any) {
	env.values[name] = value
}

// Gets the value associated to a variable from the environment, walking
// outward through enclosing scopes if not found locally.
// Parameters:
//   - name: token.Token
//     The variable to retrieve its value
//
// Returns:
//   - any: The value of the specified variable
//   - error: A RuntimeError if the variable has not been previously
//     declared anywhere in the scope chain.
func (env *Environment) get(name token.Token) (any, error) {
	if value, ok := env.values[name.Lexeme]; ok {
		return value, nil
	}
	if env.enclosing != nil {
		return env.enclosing.get(name)
	}
	msg := fmt.Sprintf("Undefined variable '%s'.", name.Lexeme)
	return nil, CreateRuntimeError(name.Line, msg)
}

// assign updates an already-declared variable's value, walking outward
// through enclosing scopes until the binding is found. Unlike set, it
// does not declare a new binding in the current scope.
func (env *Environment) assign(name token.Token, value any) error {
	if _, ok := env.values[name.Lexeme]; ok {
		env.values[name.Lexeme] = value
		return nil
	}
	if env.enclosing != nil {
		return env.enclosing.assign(name, value)
	}
	msg := fmt.Sprintf("Undefined variable '%s'.", name.Lexeme)
	return CreateRuntimeError(name.Line, msg)
}
