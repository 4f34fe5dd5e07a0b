package interpreter

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/h4ckm310n/lox/ast"
	"github.com/h4ckm310n/lox/token"
)

// TreeWalkInterpreter executes parsed statements and evaluates expressions
// directly against the AST. It is the secondary execution path: the
// bytecode compiler/VM pair is the primary one, but programs that reach
// this interpreter run against the exact same language semantics.
type TreeWalkInterpreter struct {
	globals     *Environment
	environment *Environment
	out         io.Writer
}

// Creates an instance of a "Tree-Walk Interpreter"
func Make() *TreeWalkInterpreter {
	globals := MakeEnvironment()
	registerNatives(globals)
	return &TreeWalkInterpreter{
		globals:     globals,
		environment: globals,
		out:         os.Stdout,
	}
}

// SetOutput redirects everything "print" writes, for tests and the REPL.
func (i *TreeWalkInterpreter) SetOutput(w io.Writer) {
	i.out = w
}

// registerNatives installs the tree-walker's native functions. Only clock()
// is registered here; the Array natives of vm.registerNatives are not.
func registerNatives(globals *Environment) {
	globals.set("clock", MakeNativeFunction("clock", 0, func(arguments []any) any {
		return float64(time.Now().UnixNano()) / float64(time.Second)
	}))
}

// Interpret executes a list of statements, recovering a panicked runtime
// error (RuntimeError, or a returnSignal escaping top-level code) and
// reporting it as an error rather than crashing the process.
func (i *TreeWalkInterpreter) Interpret(statements []ast.Stmt) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()
	i.executeStatements(statements)
	return nil
}

// executeStatements executes each statement by invoking its Accept method.
func (i *TreeWalkInterpreter) executeStatements(statements []ast.Stmt) {
	for _, s := range statements {
		s.Accept(i)
	}
}

// executeStmt executes the given AST node statement by invoking its Accept method,
// which calls the appropriate Visit method of the interpreter.
func (i *TreeWalkInterpreter) executeStmt(stmt ast.Stmt) {
	stmt.Accept(i)
}

// executeFunctionBody runs a function/method body against env, recovering
// a returnSignal panicked by VisitReturnStmt and yielding its value. Any
// other panic (a runtime error) propagates to the caller unchanged.
func (i *TreeWalkInterpreter) executeFunctionBody(body []ast.Stmt, env *Environment) (result any) {
	previous := i.environment
	i.environment = env
	defer func() {
		i.environment = previous
		if r := recover(); r != nil {
			if ret, ok := r.(returnSignal); ok {
				result = ret.value
				return
			}
			panic(r)
		}
	}()
	i.executeStatements(body)
	return nil
}

// VisitBlockStmt executes all statements in the given ast.BlockStmt
// within a new nested environment. It temporarily replaces the current
// interpreter environment with a new one scoped as a child of the previous environment.
// A deferred function ensures that if a panic occurs, the environment
// is restored before it propagates, providing block-scoped execution.
func (i *TreeWalkInterpreter) VisitBlockStmt(blockStmt ast.BlockStmt) any {
	previous := i.environment
	i.environment = MakeNestedEnvironment(i.environment)
	defer func() { i.environment = previous }()
	i.executeStatements(blockStmt.Statements)
	return nil
}

// VisitExpressionStmt visits an ExpressionStmt node.
// Evaluates the expression but does not return a value.
func (i *TreeWalkInterpreter) VisitExpressionStmt(exprStatement ast.ExpressionStmt) any {
	i.evaluate(exprStatement.Expression)
	return nil
}

// VisitIfStmt evaluates the condition of the given ast.IfStmt.
// If the condition evaluates to true (according to interpreter semantics),
// it executes the 'Then' branch. If an 'Else' branch is present and the
// condition is false, it is executed instead.
func (i *TreeWalkInterpreter) VisitIfStmt(stmt ast.IfStmt) any {
	if i.isTrue(i.evaluate(stmt.Condition)) {
		i.executeStmt(stmt.Then)
	} else if stmt.Else != nil {
		i.executeStmt(stmt.Else)
	}
	return nil
}

// VisitWhileStmt repeatedly executes Body for as long as Condition
// evaluates to a truthy value, re-evaluating Condition before each pass.
func (i *TreeWalkInterpreter) VisitWhileStmt(stmt ast.WhileStmt) any {
	for i.isTrue(i.evaluate(stmt.Condition)) {
		i.executeStmt(stmt.Body)
	}
	return nil
}

// VisitPrintStmt visits a PrintStmt node.
// Evaluates the expression and prints the result.
func (i *TreeWalkInterpreter) VisitPrintStmt(printStmt ast.PrintStmt) any {
	value := i.evaluate(printStmt.Expression)
	fmt.Fprintln(i.out, stringify(value))
	return nil
}

// VisitVarStmt visits a VarStmt node.
// It evaluates the initialiser expression of the statement if it contains one
// and it sets the name of the variable to its evaluated value.
func (i *TreeWalkInterpreter) VisitVarStmt(varStmt ast.VarStmt) any {
	var value any = nil
	if varStmt.Initializer != nil {
		value = i.evaluate(varStmt.Initializer)
	}
	i.environment.set(varStmt.Name.Lexeme, value)
	return nil
}

// VisitFunctionStmt declares a named function in the current environment,
// closing over it so the function can see variables declared after it at
// the same scope (recursion, mutually-recursive siblings via closures).
func (i *TreeWalkInterpreter) VisitFunctionStmt(stmt ast.FunctionStmt) any {
	fn := MakeFunction(stmt, i.environment, false)
	i.environment.set(stmt.Name.Lexeme, fn)
	return nil
}

// VisitReturnStmt unwinds the currently-executing function call by
// panicking a returnSignal, caught by executeFunctionBody.
func (i *TreeWalkInterpreter) VisitReturnStmt(stmt ast.ReturnStmt) any {
	var value any
	if stmt.Value != nil {
		value = i.evaluate(stmt.Value)
	}
	panic(returnSignal{value: value})
}

// VisitClassStmt declares a class, resolving its optional superclass and
// building its method table. Methods close over an environment containing
// "super" (bound to the superclass) when one is present, so method bodies
// can resolve "super.method" dynamically without a separate resolver pass.
func (i *TreeWalkInterpreter) VisitClassStmt(stmt ast.ClassStmt) any {
	var superclass *LoxClass
	if stmt.Superclass != nil {
		value := i.evaluate(*stmt.Superclass)
		class, ok := value.(*LoxClass)
		if !ok {
			panic(CreateRuntimeError(stmt.Superclass.Name.Line, "Superclass must be a class."))
		}
		superclass = class
	}

	i.environment.set(stmt.Name.Lexeme, nil)

	methodEnv := i.environment
	if superclass != nil {
		methodEnv = MakeNestedEnvironment(i.environment)
		methodEnv.set("super", superclass)
	}

	methods := make(map[string]*LoxFunction, len(stmt.Methods))
	for _, method := range stmt.Methods {
		methods[method.Name.Lexeme] = MakeFunction(method, methodEnv, method.Name.Lexeme == "init")
	}

	class := MakeClass(stmt.Name.Lexeme, superclass, methods)
	if err := i.environment.assign(stmt.Name, class); err != nil {
		panic(err)
	}
	return nil
}

// VisitAssignExpression evaluates an assignment expression node and updates
// the value of the corresponding variable in the environment.
func (i *TreeWalkInterpreter) VisitAssignExpression(assign ast.Assign) any {
	value := i.evaluate(assign.Value)
	err := i.environment.assign(assign.Name, value)
	if err != nil {
		panic(err)
	}
	return value
}

// VisitLogicalExpression evaluates "and"/"or" with short-circuiting: the
// right-hand side is only evaluated when the left-hand side's truthiness
// doesn't already decide the result.
func (i *TreeWalkInterpreter) VisitLogicalExpression(logical ast.Logical) any {
	left := i.evaluate(logical.Left)

	if logical.Operator.TokenType == token.OR {
		if i.isTrue(left) {
			return left
		}
	} else {
		if !i.isTrue(left) {
			return left
		}
	}

	return i.evaluate(logical.Right)
}

// VisitCallExpression evaluates a call expression: the callee must
// resolve to a Callable (a function, method, or class), and must be
// invoked with exactly the number of arguments it declares.
func (i *TreeWalkInterpreter) VisitCallExpression(call ast.Call) any {
	callee := i.evaluate(call.Callee)

	arguments := make([]any, 0, len(call.Arguments))
	for _, arg := range call.Arguments {
		arguments = append(arguments, i.evaluate(arg))
	}

	fn, ok := callee.(Callable)
	if !ok {
		panic(CreateRuntimeError(call.Paren.Line, "Can only call functions and classes."))
	}

	if arity := fn.Arity(); arity >= 0 && len(arguments) != arity {
		msg := fmt.Sprintf("Expected %d arguments but got %d.", arity, len(arguments))
		panic(CreateRuntimeError(call.Paren.Line, msg))
	}

	return fn.Call(i, arguments)
}

// VisitGetExpression evaluates a property access. Only instances carry
// fields and methods.
func (i *TreeWalkInterpreter) VisitGetExpression(get ast.Get) any {
	object := i.evaluate(get.Object)
	instance, ok := object.(*LoxInstance)
	if !ok {
		panic(CreateRuntimeError(get.Name.Line, "Only instances have properties."))
	}
	value, err := instance.Get(get.Name)
	if err != nil {
		panic(err)
	}
	return value
}

// VisitSetExpression evaluates a property assignment. Only instances can
// have fields set on them.
func (i *TreeWalkInterpreter) VisitSetExpression(set ast.Set) any {
	object := i.evaluate(set.Object)
	instance, ok := object.(*LoxInstance)
	if !ok {
		panic(CreateRuntimeError(set.Name.Line, "Only instances have fields."))
	}
	value := i.evaluate(set.Value)
	instance.Set(set.Name, value)
	return value
}

// VisitThisExpression resolves "this" from the environment, where it was
// bound by LoxFunction.bind when the enclosing method was looked up off
// an instance.
func (i *TreeWalkInterpreter) VisitThisExpression(this ast.This) any {
	value, err := i.environment.get(this.Keyword)
	if err != nil {
		panic(err)
	}
	return value
}

// VisitSuperExpression resolves a "super.method" expression: it looks up
// "super" and "this" from the environment (both bound by VisitClassStmt
// and LoxFunction.bind respectively) and returns the named method bound
// to the current instance.
func (i *TreeWalkInterpreter) VisitSuperExpression(super ast.Super) any {
	superTok := token.Token{TokenType: token.SUPER, Lexeme: "super", Line: super.Keyword.Line}
	thisTok := token.Token{TokenType: token.THIS, Lexeme: "this", Line: super.Keyword.Line}

	superValue, err := i.environment.get(superTok)
	if err != nil {
		panic(CreateRuntimeError(super.Keyword.Line, "Can't use 'super' outside of a class."))
	}
	superclass := superValue.(*LoxClass)

	thisValue, err := i.environment.get(thisTok)
	if err != nil {
		panic(err)
	}
	instance := thisValue.(*LoxInstance)

	method := superclass.findMethod(super.Method.Lexeme)
	if method == nil {
		msg := fmt.Sprintf("Undefined property '%s'.", super.Method.Lexeme)
		panic(CreateRuntimeError(super.Method.Line, msg))
	}
	return method.bind(instance)
}

// VisitBinary evaluates a binary expression node.
//
// Panics on invalid operands or unsupported operators.
func (i *TreeWalkInterpreter) VisitBinary(binary ast.Binary) any {
	leftResult := i.evaluate(binary.Left)
	rightResult := i.evaluate(binary.Right)
	operator := binary.Operator.TokenType

	switch operator {
	case token.MULT:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			panic(err)
		}
		return leftValue * rightValue

	case token.DIV:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			panic(err)
		}
		return leftValue / rightValue

	case token.SUB:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			panic(err)
		}
		return leftValue - rightValue

	case token.ADD:
		leftValString, leftIsString := leftResult.(string)
		rightValString, rightIsString := rightResult.(string)
		if leftIsString && rightIsString {
			return leftValString + rightValString
		}
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			panic(CreateRuntimeError(binary.Operator.Line, "Operands must be two numbers or two strings."))
		}
		return leftValue + rightValue

	case token.EQUAL_EQUAL:
		return leftResult == rightResult

	case token.NOT_EQUAL:
		return leftResult != rightResult

	case token.LARGER:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			panic(err)
		}
		return leftValue > rightValue

	case token.LARGER_EQUAL:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			panic(err)
		}
		return leftValue >= rightValue

	case token.LESS:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			panic(err)
		}
		return leftValue < rightValue

	case token.LESS_EQUAL:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			panic(err)
		}
		return leftValue <= rightValue

	default:
		message := fmt.Sprintf("operator '%s' not supported", operator)
		panic(CreateRuntimeError(binary.Operator.Line, message))
	}
}

// VisitUnary evaluates a unary expression node.
//
// Panics on invalid operand types or unsupported operators.
func (i *TreeWalkInterpreter) VisitUnary(unary ast.Unary) any {
	rightResult := i.evaluate(unary.Right)
	operator := unary.Operator.TokenType
	switch operator {
	case token.SUB:
		r, err := literalToFloat64(rightResult)
		if err != nil {
			panic(CreateRuntimeError(unary.Operator.Line, "Operand must be a number."))
		}
		return -r
	case token.BANG:
		return !i.isTrue(rightResult)
	default:
		message := fmt.Sprintf("operator '%s' not supported for unary operations", operator)
		panic(CreateRuntimeError(unary.Operator.Line, message))
	}
}

// isTrue determines the "truthiness" of the given value according to
// interpreter rules: nil and false are falsy, everything else is truthy.
func (i *TreeWalkInterpreter) isTrue(value any) bool {
	if value == nil {
		return false
	}
	if b, ok := value.(bool); ok {
		return b
	}
	return true
}

// Retrieves the value for variable.
//
// Raises:
//   - RuntimeError: panics with a RuntimeError if attempting to access an undefined
//     variable
func (i *TreeWalkInterpreter) VisitVariableExpression(expression ast.Variable) any {
	value, err := i.environment.get(expression.Name)
	if err != nil {
		panic(err)
	}
	return value
}

// VisitLiteral returns the value of a Literal node.
func (i *TreeWalkInterpreter) VisitLiteral(literal ast.Literal) any {
	return literal.Value
}

// VisitGrouping evaluates a Grouping expression by evaluating its inner expression.
func (i *TreeWalkInterpreter) VisitGrouping(grouping ast.Grouping) any {
	return i.evaluate(grouping.Expression)
}

// evaluate evaluates any expression node by invoking its Accept method
// with the Interpreter visitor.
func (i *TreeWalkInterpreter) evaluate(expression ast.Expression) any {
	return expression.Accept(i)
}

// stringify renders an interpreter value for "print", matching the
// bytecode VM's object.ToString conventions (nil prints as "nil").
func stringify(value any) string {
	if value == nil {
		return "nil"
	}
	if f, ok := value.(float64); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if s, ok := value.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", value)
}

// literalToFloat64 attempts to convert a literal value into a float64.
func literalToFloat64(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		result, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, err
		}
		return result, nil
	default:
		return 0, fmt.Errorf("unsupported type: %T", value)
	}
}

// isOperandsNumeric validates that both operands are numeric and converts them to float64.
func isOperandsNumeric(operator token.TokenType, left any, right any, tok token.Token) (float64, float64, error) {
	l, lerr := literalToFloat64(left)
	r, rerr := literalToFloat64(right)

	if lerr == nil && rerr == nil {
		return l, r, nil
	}

	return 0, 0, CreateRuntimeError(tok.Line, "Operands must be numbers.")
}
