// Package compiler implements a single-pass Pratt parser/compiler that
// turns a token stream directly into bytecode: there is no intervening
// AST and no separate variable-resolution pass. Each expression and
// statement is translated to object.Opcode instructions the moment it is
// parsed, the same way the rest of this package's token-driven ancestor
// worked, generalized to the whole Lox grammar (functions, closures,
// classes, inheritance).
package compiler

import (
	"fmt"

	"github.com/h4ckm310n/lox/lexer"
	"github.com/h4ckm310n/lox/object"
	"github.com/h4ckm310n/lox/token"
)

// Precedence levels, lowest to highest. Each binary operator's right-hand
// side is parsed one level higher than the operator's own precedence so
// that e.g. "a - b - c" groups left ((a - b) - c)while "a = b = c" (right
// associative, handled outside this ladder) still works.
const (
	precNone       = iota
	precAssignment // =
	precOr         // or
	precAnd        // and
	precEquality   // == !=
	precComparison // < > <= >=
	precTerm       // + -
	precFactor     // * /
	precUnary      // ! -
	precCall       // . ()
	precPrimary
)

// ParseFunc compiles one expression production starting at p.previous.
// canAssign is true only when the expression appears in a context where
// "=" could legally follow (so `a.b = 1` compiles but `a + b = 1` doesn't
// silently eat the "=").
type ParseFunc func(p *Parser, canAssign bool)

type parseRule struct {
	prefix     ParseFunc
	infix      ParseFunc
	precedence int
}

// FunctionType tells the compiler what kind of callable it is currently
// emitting code for, since top-level script code, plain functions,
// methods, and initializers each treat `return` and the implicit return
// value slightly differently.
type FunctionType int

const (
	TypeFunction FunctionType = iota
	TypeScript
	TypeMethod
	TypeInitializer
)

type local struct {
	name       string
	depth      int
	isCaptured bool
}

// classState tracks the class currently being compiled, so that `this`
// and `super` can be rejected outside of one and chained correctly when
// classes nest.
type classState struct {
	enclosing     *classState
	hasSuperclass bool
}

// funcState is the compiler's per-function scope: its own locals,
// upvalues and emitted chunk. Compiling a nested function pushes a new
// funcState and pops it when the function body is done, mirroring the Go
// call stack with an explicit `enclosing` link instead.
type funcState struct {
	enclosing *funcState
	function  *object.Function
	funcType  FunctionType

	locals     []local
	upvalues   []object.UpvalueRef
	scopeDepth int

	// pendingUpvalues holds the upvalue list of a just-finished nested
	// function, for function() to read after endFunc() pops it.
	pendingUpvalues []object.UpvalueRef
}

// Parser holds the single-pass compiler's entire mutable state: the
// token stream position, the chain of function scopes currently being
// compiled, the enclosing class (if any), and the accumulated errors.
type Parser struct {
	lex *lexer.Lexer

	previous token.Token
	current  token.Token

	hadError  bool
	panicMode bool
	errors    []error

	fc *funcState
	cc *classState

	rules map[token.TokenType]parseRule
}

// Compile compiles a full Lox source string into a top-level script
// function. Even if errors are returned the function returned is safe to
// inspect (e.g. to disassemble), but must not be run.
func Compile(source string) (*object.Function, []error) {
	p := &Parser{lex: lexer.New(source)}
	p.rules = p.buildRules()
	p.pushFunc(TypeScript, "")

	p.advance()
	for !p.check(token.EOF) {
		p.declaration()
	}
	p.consume(token.EOF, "Expect end of expression.")

	fn := p.endFunc()
	return fn, p.errors
}

func (p *Parser) buildRules() map[token.TokenType]parseRule {
	return map[token.TokenType]parseRule{
		token.LPA:          {prefix: (*Parser).grouping, infix: (*Parser).call, precedence: precCall},
		token.DOT:          {infix: (*Parser).dot, precedence: precCall},
		token.SUB:          {prefix: (*Parser).unary, infix: (*Parser).binary, precedence: precTerm},
		token.ADD:          {infix: (*Parser).binary, precedence: precTerm},
		token.DIV:          {infix: (*Parser).binary, precedence: precFactor},
		token.MULT:         {infix: (*Parser).binary, precedence: precFactor},
		token.BANG:         {prefix: (*Parser).unary},
		token.NOT_EQUAL:    {infix: (*Parser).binary, precedence: precEquality},
		token.EQUAL_EQUAL:  {infix: (*Parser).binary, precedence: precEquality},
		token.LARGER:       {infix: (*Parser).binary, precedence: precComparison},
		token.LARGER_EQUAL: {infix: (*Parser).binary, precedence: precComparison},
		token.LESS:         {infix: (*Parser).binary, precedence: precComparison},
		token.LESS_EQUAL:   {infix: (*Parser).binary, precedence: precComparison},
		token.IDENTIFIER:   {prefix: (*Parser).variable},
		token.STRING:       {prefix: (*Parser).stringLiteral},
		token.FLOAT:        {prefix: (*Parser).number},
		token.INT:          {prefix: (*Parser).number},
		token.AND:          {infix: (*Parser).and, precedence: precAnd},
		token.OR:           {infix: (*Parser).or, precedence: precOr},
		token.FALSE:        {prefix: (*Parser).literal},
		token.TRUE:         {prefix: (*Parser).literal},
		token.NULL:         {prefix: (*Parser).literal},
		token.SUPER:        {prefix: (*Parser).super},
		token.THIS:         {prefix: (*Parser).this},
	}
}

func (p *Parser) getRule(t token.TokenType) parseRule {
	return p.rules[t]
}

// --- token stream -----------------------------------------------------

func (p *Parser) advance() {
	p.previous = p.current
	for {
		tok, err := p.lex.NextToken()
		if err == nil {
			p.current = tok
			return
		}
		p.errorAt(p.current, err.Error())
	}
}

func (p *Parser) check(t token.TokenType) bool {
	return p.current.TokenType == t
}

func (p *Parser) match(t token.TokenType) bool {
	if !p.check(t) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) consume(t token.TokenType, message string) {
	if p.current.TokenType == t {
		p.advance()
		return
	}
	p.errorAt(p.current, message)
}

func (p *Parser) errorAt(tok token.Token, message string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.hadError = true
	p.errors = append(p.errors, CompileError{
		Line:    tok.Line,
		AtEnd:   tok.TokenType == token.EOF,
		Lexeme:  tok.Lexeme,
		Message: message,
	})
}

func (p *Parser) errorAtPrevious(message string) {
	p.errorAt(p.previous, message)
}

// synchronize discards tokens until it reaches a plausible statement
// boundary, so one mistake reports one error instead of a cascade.
func (p *Parser) synchronize() {
	p.panicMode = false
	for p.current.TokenType != token.EOF {
		if p.previous.TokenType == token.SEMICOLON {
			return
		}
		switch p.current.TokenType {
		case token.CLASS, token.FUNC, token.VAR, token.FOR, token.IF,
			token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}

// --- emitting bytecode --------------------------------------------------

func (p *Parser) chunk() *object.Chunk {
	return p.fc.function.Chunk
}

func (p *Parser) emitByte(b byte) {
	p.chunk().Write(b, p.previous.Line)
}

func (p *Parser) emitOp(op object.Opcode) {
	p.emitByte(byte(op))
}

func (p *Parser) emitOpByte(op object.Opcode, operand byte) {
	p.emitByte(byte(op))
	p.emitByte(operand)
}

func (p *Parser) emitLoop(loopStart int) {
	p.emitOp(object.OpLoop)
	offset := len(p.chunk().Code) - loopStart + 2
	if offset > 0xffff {
		p.errorAtPrevious("Loop body too large.")
	}
	p.emitByte(byte(offset >> 8))
	p.emitByte(byte(offset))
}

func (p *Parser) emitJump(op object.Opcode) int {
	p.emitOp(op)
	p.emitByte(0xff)
	p.emitByte(0xff)
	return len(p.chunk().Code) - 2
}

func (p *Parser) patchJump(offset int) {
	jump := len(p.chunk().Code) - offset - 2
	if jump > 0xffff {
		p.errorAtPrevious("Too much code to jump over.")
	}
	p.chunk().Code[offset] = byte(jump >> 8)
	p.chunk().Code[offset+1] = byte(jump)
}

func (p *Parser) makeConstant(v object.Value) byte {
	index := p.chunk().AddConstant(v)
	if index > 255 {
		p.errorAtPrevious("Too many constants in one chunk.")
		return 0
	}
	return byte(index)
}

func (p *Parser) emitConstant(v object.Value) {
	p.emitOpByte(object.OpConstant, p.makeConstant(v))
}

func (p *Parser) identifierConstant(name token.Token) byte {
	return p.makeConstant(name.Lexeme)
}

func (p *Parser) emitReturn() {
	if p.fc.funcType == TypeInitializer {
		p.emitOpByte(object.OpGetLocal, 0)
	} else {
		p.emitOp(object.OpNil)
	}
	p.emitOp(object.OpReturn)
}

// --- function scopes ----------------------------------------------------

func (p *Parser) pushFunc(ft FunctionType, name string) {
	fn := &object.Function{Name: name, Chunk: &object.Chunk{}}
	fc := &funcState{
		enclosing: p.fc,
		function:  fn,
		funcType:  ft,
	}
	// Slot 0 is reserved for the receiver in methods/initializers, and
	// for the (unnamed, unusable) implicit function value otherwise.
	receiver := ""
	if ft == TypeMethod || ft == TypeInitializer {
		receiver = "this"
	}
	fc.locals = append(fc.locals, local{name: receiver, depth: 0})
	p.fc = fc
}

func (p *Parser) endFunc() *object.Function {
	p.emitReturn()
	fn := p.fc.function
	fn.UpvalueCount = len(p.fc.upvalues)
	upvalues := p.fc.upvalues
	p.fc = p.fc.enclosing
	if p.fc != nil {
		p.fc.pendingUpvalues = upvalues
	}
	return fn
}

// --- scopes and locals ---------------------------------------------------

func (p *Parser) beginScope() {
	p.fc.scopeDepth++
}

func (p *Parser) endScope() {
	p.fc.scopeDepth--
	for len(p.fc.locals) > 0 && p.fc.locals[len(p.fc.locals)-1].depth > p.fc.scopeDepth {
		last := p.fc.locals[len(p.fc.locals)-1]
		if last.isCaptured {
			p.emitOp(object.OpCloseUpvalue)
		} else {
			p.emitOp(object.OpPop)
		}
		p.fc.locals = p.fc.locals[:len(p.fc.locals)-1]
	}
}

func (p *Parser) declareVariable(name token.Token) {
	if p.fc.scopeDepth == 0 {
		return
	}
	for i := len(p.fc.locals) - 1; i >= 0; i-- {
		l := p.fc.locals[i]
		if l.depth != -1 && l.depth < p.fc.scopeDepth {
			break
		}
		if l.name == name.Lexeme {
			p.errorAtPrevious(fmt.Sprintf("Already a variable with name '%s' in this scope.", name.Lexeme))
		}
	}
	p.fc.locals = append(p.fc.locals, local{name: name.Lexeme, depth: -1})
}

func (p *Parser) parseVariable(errorMsg string) byte {
	p.consume(token.IDENTIFIER, errorMsg)
	p.declareVariable(p.previous)
	if p.fc.scopeDepth > 0 {
		return 0
	}
	return p.identifierConstant(p.previous)
}

func (p *Parser) markInitialized() {
	if p.fc.scopeDepth == 0 {
		return
	}
	p.fc.locals[len(p.fc.locals)-1].depth = p.fc.scopeDepth
}

func (p *Parser) defineVariable(global byte) {
	if p.fc.scopeDepth > 0 {
		p.markInitialized()
		return
	}
	p.emitOpByte(object.OpDefineGlobal, global)
}

func resolveLocalIn(fc *funcState, name string) int {
	for i := len(fc.locals) - 1; i >= 0; i-- {
		if fc.locals[i].name == name {
			return i
		}
	}
	return -1
}

func (p *Parser) resolveLocal(fc *funcState, name token.Token) int {
	i := resolveLocalIn(fc, name.Lexeme)
	if i == -1 {
		return -1
	}
	if fc.locals[i].depth == -1 {
		p.errorAtPrevious("Can't read local variable in its own initializer.")
	}
	return i
}

func (p *Parser) addUpvalue(fc *funcState, index int, isLocal bool) int {
	for i, up := range fc.upvalues {
		if up.Index == index && up.IsLocal == isLocal {
			return i
		}
	}
	fc.upvalues = append(fc.upvalues, object.UpvalueRef{IsLocal: isLocal, Index: index})
	return len(fc.upvalues) - 1
}

func (p *Parser) resolveUpvalue(fc *funcState, name token.Token) int {
	if fc.enclosing == nil {
		return -1
	}
	if local := p.resolveLocal(fc.enclosing, name); local != -1 {
		fc.enclosing.locals[local].isCaptured = true
		return p.addUpvalue(fc, local, true)
	}
	if up := p.resolveUpvalue(fc.enclosing, name); up != -1 {
		return p.addUpvalue(fc, up, false)
	}
	return -1
}

// --- declarations and statements -----------------------------------------

func (p *Parser) declaration() {
	switch {
	case p.match(token.CLASS):
		p.classDeclaration()
	case p.match(token.FUNC):
		p.funDeclaration()
	case p.match(token.VAR):
		p.varDeclaration()
	default:
		p.statement()
	}
	if p.panicMode {
		p.synchronize()
	}
}

func (p *Parser) varDeclaration() {
	global := p.parseVariable("Expect variable name.")
	if p.match(token.ASSIGN) {
		p.expression()
	} else {
		p.emitOp(object.OpNil)
	}
	p.consume(token.SEMICOLON, "Expect ';' after variable declaration.")
	p.defineVariable(global)
}

func (p *Parser) funDeclaration() {
	global := p.parseVariable("Expect function name.")
	p.markInitialized()
	p.function(TypeFunction)
	p.defineVariable(global)
}

// function compiles a function's parameter list and body, then emits an
// OP_CLOSURE that builds the runtime closure from the freshly compiled
// object.Function plus one (isLocal, index) pair per upvalue it needs.
func (p *Parser) function(ft FunctionType) {
	name := p.previous.Lexeme
	p.pushFunc(ft, name)
	p.beginScope()

	p.consume(token.LPA, "Expect '(' after function name.")
	if !p.check(token.RPA) {
		for {
			p.fc.function.Arity++
			if p.fc.function.Arity > 255 {
				p.errorAt(p.current, "Can't have more than 255 parameters.")
			}
			constant := p.parseVariable("Expect parameter name.")
			p.defineVariable(constant)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RPA, "Expect ')' after parameters.")
	p.consume(token.LCUR, "Expect '{' before function body.")
	p.block()

	fn := p.endFunc()
	upvalues := p.fc.pendingUpvalues
	p.fc.pendingUpvalues = nil

	p.emitOpByte(object.OpClosure, p.makeConstant(fn))
	for _, up := range upvalues {
		if up.IsLocal {
			p.emitByte(1)
		} else {
			p.emitByte(0)
		}
		p.emitByte(byte(up.Index))
	}
}

func (p *Parser) classDeclaration() {
	p.consume(token.IDENTIFIER, "Expect class name.")
	className := p.previous
	nameConstant := p.identifierConstant(className)
	p.declareVariable(className)

	p.emitOpByte(object.OpClass, nameConstant)
	p.defineVariable(nameConstant)

	cs := &classState{enclosing: p.cc}
	p.cc = cs

	if p.match(token.LESS) {
		p.consume(token.IDENTIFIER, "Expect superclass name.")
		p.variableNamed(p.previous, false)
		if p.previous.Lexeme == className.Lexeme {
			p.errorAtPrevious("A class can't inherit from itself.")
		}

		p.beginScope()
		p.fc.locals = append(p.fc.locals, local{name: "super", depth: p.fc.scopeDepth})
		p.variableNamed(className, false)
		p.emitOp(object.OpInherit)
		cs.hasSuperclass = true
	}

	p.variableNamed(className, false)
	p.consume(token.LCUR, "Expect '{' before class body.")
	for !p.check(token.RCUR) && !p.check(token.EOF) {
		p.method()
	}
	p.consume(token.RCUR, "Expect '}' after class body.")
	p.emitOp(object.OpPop)

	if cs.hasSuperclass {
		p.endScope()
	}
	p.cc = cs.enclosing
}

func (p *Parser) method() {
	p.consume(token.IDENTIFIER, "Expect method name.")
	name := p.previous
	nameConstant := p.identifierConstant(name)

	ft := TypeMethod
	if name.Lexeme == "init" {
		ft = TypeInitializer
	}
	p.function(ft)
	p.emitOpByte(object.OpMethod, nameConstant)
}

func (p *Parser) statement() {
	switch {
	case p.match(token.PRINT):
		p.printStatement()
	case p.match(token.IF):
		p.ifStatement()
	case p.match(token.RETURN):
		p.returnStatement()
	case p.match(token.WHILE):
		p.whileStatement()
	case p.match(token.FOR):
		p.forStatement()
	case p.match(token.LCUR):
		p.beginScope()
		p.block()
		p.endScope()
	default:
		p.expressionStatement()
	}
}

func (p *Parser) block() {
	for !p.check(token.RCUR) && !p.check(token.EOF) {
		p.declaration()
	}
	p.consume(token.RCUR, "Expect '}' after block.")
}

func (p *Parser) printStatement() {
	p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after value.")
	p.emitOp(object.OpPrint)
}

func (p *Parser) expressionStatement() {
	p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after expression.")
	p.emitOp(object.OpPop)
}

func (p *Parser) returnStatement() {
	if p.fc.funcType == TypeScript {
		p.errorAtPrevious("Can't return from top-level code.")
	}
	if p.match(token.SEMICOLON) {
		p.emitReturn()
		return
	}
	if p.fc.funcType == TypeInitializer {
		p.errorAtPrevious("Can't return a value from an initializer.")
	}
	p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after return value.")
	p.emitOp(object.OpReturn)
}

func (p *Parser) ifStatement() {
	p.consume(token.LPA, "Expect '(' after 'if'.")
	p.expression()
	p.consume(token.RPA, "Expect ')' after condition.")

	thenJump := p.emitJump(object.OpJumpIfFalse)
	p.emitOp(object.OpPop)
	p.statement()

	elseJump := p.emitJump(object.OpJump)
	p.patchJump(thenJump)
	p.emitOp(object.OpPop)

	if p.match(token.ELSE) {
		p.statement()
	}
	p.patchJump(elseJump)
}

func (p *Parser) whileStatement() {
	loopStart := len(p.chunk().Code)
	p.consume(token.LPA, "Expect '(' after 'while'.")
	p.expression()
	p.consume(token.RPA, "Expect ')' after condition.")

	exitJump := p.emitJump(object.OpJumpIfFalse)
	p.emitOp(object.OpPop)
	p.statement()
	p.emitLoop(loopStart)

	p.patchJump(exitJump)
	p.emitOp(object.OpPop)
}

// forStatement desugars the C-style for loop into the equivalent while
// loop's bytecode shape directly, with no separate AST node for `for`.
func (p *Parser) forStatement() {
	p.beginScope()
	p.consume(token.LPA, "Expect '(' after 'for'.")

	switch {
	case p.match(token.SEMICOLON):
	case p.match(token.VAR):
		p.varDeclaration()
	default:
		p.expressionStatement()
	}

	loopStart := len(p.chunk().Code)
	exitJump := -1
	if !p.match(token.SEMICOLON) {
		p.expression()
		p.consume(token.SEMICOLON, "Expect ';' after loop condition.")
		exitJump = p.emitJump(object.OpJumpIfFalse)
		p.emitOp(object.OpPop)
	}

	if !p.match(token.RPA) {
		bodyJump := p.emitJump(object.OpJump)
		incrementStart := len(p.chunk().Code)
		p.expression()
		p.emitOp(object.OpPop)
		p.consume(token.RPA, "Expect ')' after for clauses.")

		p.emitLoop(loopStart)
		loopStart = incrementStart
		p.patchJump(bodyJump)
	}

	p.statement()
	p.emitLoop(loopStart)

	if exitJump != -1 {
		p.patchJump(exitJump)
		p.emitOp(object.OpPop)
	}
	p.endScope()
}

// --- expressions ----------------------------------------------------------

func (p *Parser) expression() {
	p.parsePrecedence(precAssignment)
}

func (p *Parser) parsePrecedence(precedence int) {
	p.advance()
	prefix := p.getRule(p.previous.TokenType).prefix
	if prefix == nil {
		p.errorAtPrevious("Expect expression.")
		return
	}
	canAssign := precedence <= precAssignment
	prefix(p, canAssign)

	for precedence <= p.getRule(p.current.TokenType).precedence {
		p.advance()
		infix := p.getRule(p.previous.TokenType).infix
		infix(p, canAssign)
	}

	if canAssign && p.match(token.ASSIGN) {
		p.errorAtPrevious("Invalid assignment target.")
	}
}

func (p *Parser) number(canAssign bool) {
	p.emitConstant(p.previous.Literal)
}

func (p *Parser) stringLiteral(canAssign bool) {
	p.emitConstant(p.previous.Literal)
}

func (p *Parser) literal(canAssign bool) {
	switch p.previous.TokenType {
	case token.FALSE:
		p.emitOp(object.OpFalse)
	case token.TRUE:
		p.emitOp(object.OpTrue)
	case token.NULL:
		p.emitOp(object.OpNil)
	}
}

func (p *Parser) grouping(canAssign bool) {
	p.expression()
	p.consume(token.RPA, "Expect ')' after expression.")
}

func (p *Parser) unary(canAssign bool) {
	opType := p.previous.TokenType
	p.parsePrecedence(precUnary)
	switch opType {
	case token.SUB:
		p.emitOp(object.OpNegate)
	case token.BANG:
		p.emitOp(object.OpNot)
	}
}

func (p *Parser) binary(canAssign bool) {
	opType := p.previous.TokenType
	rule := p.getRule(opType)
	p.parsePrecedence(rule.precedence + 1)

	switch opType {
	case token.NOT_EQUAL:
		p.emitOp(object.OpEqual)
		p.emitOp(object.OpNot)
	case token.EQUAL_EQUAL:
		p.emitOp(object.OpEqual)
	case token.LARGER:
		p.emitOp(object.OpGreater)
	case token.LARGER_EQUAL:
		p.emitOp(object.OpLess)
		p.emitOp(object.OpNot)
	case token.LESS:
		p.emitOp(object.OpLess)
	case token.LESS_EQUAL:
		p.emitOp(object.OpGreater)
		p.emitOp(object.OpNot)
	case token.ADD:
		p.emitOp(object.OpAdd)
	case token.SUB:
		p.emitOp(object.OpSubtract)
	case token.MULT:
		p.emitOp(object.OpMultiply)
	case token.DIV:
		p.emitOp(object.OpDivide)
	}
}

func (p *Parser) and(canAssign bool) {
	endJump := p.emitJump(object.OpJumpIfFalse)
	p.emitOp(object.OpPop)
	p.parsePrecedence(precAnd)
	p.patchJump(endJump)
}

func (p *Parser) or(canAssign bool) {
	elseJump := p.emitJump(object.OpJumpIfFalse)
	endJump := p.emitJump(object.OpJump)
	p.patchJump(elseJump)
	p.emitOp(object.OpPop)
	p.parsePrecedence(precOr)
	p.patchJump(endJump)
}

func (p *Parser) call(canAssign bool) {
	argCount := p.argumentList()
	p.emitOpByte(object.OpCall, argCount)
}

func (p *Parser) argumentList() byte {
	var count int
	if !p.check(token.RPA) {
		for {
			p.expression()
			if count == 255 {
				p.errorAtPrevious("Can't have more than 255 arguments.")
			}
			count++
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RPA, "Expect ')' after arguments.")
	return byte(count)
}

func (p *Parser) dot(canAssign bool) {
	p.consume(token.IDENTIFIER, "Expect property name after '.'.")
	name := p.identifierConstant(p.previous)

	switch {
	case canAssign && p.match(token.ASSIGN):
		p.expression()
		p.emitOpByte(object.OpSetProperty, name)
	case p.match(token.LPA):
		argCount := p.argumentList()
		p.emitOpByte(object.OpInvoke, name)
		p.emitByte(argCount)
	default:
		p.emitOpByte(object.OpGetProperty, name)
	}
}

func (p *Parser) variable(canAssign bool) {
	p.variableNamed(p.previous, canAssign)
}

// variableNamed emits the get/set bytecode for an identifier already
// consumed into name, resolving it as local, upvalue, or global in that
// order — the same resolution order used for `this` and `super`.
func (p *Parser) variableNamed(name token.Token, canAssign bool) {
	var getOp, setOp object.Opcode
	arg := p.resolveLocal(p.fc, name)
	if arg != -1 {
		getOp, setOp = object.OpGetLocal, object.OpSetLocal
	} else if arg = p.resolveUpvalue(p.fc, name); arg != -1 {
		getOp, setOp = object.OpGetUpvalue, object.OpSetUpvalue
	} else {
		arg = int(p.identifierConstant(name))
		getOp, setOp = object.OpGetGlobal, object.OpSetGlobal
	}

	if canAssign && p.match(token.ASSIGN) {
		p.expression()
		p.emitOpByte(setOp, byte(arg))
	} else {
		p.emitOpByte(getOp, byte(arg))
	}
}

func (p *Parser) this(canAssign bool) {
	if p.cc == nil {
		p.errorAtPrevious("Can't use 'this' outside of a class.")
		return
	}
	p.variableNamed(p.previous, false)
}

func (p *Parser) super(canAssign bool) {
	if p.cc == nil {
		p.errorAtPrevious("Can't use 'super' outside of a class.")
	} else if !p.cc.hasSuperclass {
		p.errorAtPrevious("Can't use 'super' in a class with no superclass.")
	}

	p.consume(token.DOT, "Expect '.' after 'super'.")
	p.consume(token.IDENTIFIER, "Expect superclass method name.")
	name := p.identifierConstant(p.previous)

	p.variableNamed(token.Token{TokenType: token.IDENTIFIER, Lexeme: "this"}, false)
	if p.match(token.LPA) {
		argCount := p.argumentList()
		p.variableNamed(token.Token{TokenType: token.IDENTIFIER, Lexeme: "super"}, false)
		p.emitOpByte(object.OpSuperInvoke, name)
		p.emitByte(argCount)
	} else {
		p.variableNamed(token.Token{TokenType: token.IDENTIFIER, Lexeme: "super"}, false)
		p.emitOpByte(object.OpGetSuper, name)
	}
}

