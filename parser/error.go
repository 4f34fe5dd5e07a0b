package parser

import (
	"fmt"

	"github.com/h4ckm310n/lox/token"
)

// SyntaxError is a parse-time failure tied to the token where it was
// found, so the message can point at "the offending lexeme" rather than
// just the line it's on.
type SyntaxError struct {
	Line    int32
	AtEnd   bool
	Lexeme  string
	Message string
}

func CreateSyntaxError(tok token.Token, message string) SyntaxError {
	return SyntaxError{
		Line:    tok.Line,
		AtEnd:   tok.TokenType == token.EOF,
		Lexeme:  tok.Lexeme,
		Message: message,
	}
}

func (e SyntaxError) Error() string {
	if e.AtEnd {
		return fmt.Sprintf("[line %d] Error at end: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Line, e.Lexeme, e.Message)
}
