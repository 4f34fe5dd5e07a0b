package lexer

import (
	"github.com/h4ckm310n/lox/token"
	"testing"
)

func collectTypes(t *testing.T, source string) []token.TokenType {
	t.Helper()
	lex := New(source)
	var kinds []token.TokenType
	for {
		tok, err := lex.NextToken()
		if err != nil {
			t.Fatalf("NextToken() raised an error: %v", err)
		}
		kinds = append(kinds, tok.TokenType)
		if tok.TokenType == token.EOF {
			return kinds
		}
	}
}

func assertTypes(t *testing.T, got, want []token.TokenType) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d tokens %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestOperatorsSuccess(t *testing.T) {
	want := []token.TokenType{
		token.EQUAL_EQUAL, token.DIV, token.ASSIGN, token.MULT, token.ADD,
		token.LARGER, token.SUB, token.LESS, token.NOT_EQUAL,
		token.LESS_EQUAL, token.LARGER_EQUAL, token.BANG, token.BANG,
		token.EOF,
	}
	assertTypes(t, collectTypes(t, "==/=*+>-<!=<=>=!!"), want)
}

func TestScanSuccess(t *testing.T) {
	want := []token.TokenType{
		token.LPA, token.RPA, token.LCUR, token.RCUR, token.MULT, token.MULT,
		token.SEMICOLON, token.ADD, token.NOT_EQUAL, token.LESS_EQUAL,
		token.DOT, token.COMMA, token.EOF,
	}
	assertTypes(t, collectTypes(t, "(){}**;+!=<=.,"), want)
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	want := []token.TokenType{
		token.CLASS, token.IDENTIFIER, token.LCUR, token.FUNC,
		token.IDENTIFIER, token.LPA, token.RPA, token.LCUR, token.RETURN,
		token.THIS, token.DOT, token.IDENTIFIER, token.SEMICOLON, token.RCUR,
		token.RCUR, token.EOF,
	}
	assertTypes(t, collectTypes(t, "class Foo { fun bar() { return this.x; } }"), want)
}

func TestStringLiteral(t *testing.T) {
	lex := New(`"hello\nworld"`)
	tok, err := lex.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.TokenType != token.STRING {
		t.Fatalf("got %s, want STRING", tok.TokenType)
	}
	// Lox strings do not process escapes: the backslash survives verbatim.
	want := `hello\nworld`
	if tok.Literal != want {
		t.Errorf("got literal %q, want %q", tok.Literal, want)
	}
}

func TestUnterminatedString(t *testing.T) {
	lex := New(`"unterminated`)
	if _, err := lex.NextToken(); err == nil {
		t.Fatal("expected an error for an unterminated string")
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	lex := New("/* never closed")
	if _, err := lex.NextToken(); err == nil {
		t.Fatal("expected an error for an unterminated block comment")
	}
}

func TestNumberLiterals(t *testing.T) {
	lex := New("123 45.67 8.")
	first, err := lex.NextToken()
	if err != nil || first.TokenType != token.FLOAT || first.Literal != 123.0 {
		t.Fatalf("first number: got %+v, err %v", first, err)
	}
	second, err := lex.NextToken()
	if err != nil || second.TokenType != token.FLOAT || second.Literal != 45.67 {
		t.Fatalf("second number: got %+v, err %v", second, err)
	}
	// "8." has no digits after the dot: the dot is not part of the number.
	third, err := lex.NextToken()
	if err != nil || third.TokenType != token.FLOAT || third.Literal != 8.0 {
		t.Fatalf("third number: got %+v, err %v", third, err)
	}
	dot, err := lex.NextToken()
	if err != nil || dot.TokenType != token.DOT {
		t.Fatalf("expected trailing DOT token, got %+v, err %v", dot, err)
	}
}

func TestEOFIsIdempotent(t *testing.T) {
	lex := New("")
	first, err := lex.NextToken()
	if err != nil || first.TokenType != token.EOF {
		t.Fatalf("got %+v, err %v", first, err)
	}
	second, err := lex.NextToken()
	if err != nil || second.TokenType != token.EOF {
		t.Fatalf("got %+v, err %v", second, err)
	}
}
