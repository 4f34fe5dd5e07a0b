package token

import (
	"testing"
)

func TestCreateToken(t *testing.T) {
	tests := []struct {
		name      string
		tokenType TokenType
		want      Token
	}{
		{
			name:      "Create ASSIGN token",
			tokenType: ASSIGN,
			want:      Token{TokenType: ASSIGN, Lexeme: "=", Line: 1},
		},
		{
			name:      "Create MULT token",
			tokenType: MULT,
			want:      Token{TokenType: MULT, Lexeme: "*", Line: 1},
		},
		{
			name:      "Create EOF token",
			tokenType: EOF,
			want:      Token{TokenType: EOF, Lexeme: "", Line: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CreateToken(tt.tokenType, 1)
			if got != tt.want {
				t.Errorf("CreateToken() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCreateLiteralToken(t *testing.T) {
	got := CreateLiteralToken(FLOAT, 3.5, "3.5", 2)
	want := Token{TokenType: FLOAT, Lexeme: "3.5", Literal: 3.5, Line: 2}
	if got != want {
		t.Errorf("CreateLiteralToken() = %v, want %v", got, want)
	}
}

func TestKeywordTable(t *testing.T) {
	for word, kind := range KeyWords {
		tok := CreateLiteralToken(kind, nil, word, 1)
		if tok.TokenType != kind {
			t.Errorf("keyword %q: got %s, want %s", word, tok.TokenType, kind)
		}
	}
}
