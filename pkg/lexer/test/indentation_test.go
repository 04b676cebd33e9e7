package lexer_test

import (
	"minipy/pkg/lexer"
	"testing"
)

func TestNestedIndentation(t *testing.T) {
	input := "if 1:\n" +
		"    if 2:\n" +
		"        x = 3\n" +
		"y = 4\n"

	mylexer := lexer.NewLexer(input)
	expectedTokens := []lexer.TokenType{
		lexer.IF, lexer.NUM, lexer.COLON, lexer.NEWLINE,
		lexer.INDENT, lexer.IF, lexer.NUM, lexer.COLON, lexer.NEWLINE,
		lexer.INDENT, lexer.ID, lexer.ASSIGN, lexer.NUM, lexer.NEWLINE,
		lexer.DEDENT, lexer.DEDENT, lexer.ID, lexer.ASSIGN, lexer.NUM, lexer.NEWLINE,
		lexer.EOF,
	}

	for i, expected := range expectedTokens {
		token := mylexer.NextToken()
		if token.Type != expected {
			t.Errorf("Token %d: expected %s, got %s", i, expected, token.Type)
		}
	}
}

func TestDedentAtEOF(t *testing.T) {
	input := "while 1:\n" +
		"    x = 1\n"

	mylexer := lexer.NewLexer(input)
	expectedTokens := []lexer.TokenType{
		lexer.WHILE, lexer.NUM, lexer.COLON, lexer.NEWLINE,
		lexer.INDENT, lexer.ID, lexer.ASSIGN, lexer.NUM, lexer.NEWLINE,
		lexer.DEDENT, lexer.EOF,
	}

	for i, expected := range expectedTokens {
		token := mylexer.NextToken()
		if token.Type != expected {
			t.Errorf("Token %d: expected %s, got %s", i, expected, token.Type)
		}
	}
}

func TestTabIndentation(t *testing.T) {
	input := "if 1:\n" +
		"\tx = 2\n"

	mylexer := lexer.NewLexer(input)
	expectedTokens := []lexer.TokenType{
		lexer.IF, lexer.NUM, lexer.COLON, lexer.NEWLINE,
		lexer.INDENT, lexer.ID, lexer.ASSIGN, lexer.NUM, lexer.NEWLINE,
		lexer.DEDENT, lexer.EOF,
	}

	for i, expected := range expectedTokens {
		token := mylexer.NextToken()
		if token.Type != expected {
			t.Errorf("Token %d: expected %s, got %s", i, expected, token.Type)
		}
	}
}

func TestInconsistentIndentation(t *testing.T) {
	input := "if 1:\n" +
		"        x = 2\n" +
		"    y = 3\n"

	mylexer := lexer.NewLexer(input)
	var sawIllegal bool
	for i := 0; i < 32; i++ {
		token := mylexer.NextToken()
		if token.Type == lexer.ILLEGAL {
			sawIllegal = true
			break
		}
		if token.Type == lexer.EOF {
			break
		}
	}
	if !sawIllegal {
		t.Error("expected an ILLEGAL token for a dedent to an unknown level")
	}
	if mylexer.Err() == nil {
		t.Error("expected a lexical error for inconsistent indentation")
	}
}

func TestLayoutSuppressedInParens(t *testing.T) {
	input := "x = (1 +\n" +
		"     2)\n"

	mylexer := lexer.NewLexer(input)
	expectedTokens := []lexer.TokenType{
		lexer.ID, lexer.ASSIGN, lexer.LPAREN, lexer.NUM, lexer.PLUS,
		lexer.NUM, lexer.RPAREN, lexer.NEWLINE,
		lexer.EOF,
	}

	for i, expected := range expectedTokens {
		token := mylexer.NextToken()
		if token.Type != expected {
			t.Errorf("Token %d: expected %s, got %s", i, expected, token.Type)
		}
	}
}
