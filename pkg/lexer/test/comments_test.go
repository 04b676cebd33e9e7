package lexer_test

import (
	"minipy/pkg/lexer"
	"testing"
)

func TestComments(t *testing.T) {
	input := "# leading comment\n" +
		"x = 10  # trailing comment\n" +
		"\n" +
		"# comment-only line inside the program\n" +
		"y = 20\n"

	mylexer := lexer.NewLexer(input)
	expectedTokens := []lexer.TokenType{
		lexer.ID, lexer.ASSIGN, lexer.NUM, lexer.NEWLINE,
		lexer.ID, lexer.ASSIGN, lexer.NUM, lexer.NEWLINE,
		lexer.EOF,
	}

	for i, expected := range expectedTokens {
		token := mylexer.NextToken()
		if token.Type != expected {
			t.Errorf("Token %d: expected %s, got %s", i, expected, token.Type)
		}
	}
}

func TestBlankLinesInsideBlock(t *testing.T) {
	input := "while 1:\n" +
		"    x = 1\n" +
		"\n" +
		"    # note\n" +
		"    y = 2\n"

	mylexer := lexer.NewLexer(input)
	expectedTokens := []lexer.TokenType{
		lexer.WHILE, lexer.NUM, lexer.COLON, lexer.NEWLINE,
		lexer.INDENT, lexer.ID, lexer.ASSIGN, lexer.NUM, lexer.NEWLINE,
		lexer.ID, lexer.ASSIGN, lexer.NUM, lexer.NEWLINE,
		lexer.DEDENT, lexer.EOF,
	}

	for i, expected := range expectedTokens {
		token := mylexer.NextToken()
		if token.Type != expected {
			t.Errorf("Token %d: expected %s, got %s", i, expected, token.Type)
		}
	}
}
