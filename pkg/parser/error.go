package parser

import (
	"fmt"

	"minipy/pkg/lexer"
)

// SyntaxError names the expected construct and the token actually found.
// Msg overrides the expected/found wording for context errors such as
// break outside a loop.
type SyntaxError struct {
	Expected string
	Found    lexer.Token
	Msg      string
}

func (e *SyntaxError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("SyntaxError: %s at %s", e.Msg, e.Found.Pos)
	}
	found := e.Found.Type.String()
	if e.Found.Type == lexer.ID || e.Found.Type == lexer.NUM {
		found = fmt.Sprintf("%s %q", found, e.Found.Lexeme)
	}
	return fmt.Sprintf("SyntaxError: expected %s, found %s at %s",
		e.Expected, found, e.Found.Pos)
}

// Pos returns the source position of the offending token.
func (e *SyntaxError) Pos() lexer.Position {
	return e.Found.Pos
}

func (p *Parser) errExpected(expected string) error {
	return &SyntaxError{Expected: expected, Found: p.cur}
}

func (p *Parser) errContext(msg string) error {
	return &SyntaxError{Msg: msg, Found: p.cur}
}
