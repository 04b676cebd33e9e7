package lexer

import (
	"fmt"
)

type TokenType int
type TokenCategory int

type Token struct {
	Type    TokenType // Type of the token
	Lexeme  string    // Actual string from source code
	Literal string    // Literal value (if applicable), empty string if not
	Pos     Position  // Position in source code
}

// NewToken creates a new Token instance
func NewToken(tokenType TokenType, lexeme string, literal string, pos Position) Token {
	return Token{
		Type:    tokenType,
		Lexeme:  lexeme,
		Literal: literal,
		Pos:     pos,
	}
}

const (
	NONE TokenCategory = iota
	KEYWORD
	IDENTIFIER
	LITERAL
	OPERATOR
	DELIMITER
	LAYOUT
)

const (
	EOF TokenType = iota // End of input

	DEF      // def
	RETURN   // return
	WHILE    // while
	IF       // if
	ELIF     // elif
	ELSE     // else
	BREAK    // break
	CONTINUE // continue
	AND      // and
	OR       // or
	NOT      // not
	PRINT    // print
	INPUT    // input
	INT      // int
	TRUE     // True
	FALSE    // False

	ID  // identifier
	NUM // integer literal

	ASSIGN     // =
	PLUS       // +
	MINUS      // -
	MULT       // *
	FLOORDIV   // //
	MOD        // %
	PLUSEQ     // +=
	MINUSEQ    // -=
	MULTEQ     // *=
	FLOORDIVEQ // //=
	MODEQ      // %=
	LT         // <
	GT         // >
	LE         // <=
	GE         // >=
	EQ         // ==
	NE         // !=

	COMMA  // ,
	COLON  // :
	LPAREN // (
	RPAREN // )

	NEWLINE // end of logical line
	INDENT  // block begin (indentation increased)
	DEDENT  // block end (indentation decreased)

	ILLEGAL // unrecognized input
)

var Keywords = map[string]TokenType{
	"def":      DEF,
	"return":   RETURN,
	"while":    WHILE,
	"if":       IF,
	"elif":     ELIF,
	"else":     ELSE,
	"break":    BREAK,
	"continue": CONTINUE,
	"and":      AND,
	"or":       OR,
	"not":      NOT,
	"print":    PRINT,
	"input":    INPUT,
	"int":      INT,
	"True":     TRUE,
	"False":    FALSE,
}

// TokenToString converts a TokenType to its string representation
func (t Token) TokenToString() (string, bool) {
	mapping := map[TokenType]string{
		DEF:        "def",
		RETURN:     "return",
		WHILE:      "while",
		IF:         "if",
		ELIF:       "elif",
		ELSE:       "else",
		BREAK:      "break",
		CONTINUE:   "continue",
		AND:        "and",
		OR:         "or",
		NOT:        "not",
		PRINT:      "print",
		INPUT:      "input",
		INT:        "int",
		TRUE:       "True",
		FALSE:      "False",
		ASSIGN:     "=",
		PLUS:       "+",
		MINUS:      "-",
		MULT:       "*",
		FLOORDIV:   "//",
		MOD:        "%",
		PLUSEQ:     "+=",
		MINUSEQ:    "-=",
		MULTEQ:     "*=",
		FLOORDIVEQ: "//=",
		MODEQ:      "%=",
		LT:         "<",
		GT:         ">",
		LE:         "<=",
		GE:         ">=",
		EQ:         "==",
		NE:         "!=",
		COMMA:      ",",
		COLON:      ":",
		LPAREN:     "(",
		RPAREN:     ")",
		ID:         "id",
		NUM:        "num",
		NEWLINE:    "newline",
		INDENT:     "indent",
		DEDENT:     "dedent",
		EOF:        "$",
	}

	str, ok := mapping[t.Type]
	return str, ok
}

// String returns a string representation of the Token
func (t Token) String() string {
	if t.Literal == "" {
		return fmt.Sprintf("T_{%s, %v, nil, %s}",
			t.Type, t.Lexeme, t.Pos.String())
	}

	return fmt.Sprintf("T_{%s, %v, %q, %s}",
		t.Type, t.Lexeme, t.Literal, t.Pos.String())
}

// String returns a string representation of the TokenType
func (t TokenType) String() string {
	if str, ok := (Token{Type: t}).TokenToString(); ok {
		return str
	}

	return fmt.Sprintf("UNKNOWN(%d)", int(t))
}

// GetCategory returns the category of the token
func (t TokenType) GetCategory() TokenCategory {
	switch t {
	case DEF, RETURN, WHILE, IF, ELIF, ELSE, BREAK, CONTINUE, AND, OR, NOT, PRINT, INPUT, INT, TRUE, FALSE:
		return KEYWORD
	case ID:
		return IDENTIFIER
	case NUM:
		return LITERAL
	case ASSIGN, PLUS, MINUS, MULT, FLOORDIV, MOD, PLUSEQ, MINUSEQ, MULTEQ, FLOORDIVEQ, MODEQ, LT, GT, LE, GE, EQ, NE:
		return OPERATOR
	case COMMA, COLON, LPAREN, RPAREN:
		return DELIMITER
	case NEWLINE, INDENT, DEDENT:
		return LAYOUT
	default:
		return NONE
	}
}

// IsKeyword checks if the given identifier is a keyword and returns its TokenType if it is
func IsKeyword(identifier string) (TokenType, bool) {
	tokenType, ok := Keywords[identifier]
	return tokenType, ok
}
