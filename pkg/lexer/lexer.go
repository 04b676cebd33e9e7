package lexer

import "fmt"

// LexicalError reports unusable source text with its position.
type LexicalError struct {
	Msg string
	Pos Position
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("LexicalError: %s at %s", e.Msg, e.Pos)
}

// Lexer scans indentation-structured source text. Block structure is
// surfaced as INDENT/DEDENT tokens, logical line ends as NEWLINE.
type Lexer struct {
	input       string  // input string to be tokenized
	length      int     // length of the input string
	position    int     // current position in the input string
	line        int     // current line number for error reporting
	column      int     // current column number for error reporting
	indents     []int   // indentation stack, bottom is always 0
	pending     []Token // queued layout tokens (INDENT/DEDENT)
	atLineStart bool    // true before the indentation of the next line is measured
	parenDepth  int     // nesting depth of parentheses; layout is suppressed inside
	emittedEOF  bool
	err         *LexicalError // first lexical error, if any
}

// NewLexer creates a new lexer instance
func NewLexer(s string) *Lexer {
	return &Lexer{
		input:       s,
		length:      len(s),
		position:    0,
		line:        1,
		column:      1,
		indents:     []int{0},
		atLineStart: true,
	}
}

// Err returns the first lexical error encountered, or nil.
func (l *Lexer) Err() *LexicalError {
	return l.err
}

// HasMore checks if there are more characters to read
func (l *Lexer) HasMore() bool {
	return l.position < l.length
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	if len(l.pending) > 0 {
		tok := l.pending[0]
		l.pending = l.pending[1:]
		return tok
	}

	if l.atLineStart && l.parenDepth == 0 {
		if tok, ok := l.scanLineStart(); ok {
			return tok
		}
	}

	l.skipBlanks()

	if l.position >= l.length {
		return l.finish()
	}

	ch := l.input[l.position]
	if ch == '\n' || ch == '\r' {
		pos := l.currentPosition()
		l.consumeNewline()
		if l.parenDepth > 0 {
			// line continuation inside parentheses
			return l.NextToken()
		}
		l.atLineStart = true
		return NewToken(NEWLINE, "\n", "", pos)
	}

	pos := l.currentPosition()
	remaining := l.input[l.position:]
	tokenType, lexeme, matched := MatchToken(remaining)

	if !matched || tokenType == EOF {
		if tokenType == EOF && lexeme != "" {
			l.advance(len(lexeme))
			return l.NextToken()
		}

		char := string(l.input[l.position])
		l.advance(1)
		l.setErr(fmt.Sprintf("unrecognized character %q", char), pos)
		return NewToken(ILLEGAL, char, "", pos)
	}

	switch tokenType {
	case LPAREN:
		l.parenDepth++
	case RPAREN:
		if l.parenDepth > 0 {
			l.parenDepth--
		}
	}

	var literal string
	switch tokenType {
	case NUM:
		literal = lexeme
	case TRUE:
		literal = "1"
	case FALSE:
		literal = "0"
	default:
		literal = lexeme
	}

	tok := NewToken(tokenType, lexeme, literal, pos)
	l.advance(len(lexeme))
	return tok
}

// scanLineStart measures the indentation of the next logical line and
// queues INDENT/DEDENT tokens. Blank and comment-only lines are skipped
// entirely. Returns a queued token when layout changed.
func (l *Lexer) scanLineStart() (Token, bool) {
	for {
		if l.position >= l.length {
			return Token{}, false
		}

		pos := l.currentPosition()
		width := l.measureIndent()

		if l.position >= l.length {
			return Token{}, false
		}

		ch := l.input[l.position]
		if ch == '\n' || ch == '\r' {
			l.consumeNewline()
			continue
		}
		if ch == '#' {
			for l.position < l.length && l.input[l.position] != '\n' {
				l.advance(1)
			}
			continue
		}

		l.atLineStart = false

		top := l.indents[len(l.indents)-1]
		switch {
		case width > top:
			l.indents = append(l.indents, width)
			return NewToken(INDENT, "", "", pos), true
		case width < top:
			for len(l.indents) > 1 && l.indents[len(l.indents)-1] > width {
				l.indents = l.indents[:len(l.indents)-1]
				l.pending = append(l.pending, NewToken(DEDENT, "", "", pos))
			}
			if l.indents[len(l.indents)-1] != width {
				l.setErr("inconsistent indentation", pos)
				return NewToken(ILLEGAL, "", "", pos), true
			}
			tok := l.pending[0]
			l.pending = l.pending[1:]
			return tok, true
		default:
			return Token{}, false
		}
	}
}

// measureIndent consumes leading spaces/tabs and returns the column width.
// Tabs advance to the next multiple of 8, same as the reference runtime.
func (l *Lexer) measureIndent() int {
	width := 0
	for l.position < l.length {
		switch l.input[l.position] {
		case ' ':
			width++
		case '\t':
			width = (width/8 + 1) * 8
		default:
			return width
		}
		l.advance(1)
	}
	return width
}

// finish emits the trailing NEWLINE, remaining DEDENTs, and EOF.
func (l *Lexer) finish() Token {
	pos := l.currentPosition()
	if !l.atLineStart && !l.emittedEOF {
		l.atLineStart = true
		return NewToken(NEWLINE, "", "", pos)
	}

	if len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		return NewToken(DEDENT, "", "", pos)
	}

	l.emittedEOF = true
	return NewToken(EOF, "", "", pos)
}

// skipBlanks skips spaces, tabs, and comments within a line
func (l *Lexer) skipBlanks() {
	for l.position < l.length {
		ch := l.input[l.position]
		if ch == ' ' || ch == '\t' {
			l.advance(1)
		} else if ch == '#' {
			for l.position < l.length && l.input[l.position] != '\n' {
				l.advance(1)
			}
		} else {
			break
		}
	}
}

// consumeNewline advances past "\n", "\r", or "\r\n"
func (l *Lexer) consumeNewline() {
	if l.position < l.length && l.input[l.position] == '\r' {
		l.advance(1)
	}
	if l.position < l.length && l.input[l.position] == '\n' {
		l.advance(1)
	}
}

// advance the lexer position by n characters
func (l *Lexer) advance(n int) {
	for i := 0; i < n; i++ {
		if l.position >= l.length {
			break
		}

		if l.input[l.position] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}

		l.position++
	}
}

// currentPosition returns the current position of the lexer
func (l *Lexer) currentPosition() Position {
	return Position{
		Line:   l.line,
		Column: l.column,
		Offset: l.position,
	}
}

func (l *Lexer) setErr(msg string, pos Position) {
	if l.err == nil {
		l.err = &LexicalError{Msg: msg, Pos: pos}
	}
}
