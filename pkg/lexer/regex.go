package lexer

import (
	"regexp"
)

type tokenRegex struct {
	Pattern *regexp.Regexp
	Raw     string
}

// Token regex patterns
var tokenRegexes = map[TokenType]tokenRegex{
	FLOORDIVEQ: {regexp.MustCompile(`^//=`), `^//=`},
	FLOORDIV:   {regexp.MustCompile(`^//`), `^//`},
	PLUSEQ:     {regexp.MustCompile(`^\+=`), `^\+=`},
	MINUSEQ:    {regexp.MustCompile(`^-=`), `^-=`},
	MULTEQ:     {regexp.MustCompile(`^\*=`), `^\*=`},
	MODEQ:      {regexp.MustCompile(`^%=`), `^%=`},
	LE:         {regexp.MustCompile(`^<=`), `^<=`},
	GE:         {regexp.MustCompile(`^>=`), `^>=`},
	EQ:         {regexp.MustCompile(`^==`), `^==`},
	NE:         {regexp.MustCompile(`^!=`), `^!=`},

	DEF:      {regexp.MustCompile(`^def\b`), `^def\b`},
	RETURN:   {regexp.MustCompile(`^return\b`), `^return\b`},
	WHILE:    {regexp.MustCompile(`^while\b`), `^while\b`},
	IF:       {regexp.MustCompile(`^if\b`), `^if\b`},
	ELIF:     {regexp.MustCompile(`^elif\b`), `^elif\b`},
	ELSE:     {regexp.MustCompile(`^else\b`), `^else\b`},
	BREAK:    {regexp.MustCompile(`^break\b`), `^break\b`},
	CONTINUE: {regexp.MustCompile(`^continue\b`), `^continue\b`},
	AND:      {regexp.MustCompile(`^and\b`), `^and\b`},
	OR:       {regexp.MustCompile(`^or\b`), `^or\b`},
	NOT:      {regexp.MustCompile(`^not\b`), `^not\b`},
	PRINT:    {regexp.MustCompile(`^print\b`), `^print\b`},
	INPUT:    {regexp.MustCompile(`^input\b`), `^input\b`},
	INT:      {regexp.MustCompile(`^int\b`), `^int\b`},
	TRUE:     {regexp.MustCompile(`^True\b`), `^True\b`},
	FALSE:    {regexp.MustCompile(`^False\b`), `^False\b`},

	ASSIGN: {regexp.MustCompile(`^=`), `^=`},
	PLUS:   {regexp.MustCompile(`^\+`), `^\+`},
	MINUS:  {regexp.MustCompile(`^-`), `^-`},
	MULT:   {regexp.MustCompile(`^\*`), `^\*`},
	MOD:    {regexp.MustCompile(`^%`), `^%`},
	LT:     {regexp.MustCompile(`^<`), `^<`},
	GT:     {regexp.MustCompile(`^>`), `^>`},

	COMMA:  {regexp.MustCompile(`^,`), `^,`},
	COLON:  {regexp.MustCompile(`^:`), `^:`},
	LPAREN: {regexp.MustCompile(`^\(`), `^\(`},
	RPAREN: {regexp.MustCompile(`^\)`), `^\)`},

	NUM: {regexp.MustCompile(`^\d+`), `^\d+`},
	ID:  {regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*`), `^[a-zA-Z_][a-zA-Z0-9_]*`},
}

var (
	blankRegex   = regexp.MustCompile(`^[ \t]+`)
	commentRegex = regexp.MustCompile(`^#[^\n]*`)
)

// Token precedence order for matching (longer patterns first)
var tokenPrecedenceOrder = []TokenType{
	CONTINUE, RETURN, BREAK, FALSE, INPUT, PRINT, WHILE, ELIF, ELSE,
	TRUE, AND, DEF, INT, NOT, IF, OR,
	FLOORDIVEQ, FLOORDIV, PLUSEQ, MINUSEQ, MULTEQ, MODEQ,
	LE, GE, EQ, NE, ASSIGN, PLUS, MINUS, MULT, MOD, LT, GT,
	COMMA, COLON, LPAREN, RPAREN, NUM, ID,
}

// Get the regex pattern for a token type
func (t TokenType) Regex() *regexp.Regexp {
	if regex, ok := tokenRegexes[t]; ok {
		return regex.Pattern
	}

	return nil
}

// Get the raw regex string for a token type
func (t TokenType) RawRegex() string {
	if regex, ok := tokenRegexes[t]; ok {
		return regex.Raw
	}

	return ""
}

// MatchToken matches the longest token at the start of the string.
// Blank runs and comments match as EOF with a non-empty lexeme so the
// caller can skip them and rescan.
func MatchToken(s string) (TokenType, string, bool) {
	if s == "" {
		return EOF, "", false
	} else if match := blankRegex.FindString(s); match != "" {
		return EOF, match, true
	} else if match := commentRegex.FindString(s); match != "" {
		return EOF, match, true
	}

	for _, tokenType := range tokenPrecedenceOrder {
		if regex, ok := tokenRegexes[tokenType]; ok {
			if match := regex.Pattern.FindString(s); match != "" {
				return tokenType, match, true
			}
		}
	}

	return ILLEGAL, string(s[0]), false
}
