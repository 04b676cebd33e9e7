package parser

import (
	"strconv"

	"minipy/pkg/ast"
	"minipy/pkg/lexer"
)

// Parser consumes the token stream with one token of lookahead and
// produces the program AST. The first syntax error aborts parsing.
type Parser struct {
	lexer      *lexer.Lexer
	cur        lexer.Token
	peek       lexer.Token
	blockDepth int // nesting depth of indented blocks
	funcDepth  int // > 0 inside a function body
	loopDepth  int // > 0 inside a while body
}

// NewParser creates a new parser instance
func NewParser(l *lexer.Lexer) *Parser {
	p := &Parser{lexer: l}

	// prime cur and peek
	p.next()
	p.next()

	return p
}

// Parse parses the whole input program.
func (p *Parser) Parse() (*ast.Program, error) {
	prog := &ast.Program{}

	for p.cur.Type != lexer.EOF {
		if err := p.checkIllegal(); err != nil {
			return nil, err
		}
		if p.cur.Type == lexer.NEWLINE {
			p.next()
			continue
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Body = append(prog.Body, stmt)
	}

	return prog, nil
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lexer.NextToken()
}

// checkIllegal surfaces the lexer's own error for ILLEGAL tokens.
func (p *Parser) checkIllegal() error {
	if p.cur.Type != lexer.ILLEGAL {
		return nil
	}
	if err := p.lexer.Err(); err != nil {
		return err
	}
	return p.errExpected("a token")
}

// expect consumes the current token if it matches, else fails.
func (p *Parser) expect(t lexer.TokenType, what string) (lexer.Token, error) {
	if err := p.checkIllegal(); err != nil {
		return lexer.Token{}, err
	}
	if p.cur.Type != t {
		return lexer.Token{}, p.errExpected(what)
	}
	tok := p.cur
	p.next()
	return tok, nil
}

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.cur.Type {
	case lexer.DEF:
		return p.parseFunctionDef()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.IF:
		return p.parseIf()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.BREAK:
		if p.loopDepth == 0 {
			return nil, p.errContext("'break' outside loop")
		}
		pos := p.cur.Pos
		p.next()
		if err := p.endOfStatement(); err != nil {
			return nil, err
		}
		return &ast.Break{P: pos}, nil
	case lexer.CONTINUE:
		if p.loopDepth == 0 {
			return nil, p.errContext("'continue' outside loop")
		}
		pos := p.cur.Pos
		p.next()
		if err := p.endOfStatement(); err != nil {
			return nil, err
		}
		return &ast.Continue{P: pos}, nil
	case lexer.PRINT:
		return p.parsePrint()
	case lexer.ID:
		switch p.peek.Type {
		case lexer.ASSIGN:
			return p.parseAssign()
		case lexer.PLUSEQ, lexer.MINUSEQ, lexer.MULTEQ, lexer.FLOORDIVEQ, lexer.MODEQ:
			return p.parseAugAssign()
		}
		return p.parseExprStatement()
	default:
		return p.parseExprStatement()
	}
}

// endOfStatement consumes the NEWLINE terminating a simple statement.
func (p *Parser) endOfStatement() error {
	if err := p.checkIllegal(); err != nil {
		return err
	}
	if p.cur.Type == lexer.EOF {
		return nil
	}
	if p.cur.Type != lexer.NEWLINE {
		return p.errExpected("end of statement")
	}
	p.next()
	return nil
}

// parseBlock parses ':' NEWLINE INDENT stmt+ DEDENT.
func (p *Parser) parseBlock() ([]ast.Stmt, error) {
	if _, err := p.expect(lexer.COLON, "':'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.NEWLINE, "a new line after ':'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.INDENT, "an indented block"); err != nil {
		return nil, err
	}

	p.blockDepth++
	defer func() { p.blockDepth-- }()

	var body []ast.Stmt
	for p.cur.Type != lexer.DEDENT && p.cur.Type != lexer.EOF {
		if err := p.checkIllegal(); err != nil {
			return nil, err
		}
		if p.cur.Type == lexer.NEWLINE {
			p.next()
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}

	if len(body) == 0 {
		return nil, p.errExpected("at least one statement in block")
	}
	if _, err := p.expect(lexer.DEDENT, "end of block"); err != nil {
		return nil, err
	}
	return body, nil
}

func (p *Parser) parseFunctionDef() (ast.Stmt, error) {
	if p.blockDepth > 0 {
		return nil, p.errContext("function definitions are only allowed at top level")
	}
	pos := p.cur.Pos
	p.next() // def

	name, err := p.expect(lexer.ID, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN, "'(' after function name"); err != nil {
		return nil, err
	}

	var params []string
	if p.cur.Type != lexer.RPAREN {
		for {
			param, err := p.expect(lexer.ID, "parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, param.Lexeme)
			if p.cur.Type != lexer.COMMA {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(lexer.RPAREN, "')' after parameters"); err != nil {
		return nil, err
	}

	p.funcDepth++
	saveLoop := p.loopDepth
	p.loopDepth = 0
	body, err := p.parseBlock()
	p.funcDepth--
	p.loopDepth = saveLoop
	if err != nil {
		return nil, err
	}

	return &ast.FunctionDef{Name: name.Lexeme, Params: params, Body: body, P: pos}, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	pos := p.cur.Pos
	p.next() // while

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.loopDepth++
	body, err := p.parseBlock()
	p.loopDepth--
	if err != nil {
		return nil, err
	}

	return &ast.While{Cond: cond, Body: body, P: pos}, nil
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	pos := p.cur.Pos
	p.next() // if or elif

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	node := &ast.If{Cond: cond, Body: body, P: pos}

	switch p.cur.Type {
	case lexer.ELIF:
		chained, err := p.parseIf()
		if err != nil {
			return nil, err
		}
		node.Orelse = []ast.Stmt{chained}
	case lexer.ELSE:
		p.next()
		orelse, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		node.Orelse = orelse
	}

	return node, nil
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	if p.funcDepth == 0 {
		return nil, p.errContext("'return' outside function")
	}
	pos := p.cur.Pos
	p.next() // return

	if p.cur.Type == lexer.NEWLINE || p.cur.Type == lexer.EOF {
		if err := p.endOfStatement(); err != nil {
			return nil, err
		}
		return &ast.Return{P: pos}, nil
	}

	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.endOfStatement(); err != nil {
		return nil, err
	}
	return &ast.Return{Value: value, P: pos}, nil
}

func (p *Parser) parsePrint() (ast.Stmt, error) {
	pos := p.cur.Pos
	p.next() // print

	if _, err := p.expect(lexer.LPAREN, "'(' after print"); err != nil {
		return nil, err
	}
	arg, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN, "')' after print argument"); err != nil {
		return nil, err
	}
	if err := p.endOfStatement(); err != nil {
		return nil, err
	}

	return &ast.Print{Arg: arg, P: pos}, nil
}

func (p *Parser) parseAssign() (ast.Stmt, error) {
	target := p.cur
	p.next() // id
	p.next() // =

	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.endOfStatement(); err != nil {
		return nil, err
	}

	return &ast.Assign{Target: target.Lexeme, Value: value, P: target.Pos}, nil
}

func (p *Parser) parseAugAssign() (ast.Stmt, error) {
	target := p.cur
	p.next() // id
	op := p.cur.Type
	p.next() // op=

	var binOp lexer.TokenType
	switch op {
	case lexer.PLUSEQ:
		binOp = lexer.PLUS
	case lexer.MINUSEQ:
		binOp = lexer.MINUS
	case lexer.MULTEQ:
		binOp = lexer.MULT
	case lexer.FLOORDIVEQ:
		binOp = lexer.FLOORDIV
	case lexer.MODEQ:
		binOp = lexer.MOD
	}

	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.endOfStatement(); err != nil {
		return nil, err
	}

	return &ast.AugAssign{Target: target.Lexeme, Op: binOp, Value: value, P: target.Pos}, nil
}

func (p *Parser) parseExprStatement() (ast.Stmt, error) {
	pos := p.cur.Pos
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.endOfStatement(); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{X: x, P: pos}, nil
}

// Expression grammar, lowest precedence first:
// or, and, not, comparison, additive, multiplicative, unary, primary.

func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != lexer.OR {
		return left, nil
	}

	node := &ast.BoolOp{Op: lexer.OR, Values: []ast.Expr{left}, P: left.Pos()}
	for p.cur.Type == lexer.OR {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		node.Values = append(node.Values, right)
	}
	return node, nil
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != lexer.AND {
		return left, nil
	}

	node := &ast.BoolOp{Op: lexer.AND, Values: []ast.Expr{left}, P: left.Pos()}
	for p.cur.Type == lexer.AND {
		p.next()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		node.Values = append(node.Values, right)
	}
	return node, nil
}

func (p *Parser) parseNot() (ast.Expr, error) {
	if p.cur.Type == lexer.NOT {
		pos := p.cur.Pos
		p.next()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: lexer.NOT, Operand: operand, P: pos}, nil
	}
	return p.parseComparison()
}

func isCompareOp(t lexer.TokenType) bool {
	switch t {
	case lexer.LT, lexer.GT, lexer.EQ, lexer.NE, lexer.LE, lexer.GE:
		return true
	}
	return false
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if !isCompareOp(p.cur.Type) {
		return left, nil
	}

	op := p.cur.Type
	p.next()
	right, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if isCompareOp(p.cur.Type) {
		return nil, p.errExpected("a single comparison (chained comparisons are not supported)")
	}

	return &ast.Compare{Op: op, Left: left, Right: right, P: left.Pos()}, nil
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == lexer.PLUS || p.cur.Type == lexer.MINUS {
		op := p.cur.Type
		p.next()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: op, Left: left, Right: right, P: left.Pos()}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == lexer.MULT || p.cur.Type == lexer.FLOORDIV || p.cur.Type == lexer.MOD {
		op := p.cur.Type
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: op, Left: left, Right: right, P: left.Pos()}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.cur.Type == lexer.MINUS || p.cur.Type == lexer.PLUS {
		op := p.cur.Type
		pos := p.cur.Pos
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: op, Operand: operand, P: pos}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	if err := p.checkIllegal(); err != nil {
		return nil, err
	}

	switch p.cur.Type {
	case lexer.NUM:
		tok := p.cur
		p.next()
		value, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, &SyntaxError{Expected: "an integer literal in range", Found: tok}
		}
		return &ast.IntLiteral{Value: value, P: tok.Pos}, nil

	case lexer.TRUE:
		tok := p.cur
		p.next()
		return &ast.IntLiteral{Value: 1, P: tok.Pos}, nil

	case lexer.FALSE:
		tok := p.cur
		p.next()
		return &ast.IntLiteral{Value: 0, P: tok.Pos}, nil

	case lexer.INT:
		tok := p.cur
		p.next()
		if _, err := p.expect(lexer.LPAREN, "'(' after int"); err != nil {
			return nil, err
		}
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN, "')' after int argument"); err != nil {
			return nil, err
		}
		return &ast.IntCast{X: x, P: tok.Pos}, nil

	case lexer.INPUT:
		tok := p.cur
		p.next()
		if _, err := p.expect(lexer.LPAREN, "'(' after input"); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN, "')' (input takes no arguments)"); err != nil {
			return nil, err
		}
		return &ast.Input{P: tok.Pos}, nil

	case lexer.ID:
		tok := p.cur
		p.next()
		if p.cur.Type != lexer.LPAREN {
			return &ast.Name{Ident: tok.Lexeme, P: tok.Pos}, nil
		}
		p.next() // (
		var args []ast.Expr
		if p.cur.Type != lexer.RPAREN {
			for {
				arg, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.cur.Type != lexer.COMMA {
					break
				}
				p.next()
			}
		}
		if _, err := p.expect(lexer.RPAREN, "')' after arguments"); err != nil {
			return nil, err
		}
		return &ast.Call{Func: tok.Lexeme, Args: args, P: tok.Pos}, nil

	case lexer.LPAREN:
		p.next()
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
			return nil, err
		}
		return x, nil

	default:
		return nil, p.errExpected("an expression")
	}
}
