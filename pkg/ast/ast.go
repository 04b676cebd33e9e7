package ast

import "minipy/pkg/lexer"

// Node is any node in the abstract syntax tree.
type Node interface {
	Pos() lexer.Position
}

// Expr is an expression node that yields one integer value.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Program is the root node: an ordered sequence of top-level statements.
type Program struct {
	Body []Stmt
}

// FunctionDef: def NAME(params): body
type FunctionDef struct {
	Name   string
	Params []string
	Body   []Stmt
	P      lexer.Position
}

func (n *FunctionDef) Pos() lexer.Position { return n.P }
func (n *FunctionDef) stmtNode()           {}

// Assign: NAME = expr
type Assign struct {
	Target string
	Value  Expr
	P      lexer.Position
}

func (n *Assign) Pos() lexer.Position { return n.P }
func (n *Assign) stmtNode()           {}

// AugAssign: NAME op= expr, where Op is the underlying binary operator token.
type AugAssign struct {
	Target string
	Op     lexer.TokenType
	Value  Expr
	P      lexer.Position
}

func (n *AugAssign) Pos() lexer.Position { return n.P }
func (n *AugAssign) stmtNode()           {}

// While: while cond: body
type While struct {
	Cond Expr
	Body []Stmt
	P    lexer.Position
}

func (n *While) Pos() lexer.Position { return n.P }
func (n *While) stmtNode()           {}

// If: if cond: body [elif...] [else: orelse]. An elif chain is parsed as a
// nested If in Orelse.
type If struct {
	Cond   Expr
	Body   []Stmt
	Orelse []Stmt
	P      lexer.Position
}

func (n *If) Pos() lexer.Position { return n.P }
func (n *If) stmtNode()           {}

// Return: return [expr]
type Return struct {
	Value Expr // nil when no expression is given
	P     lexer.Position
}

func (n *Return) Pos() lexer.Position { return n.P }
func (n *Return) stmtNode()           {}

// Break statement
type Break struct {
	P lexer.Position
}

func (n *Break) Pos() lexer.Position { return n.P }
func (n *Break) stmtNode()           {}

// Continue statement
type Continue struct {
	P lexer.Position
}

func (n *Continue) Pos() lexer.Position { return n.P }
func (n *Continue) stmtNode()           {}

// Print: print(arg) statement. The checker requires Arg to be an IntCast.
type Print struct {
	Arg Expr
	P   lexer.Position
}

func (n *Print) Pos() lexer.Position { return n.P }
func (n *Print) stmtNode()           {}

// ExprStmt: a bare expression used as a statement.
type ExprStmt struct {
	X Expr
	P lexer.Position
}

func (n *ExprStmt) Pos() lexer.Position { return n.P }
func (n *ExprStmt) stmtNode()           {}

// BinaryOp: left op right for + - * // %
type BinaryOp struct {
	Op    lexer.TokenType
	Left  Expr
	Right Expr
	P     lexer.Position
}

func (n *BinaryOp) Pos() lexer.Position { return n.P }
func (n *BinaryOp) exprNode()           {}

// UnaryOp: op operand for unary - + not
type UnaryOp struct {
	Op      lexer.TokenType
	Operand Expr
	P       lexer.Position
}

func (n *UnaryOp) Pos() lexer.Position { return n.P }
func (n *UnaryOp) exprNode()           {}

// BoolOp: and/or over an ordered operand list (two or more values).
type BoolOp struct {
	Op     lexer.TokenType
	Values []Expr
	P      lexer.Position
}

func (n *BoolOp) Pos() lexer.Position { return n.P }
func (n *BoolOp) exprNode()           {}

// Compare: left op right for < > == != <= >=
type Compare struct {
	Op    lexer.TokenType
	Left  Expr
	Right Expr
	P     lexer.Position
}

func (n *Compare) Pos() lexer.Position { return n.P }
func (n *Compare) exprNode()           {}

// Call: callee(args) for user-defined functions.
type Call struct {
	Func string
	Args []Expr
	P    lexer.Position
}

func (n *Call) Pos() lexer.Position { return n.P }
func (n *Call) exprNode()           {}

// Name: identifier reference.
type Name struct {
	Ident string
	P     lexer.Position
}

func (n *Name) Pos() lexer.Position { return n.P }
func (n *Name) exprNode()           {}

// IntLiteral: non-negative integer literal (True/False lex as 1/0).
type IntLiteral struct {
	Value int64
	P     lexer.Position
}

func (n *IntLiteral) Pos() lexer.Position { return n.P }
func (n *IntLiteral) exprNode()           {}

// IntCast: int(x). Only legal wrapping input() or as the immediate
// argument of print; the checker enforces both shapes.
type IntCast struct {
	X Expr
	P lexer.Position
}

func (n *IntCast) Pos() lexer.Position { return n.P }
func (n *IntCast) exprNode()           {}

// Input: input(), zero arguments.
type Input struct {
	P lexer.Position
}

func (n *Input) Pos() lexer.Position { return n.P }
func (n *Input) exprNode()           {}
