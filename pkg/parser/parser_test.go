package parser_test

import (
	"errors"
	"strings"
	"testing"

	"minipy/pkg/ast"
	"minipy/pkg/lexer"
	"minipy/pkg/parser"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.NewParser(lexer.NewLexer(src)).Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return prog
}

func TestParseProgram(t *testing.T) {
	src := "def add(a, b):\n" +
		"    return a + b\n" +
		"\n" +
		"x = 1\n" +
		"while x < 5:\n" +
		"    x += 1\n" +
		"print(int(add(x, 2)))\n"

	prog := parse(t, src)
	if len(prog.Body) != 4 {
		t.Fatalf("expected 4 top-level statements, got %d", len(prog.Body))
	}

	fn, ok := prog.Body[0].(*ast.FunctionDef)
	if !ok {
		t.Fatalf("statement 0: expected *ast.FunctionDef, got %T", prog.Body[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Errorf("expected add(a, b), got %s with %d params", fn.Name, len(fn.Params))
	}
	if len(fn.Body) != 1 {
		t.Errorf("expected 1 body statement, got %d", len(fn.Body))
	}

	if _, ok := prog.Body[1].(*ast.Assign); !ok {
		t.Errorf("statement 1: expected *ast.Assign, got %T", prog.Body[1])
	}

	loop, ok := prog.Body[2].(*ast.While)
	if !ok {
		t.Fatalf("statement 2: expected *ast.While, got %T", prog.Body[2])
	}
	if _, ok := loop.Body[0].(*ast.AugAssign); !ok {
		t.Errorf("loop body: expected *ast.AugAssign, got %T", loop.Body[0])
	}

	pr, ok := prog.Body[3].(*ast.Print)
	if !ok {
		t.Fatalf("statement 3: expected *ast.Print, got %T", prog.Body[3])
	}
	if _, ok := pr.Arg.(*ast.IntCast); !ok {
		t.Errorf("print argument: expected *ast.IntCast, got %T", pr.Arg)
	}
}

func TestPrecedence(t *testing.T) {
	prog := parse(t, "x = 1 + 2 * 3\n")

	assign := prog.Body[0].(*ast.Assign)
	add, ok := assign.Value.(*ast.BinaryOp)
	if !ok || add.Op != lexer.PLUS {
		t.Fatalf("expected + at the root, got %T", assign.Value)
	}
	mul, ok := add.Right.(*ast.BinaryOp)
	if !ok || mul.Op != lexer.MULT {
		t.Fatalf("expected * on the right of +, got %T", add.Right)
	}
}

func TestBooleanOperands(t *testing.T) {
	prog := parse(t, "x = 1\ny = x or x and not x or 0\n")

	assign := prog.Body[1].(*ast.Assign)
	or, ok := assign.Value.(*ast.BoolOp)
	if !ok || or.Op != lexer.OR {
		t.Fatalf("expected or at the root, got %T", assign.Value)
	}
	if len(or.Values) != 3 {
		t.Fatalf("expected 3 or-operands, got %d", len(or.Values))
	}
	and, ok := or.Values[1].(*ast.BoolOp)
	if !ok || and.Op != lexer.AND {
		t.Fatalf("expected and as the middle operand, got %T", or.Values[1])
	}
	if _, ok := and.Values[1].(*ast.UnaryOp); !ok {
		t.Errorf("expected not under and, got %T", and.Values[1])
	}
}

func TestElifChain(t *testing.T) {
	src := "x = 1\n" +
		"if x < 0:\n" +
		"    print(int(0))\n" +
		"elif x == 0:\n" +
		"    print(int(1))\n" +
		"else:\n" +
		"    print(int(2))\n"

	prog := parse(t, src)
	top := prog.Body[1].(*ast.If)
	if len(top.Orelse) != 1 {
		t.Fatalf("expected elif to nest as a single orelse statement, got %d", len(top.Orelse))
	}
	nested, ok := top.Orelse[0].(*ast.If)
	if !ok {
		t.Fatalf("expected nested *ast.If for elif, got %T", top.Orelse[0])
	}
	if len(nested.Orelse) != 1 {
		t.Errorf("expected else body of 1 statement, got %d", len(nested.Orelse))
	}
}

func TestReturnWithoutValue(t *testing.T) {
	src := "def f():\n" +
		"    return\n"

	prog := parse(t, src)
	fn := prog.Body[0].(*ast.FunctionDef)
	ret := fn.Body[0].(*ast.Return)
	if ret.Value != nil {
		t.Errorf("expected bare return to carry no value, got %T", ret.Value)
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		src         string
		want        string
		description string
	}{
		{"break\n", "'break' outside loop", "break at top level"},
		{"continue\n", "'continue' outside loop", "continue at top level"},
		{"return 1\n", "'return' outside function", "return at top level"},
		{"if 1:\n    def f():\n        x = 1\n", "only allowed at top level", "nested def"},
		{"x = 1 < 2 < 3\n", "chained comparisons", "chained comparison"},
		{"while 1\n    x = 1\n", "expected ':'", "missing colon"},
		{"if 1:\nx = 2\n", "an indented block", "missing indentation"},
		{"if 1:\n    pass_through =\n", "an expression", "missing right-hand side"},
		{"x = (1 + 2\n", "')'", "unclosed parenthesis"},
		{"def f(a, a):\n    return a\n1 +\n", "an expression", "dangling operator"},
	}

	for _, test := range tests {
		_, err := parser.NewParser(lexer.NewLexer(test.src)).Parse()
		if err == nil {
			t.Errorf("%s: expected a syntax error", test.description)
			continue
		}
		var syn *parser.SyntaxError
		if !errors.As(err, &syn) {
			t.Errorf("%s: expected *parser.SyntaxError, got %T", test.description, err)
			continue
		}
		if !strings.Contains(err.Error(), test.want) {
			t.Errorf("%s: expected %q in error, got %q", test.description, test.want, err)
		}
	}
}

func TestLexicalErrorSurfaces(t *testing.T) {
	_, err := parser.NewParser(lexer.NewLexer("x = 1 @ 2\n")).Parse()
	if err == nil {
		t.Fatal("expected an error for an unrecognized character")
	}
	var lex *lexer.LexicalError
	if !errors.As(err, &lex) {
		t.Fatalf("expected *lexer.LexicalError, got %T", err)
	}
}
