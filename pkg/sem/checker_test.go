package sem_test

import (
	"errors"
	"strings"
	"testing"

	"minipy/pkg/ast"
	"minipy/pkg/lexer"
	"minipy/pkg/parser"
	"minipy/pkg/sem"
)

func check(t *testing.T, src string) (*sem.Info, error) {
	t.Helper()
	prog, err := parser.NewParser(lexer.NewLexer(src)).Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return sem.Check(prog)
}

func TestValidProgram(t *testing.T) {
	src := "def double(n):\n" +
		"    return n * 2\n" +
		"\n" +
		"limit = 10\n" +
		"i = 0\n" +
		"while i < limit:\n" +
		"    print(int(double(i)))\n" +
		"    i += 1\n"

	info, err := check(t, src)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := info.Functions["double"]; !ok {
		t.Error("expected function table to contain double")
	}
}

func TestFunctionHoisting(t *testing.T) {
	src := "x = later(1)\n" +
		"def later(n):\n" +
		"    return n\n"

	if _, err := check(t, src); err != nil {
		t.Fatalf("expected a call before the definition to be legal, got %v", err)
	}
}

func TestGlobalReadInsideFunction(t *testing.T) {
	src := "base = 100\n" +
		"def shifted(n):\n" +
		"    return base + n\n" +
		"print(int(shifted(1)))\n"

	if _, err := check(t, src); err != nil {
		t.Fatalf("expected a global read to be legal, got %v", err)
	}
}

func TestNameErrors(t *testing.T) {
	tests := []struct {
		src         string
		want        string
		description string
	}{
		{"x = y\n", `undefined name "y"`, "undefined global"},
		{"x = y + 1\ny = 2\n", `undefined name "y"`, "global used before assignment"},
		{"x = f(1)\n", `undefined function "f"`, "undefined function"},
		{
			"def f():\n    return 1\nf = 2\n",
			"both a function and a variable",
			"function name reused as variable",
		},
		{
			"def f():\n    return 1\ndef f():\n    return 2\n",
			"defined more than once",
			"duplicate function",
		},
		{
			"def f(a, a):\n    return a\n",
			`duplicate parameter "a"`,
			"duplicate parameter",
		},
		{
			"g = 1\ndef f():\n    y = g\n    g = 2\n    return y\nx = f()\n",
			"used before assignment",
			"local shadow read before its assignment",
		},
	}

	for _, test := range tests {
		_, err := check(t, test.src)
		if err == nil {
			t.Errorf("%s: expected a name error", test.description)
			continue
		}
		var ne *sem.NameError
		if !errors.As(err, &ne) {
			t.Errorf("%s: expected *sem.NameError, got %T", test.description, err)
			continue
		}
		if !strings.Contains(err.Error(), test.want) {
			t.Errorf("%s: expected %q in error, got %q", test.description, test.want, err)
		}
	}
}

func TestArityError(t *testing.T) {
	src := "def f(a, b):\n" +
		"    return a + b\n" +
		"x = f(1)\n"

	_, err := check(t, src)
	var ae *sem.ArityError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *sem.ArityError, got %v", err)
	}
	if ae.Want != 2 || ae.Got != 1 {
		t.Errorf("expected want=2 got=1, have want=%d got=%d", ae.Want, ae.Got)
	}
	if !strings.Contains(err.Error(), "takes 2 argument(s), got 1") {
		t.Errorf("unexpected message %q", err)
	}
}

func TestTypeUsageErrors(t *testing.T) {
	tests := []struct {
		src         string
		want        string
		description string
	}{
		{"x = 1\nprint(x)\n", "wrapped in int(...)", "print without cast"},
		{"x = input()\n", "wrapped in int(...)", "bare input"},
		{"x = int(5)\n", "may only wrap input()", "cast of a plain expression"},
	}

	for _, test := range tests {
		_, err := check(t, test.src)
		if err == nil {
			t.Errorf("%s: expected a type usage error", test.description)
			continue
		}
		var te *sem.TypeUsageError
		if !errors.As(err, &te) {
			t.Errorf("%s: expected *sem.TypeUsageError, got %T", test.description, err)
			continue
		}
		if !strings.Contains(err.Error(), test.want) {
			t.Errorf("%s: expected %q in error, got %q", test.description, test.want, err)
		}
	}
}

func TestInputShapes(t *testing.T) {
	valid := []string{
		"x = int(input())\n",
		"print(int(input()))\n",
		"x = int(input()) + 1\n",
	}
	for _, src := range valid {
		if _, err := check(t, src); err != nil {
			t.Errorf("%q: expected no error, got %v", src, err)
		}
	}
}

func TestLocalBindings(t *testing.T) {
	src := "g = 1\n" +
		"def f(a):\n" +
		"    b = a + g\n" +
		"    return b\n" +
		"x = f(2)\n"

	info, err := check(t, src)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	kinds := make(map[string]sem.BindingKind)
	for name, kind := range info.Bindings {
		kinds[name.Ident] = kind
	}
	if kinds["a"] != sem.BindLocal {
		t.Error("expected a to bind locally")
	}
	if kinds["b"] != sem.BindLocal {
		t.Error("expected b to bind locally")
	}
	if kinds["g"] != sem.BindGlobal {
		t.Error("expected g to bind globally")
	}
}

func TestProgramOrderAtTopLevel(t *testing.T) {
	prog := &ast.Program{Body: []ast.Stmt{
		&ast.Assign{Target: "x", Value: &ast.IntLiteral{Value: 1}},
		&ast.Print{Arg: &ast.IntCast{X: &ast.Name{Ident: "x"}}},
	}}
	if _, err := sem.Check(prog); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
