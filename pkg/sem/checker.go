// Package sem resolves names and validates call shapes on the parsed
// program. It only validates and annotates; the tree is never rewritten.
package sem

import (
	"fmt"

	"minipy/pkg/ast"
	"minipy/pkg/lexer"
)

// BindingKind classifies what a resolved name refers to.
type BindingKind int

const (
	BindGlobal BindingKind = iota
	BindLocal              // parameter or assigned local of the enclosing function
	BindFunction
)

// FuncInfo describes one top-level function definition.
type FuncInfo struct {
	Name   string
	Params []string
	Def    *ast.FunctionDef
}

// Info carries the checker's annotations to the code generator.
type Info struct {
	Functions map[string]*FuncInfo
	Bindings  map[*ast.Name]BindingKind
}

type checker struct {
	info       *Info
	globals    map[string]bool // top-level names assigned so far (program order)
	allGlobals map[string]bool // every top-level assignment target

	// function scope, nil at top level
	fn       *FuncInfo
	locals   map[string]bool // params + locals assigned so far
	assigned map[string]bool // every name assigned anywhere in the body
}

// Check validates the program and returns the binding annotations.
func Check(prog *ast.Program) (*Info, error) {
	c := &checker{
		info: &Info{
			Functions: make(map[string]*FuncInfo),
			Bindings:  make(map[*ast.Name]BindingKind),
		},
		globals:    make(map[string]bool),
		allGlobals: make(map[string]bool),
	}

	if err := c.collectTopLevel(prog); err != nil {
		return nil, err
	}

	for _, stmt := range prog.Body {
		if err := c.checkStmt(stmt); err != nil {
			return nil, err
		}
	}

	return c.info, nil
}

// collectTopLevel gathers function definitions and global assignment
// targets. Functions are hoisted: a call may precede the definition.
func (c *checker) collectTopLevel(prog *ast.Program) error {
	for _, stmt := range prog.Body {
		switch s := stmt.(type) {
		case *ast.FunctionDef:
			if _, dup := c.info.Functions[s.Name]; dup {
				return &NameError{Msg: fmt.Sprintf("function %q defined more than once", s.Name), Pos: s.Pos()}
			}
			seen := make(map[string]bool, len(s.Params))
			for _, param := range s.Params {
				if seen[param] {
					return &NameError{Msg: fmt.Sprintf("duplicate parameter %q in function %q", param, s.Name), Pos: s.Pos()}
				}
				seen[param] = true
			}
			c.info.Functions[s.Name] = &FuncInfo{Name: s.Name, Params: s.Params, Def: s}
		case *ast.Assign:
			c.allGlobals[s.Target] = true
		case *ast.AugAssign:
			c.allGlobals[s.Target] = true
		}
	}

	for name, fn := range c.info.Functions {
		if c.allGlobals[name] {
			return &NameError{Msg: fmt.Sprintf("%q is both a function and a variable", name), Pos: fn.Def.Pos()}
		}
	}

	return nil
}

func (c *checker) checkStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.FunctionDef:
		return c.checkFunction(c.info.Functions[s.Name])

	case *ast.Assign:
		if err := c.checkExpr(s.Value); err != nil {
			return err
		}
		return c.define(s.Target, s.Pos())

	case *ast.AugAssign:
		if err := c.checkName(s.Target, s.Pos()); err != nil {
			return err
		}
		if err := c.checkExpr(s.Value); err != nil {
			return err
		}
		return nil

	case *ast.While:
		if err := c.checkExpr(s.Cond); err != nil {
			return err
		}
		return c.checkBody(s.Body)

	case *ast.If:
		if err := c.checkExpr(s.Cond); err != nil {
			return err
		}
		if err := c.checkBody(s.Body); err != nil {
			return err
		}
		return c.checkBody(s.Orelse)

	case *ast.Return:
		if s.Value != nil {
			return c.checkExpr(s.Value)
		}
		return nil

	case *ast.Break, *ast.Continue:
		return nil

	case *ast.Print:
		cast, ok := s.Arg.(*ast.IntCast)
		if !ok {
			return &TypeUsageError{Msg: "print argument must be wrapped in int(...)", Pos: s.Arg.Pos()}
		}
		if _, ok := cast.X.(*ast.Input); ok {
			return nil
		}
		return c.checkExpr(cast.X)

	case *ast.ExprStmt:
		return c.checkExpr(s.X)

	default:
		return &TypeUsageError{Msg: "unsupported statement", Pos: stmt.Pos()}
	}
}

func (c *checker) checkBody(body []ast.Stmt) error {
	for _, stmt := range body {
		if err := c.checkStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) checkFunction(fn *FuncInfo) error {
	c.fn = fn
	c.locals = make(map[string]bool, len(fn.Params))
	c.assigned = collectAssigned(fn.Def.Body)
	for _, param := range fn.Params {
		c.locals[param] = true
	}

	err := c.checkBody(fn.Def.Body)

	c.fn = nil
	c.locals = nil
	c.assigned = nil

	return err
}

// collectAssigned gathers every assignment target in a statement list,
// including nested blocks. A name assigned anywhere in a function body is
// a local of that function, never a global.
func collectAssigned(body []ast.Stmt) map[string]bool {
	assigned := make(map[string]bool)
	var walk func([]ast.Stmt)
	walk = func(stmts []ast.Stmt) {
		for _, stmt := range stmts {
			switch s := stmt.(type) {
			case *ast.Assign:
				assigned[s.Target] = true
			case *ast.AugAssign:
				assigned[s.Target] = true
			case *ast.While:
				walk(s.Body)
			case *ast.If:
				walk(s.Body)
				walk(s.Orelse)
			}
		}
	}
	walk(body)
	return assigned
}

// define records an assignment target in the current scope.
func (c *checker) define(name string, pos lexer.Position) error {
	if _, isFunc := c.info.Functions[name]; isFunc {
		return &NameError{Msg: fmt.Sprintf("cannot assign to function %q", name), Pos: pos}
	}
	if c.fn != nil {
		c.locals[name] = true
	} else {
		c.globals[name] = true
	}
	return nil
}

// checkName resolves a name reference against the two-level symbol table.
func (c *checker) checkName(name string, pos lexer.Position) error {
	if c.fn != nil {
		if c.locals[name] {
			return nil
		}
		if c.assigned[name] {
			return &NameError{Msg: fmt.Sprintf("local name %q used before assignment", name), Pos: pos}
		}
		if c.allGlobals[name] {
			return nil
		}
		return &NameError{Msg: fmt.Sprintf("undefined name %q", name), Pos: pos}
	}

	if c.globals[name] {
		return nil
	}
	return &NameError{Msg: fmt.Sprintf("undefined name %q", name), Pos: pos}
}

func (c *checker) checkExpr(expr ast.Expr) error {
	switch e := expr.(type) {
	case *ast.IntLiteral:
		return nil

	case *ast.Name:
		if err := c.checkName(e.Ident, e.Pos()); err != nil {
			return err
		}
		kind := BindGlobal
		if c.fn != nil && c.locals[e.Ident] {
			kind = BindLocal
		}
		c.info.Bindings[e] = kind
		return nil

	case *ast.BinaryOp:
		if err := c.checkExpr(e.Left); err != nil {
			return err
		}
		return c.checkExpr(e.Right)

	case *ast.UnaryOp:
		return c.checkExpr(e.Operand)

	case *ast.BoolOp:
		for _, v := range e.Values {
			if err := c.checkExpr(v); err != nil {
				return err
			}
		}
		return nil

	case *ast.Compare:
		if err := c.checkExpr(e.Left); err != nil {
			return err
		}
		return c.checkExpr(e.Right)

	case *ast.Call:
		fn, ok := c.info.Functions[e.Func]
		if !ok {
			return &NameError{Msg: fmt.Sprintf("undefined function %q", e.Func), Pos: e.Pos()}
		}
		if len(e.Args) != len(fn.Params) {
			return &ArityError{Func: e.Func, Want: len(fn.Params), Got: len(e.Args), Pos: e.Pos()}
		}
		for _, arg := range e.Args {
			if err := c.checkExpr(arg); err != nil {
				return err
			}
		}
		return nil

	case *ast.IntCast:
		// int(...) is only legal wrapping input(); print(int(E)) is
		// unwrapped by the Print case before reaching here.
		if _, ok := e.X.(*ast.Input); ok {
			return nil
		}
		return &TypeUsageError{Msg: "int(...) may only wrap input()", Pos: e.Pos()}

	case *ast.Input:
		return &TypeUsageError{Msg: "input() must be wrapped in int(...)", Pos: e.Pos()}

	default:
		return &TypeUsageError{Msg: "unsupported expression", Pos: expr.Pos()}
	}
}
