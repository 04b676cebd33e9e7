// Package codegen turns a validated program into a flat instruction
// sequence for the stack machine. Generation is deterministic: the same
// program always yields the same sequence.
package codegen

import (
	"fmt"

	"minipy/pkg/ast"
	"minipy/pkg/lexer"
	"minipy/pkg/sem"
)

// voidSlot receives the discarded value of a bare expression statement.
// The '$' prefix keeps generated names out of the source identifier space.
const voidSlot = "$void"

type loopLabels struct {
	start string
	end   string
}

type Generator struct {
	info        *sem.Info
	code        []Instruction
	labelCounts map[string]int // per-kind label counters
	boolCount   int            // scratch slot counter for and/or
	loops       []loopLabels   // innermost loop last
}

// NewGenerator creates a generator for one validated program.
func NewGenerator(info *sem.Info) *Generator {
	return &Generator{
		info:        info,
		labelCounts: make(map[string]int),
	}
}

// Generate emits the instruction sequence for the program. Errors are
// internal invariant violations only; user-facing validation happened in
// the semantic checker.
func (g *Generator) Generate(prog *ast.Program) ([]Instruction, error) {
	for _, stmt := range prog.Body {
		if err := g.stmt(stmt); err != nil {
			return nil, err
		}
	}
	g.emit(Instruction{Op: OpHalt})

	if _, err := LabelTable(g.code); err != nil {
		return nil, fmt.Errorf("codegen: %w", err)
	}
	return g.code, nil
}

func (g *Generator) emit(ins Instruction) {
	g.code = append(g.code, ins)
}

// newLabel returns a fresh label for the given kind, e.g. start_while_1.
func (g *Generator) newLabel(kind string) string {
	g.labelCounts[kind]++
	return fmt.Sprintf("%s_%d", kind, g.labelCounts[kind])
}

func (g *Generator) placeLabel(name string) {
	g.emit(Instruction{Op: OpLabel, Name: name})
}

func (g *Generator) stmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.FunctionDef:
		return g.functionDef(s)

	case *ast.Assign:
		if err := g.expr(s.Value); err != nil {
			return err
		}
		g.emit(Instruction{Op: OpStore, Name: s.Target})
		return nil

	case *ast.AugAssign:
		g.emit(Instruction{Op: OpLoad, Name: s.Target})
		if err := g.expr(s.Value); err != nil {
			return err
		}
		op, err := binaryOpcode(s.Op)
		if err != nil {
			return err
		}
		g.emit(Instruction{Op: op})
		g.emit(Instruction{Op: OpStore, Name: s.Target})
		return nil

	case *ast.While:
		start := g.newLabel("start_while")
		end := g.newLabel("end_while")

		g.placeLabel(start)
		if err := g.expr(s.Cond); err != nil {
			return err
		}
		g.emit(Instruction{Op: OpJumpf, Name: end})

		g.loops = append(g.loops, loopLabels{start: start, end: end})
		err := g.body(s.Body)
		g.loops = g.loops[:len(g.loops)-1]
		if err != nil {
			return err
		}

		g.emit(Instruction{Op: OpJump, Name: start})
		g.placeLabel(end)
		return nil

	case *ast.If:
		return g.ifStmt(s)

	case *ast.Break:
		if len(g.loops) == 0 {
			return fmt.Errorf("codegen: break outside loop")
		}
		g.emit(Instruction{Op: OpJump, Name: g.loops[len(g.loops)-1].end})
		return nil

	case *ast.Continue:
		if len(g.loops) == 0 {
			return fmt.Errorf("codegen: continue outside loop")
		}
		g.emit(Instruction{Op: OpJump, Name: g.loops[len(g.loops)-1].start})
		return nil

	case *ast.Return:
		if s.Value != nil {
			if err := g.expr(s.Value); err != nil {
				return err
			}
		} else {
			g.emit(Instruction{Op: OpPush, Imm: 0})
		}
		g.emit(Instruction{Op: OpReturn})
		return nil

	case *ast.Print:
		cast, ok := s.Arg.(*ast.IntCast)
		if !ok {
			return fmt.Errorf("codegen: print argument not validated")
		}
		if _, isInput := cast.X.(*ast.Input); isInput {
			g.emit(Instruction{Op: OpRead})
		} else if err := g.expr(cast.X); err != nil {
			return err
		}
		g.emit(Instruction{Op: OpWrite})
		return nil

	case *ast.ExprStmt:
		if err := g.expr(s.X); err != nil {
			return err
		}
		g.emit(Instruction{Op: OpStore, Name: voidSlot})
		return nil

	default:
		return fmt.Errorf("codegen: unsupported statement %T", stmt)
	}
}

func (g *Generator) body(body []ast.Stmt) error {
	for _, stmt := range body {
		if err := g.stmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) ifStmt(s *ast.If) error {
	end := g.newLabel("end_if")

	if len(s.Orelse) == 0 {
		if err := g.expr(s.Cond); err != nil {
			return err
		}
		g.emit(Instruction{Op: OpJumpf, Name: end})
		if err := g.body(s.Body); err != nil {
			return err
		}
		g.placeLabel(end)
		return nil
	}

	els := g.newLabel("else")
	if err := g.expr(s.Cond); err != nil {
		return err
	}
	g.emit(Instruction{Op: OpJumpf, Name: els})
	if err := g.body(s.Body); err != nil {
		return err
	}
	g.emit(Instruction{Op: OpJump, Name: end})
	g.placeLabel(els)
	if err := g.body(s.Orelse); err != nil {
		return err
	}
	g.placeLabel(end)
	return nil
}

// functionDef emits the function out of line: top-level control jumps
// over the body, which is only entered via CALL. Falling off the end
// returns 0.
func (g *Generator) functionDef(s *ast.FunctionDef) error {
	end := "end_def_" + s.Name

	g.emit(Instruction{Op: OpJump, Name: end})
	g.placeLabel(s.Name)
	// Arguments sit on the stack in call order, so the prologue binds
	// them to parameter names back to front.
	for k := len(s.Params) - 1; k >= 0; k-- {
		g.emit(Instruction{Op: OpStore, Name: s.Params[k]})
	}
	if err := g.body(s.Body); err != nil {
		return err
	}
	g.emit(Instruction{Op: OpPush, Imm: 0})
	g.emit(Instruction{Op: OpReturn})
	g.placeLabel(end)
	return nil
}

func binaryOpcode(t lexer.TokenType) (Opcode, error) {
	switch t {
	case lexer.PLUS:
		return OpAdd, nil
	case lexer.MINUS:
		return OpSub, nil
	case lexer.MULT:
		return OpMul, nil
	case lexer.FLOORDIV:
		return OpDiv, nil
	case lexer.MOD:
		return OpMod, nil
	}
	return "", fmt.Errorf("codegen: no opcode for operator %s", t)
}

func compareOpcode(t lexer.TokenType) (Opcode, error) {
	switch t {
	case lexer.LT:
		return OpLt, nil
	case lexer.GT:
		return OpGt, nil
	case lexer.EQ:
		return OpEq, nil
	case lexer.NE:
		return OpNe, nil
	case lexer.LE:
		return OpLe, nil
	case lexer.GE:
		return OpGe, nil
	}
	return "", fmt.Errorf("codegen: no opcode for comparison %s", t)
}

func (g *Generator) expr(expr ast.Expr) error {
	switch e := expr.(type) {
	case *ast.IntLiteral:
		g.emit(Instruction{Op: OpPush, Imm: e.Value})
		return nil

	case *ast.Name:
		g.emit(Instruction{Op: OpLoad, Name: e.Ident})
		return nil

	case *ast.BinaryOp:
		if err := g.expr(e.Left); err != nil {
			return err
		}
		if err := g.expr(e.Right); err != nil {
			return err
		}
		op, err := binaryOpcode(e.Op)
		if err != nil {
			return err
		}
		g.emit(Instruction{Op: op})
		return nil

	case *ast.UnaryOp:
		switch e.Op {
		case lexer.PLUS:
			return g.expr(e.Operand)
		case lexer.MINUS:
			// -x compiles as 0 - x
			g.emit(Instruction{Op: OpPush, Imm: 0})
			if err := g.expr(e.Operand); err != nil {
				return err
			}
			g.emit(Instruction{Op: OpSub})
			return nil
		case lexer.NOT:
			if err := g.expr(e.Operand); err != nil {
				return err
			}
			g.emit(Instruction{Op: OpNot})
			return nil
		}
		return fmt.Errorf("codegen: unsupported unary operator %s", e.Op)

	case *ast.BoolOp:
		return g.boolOp(e)

	case *ast.Compare:
		if err := g.expr(e.Left); err != nil {
			return err
		}
		if err := g.expr(e.Right); err != nil {
			return err
		}
		op, err := compareOpcode(e.Op)
		if err != nil {
			return err
		}
		g.emit(Instruction{Op: op})
		return nil

	case *ast.Call:
		fn, ok := g.info.Functions[e.Func]
		if !ok || len(e.Args) != len(fn.Params) {
			return fmt.Errorf("codegen: call to %q not validated", e.Func)
		}
		for _, arg := range e.Args {
			if err := g.expr(arg); err != nil {
				return err
			}
		}
		g.emit(Instruction{Op: OpCall, Name: e.Func, Arity: len(e.Args)})
		return nil

	case *ast.IntCast:
		if _, ok := e.X.(*ast.Input); !ok {
			return fmt.Errorf("codegen: int cast not validated")
		}
		g.emit(Instruction{Op: OpRead})
		return nil

	default:
		return fmt.Errorf("codegen: unsupported expression %T", expr)
	}
}

// boolOp compiles and/or with short-circuit jumps. The running value
// lives in a fresh scratch slot so the produced result is one of the
// operand values, not a canonical boolean.
func (g *Generator) boolOp(e *ast.BoolOp) error {
	g.boolCount++
	slot := fmt.Sprintf("$bool%d", g.boolCount)
	end := g.newLabel("bool_end")

	last := len(e.Values) - 1
	for i, v := range e.Values {
		if err := g.expr(v); err != nil {
			return err
		}
		g.emit(Instruction{Op: OpStore, Name: slot})
		if i == last {
			break
		}

		g.emit(Instruction{Op: OpLoad, Name: slot})
		switch e.Op {
		case lexer.AND:
			// falsy left operand is the result
			g.emit(Instruction{Op: OpJumpf, Name: end})
		case lexer.OR:
			// truthy left operand is the result
			next := g.newLabel("or_next")
			g.emit(Instruction{Op: OpJumpf, Name: next})
			g.emit(Instruction{Op: OpJump, Name: end})
			g.placeLabel(next)
		default:
			return fmt.Errorf("codegen: unsupported boolean operator %s", e.Op)
		}
	}

	g.placeLabel(end)
	g.emit(Instruction{Op: OpLoad, Name: slot})
	return nil
}
