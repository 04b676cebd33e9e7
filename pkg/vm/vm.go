// Package vm executes stack-machine instruction sequences against an
// explicit operand stack and call-frame stack.
package vm

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"minipy/pkg/codegen"
	"minipy/pkg/console"
)

// State is the execution state of one interpreter run.
type State int

const (
	Running State = iota
	Halted
	Faulted
)

// Interpreter executes one instruction sequence. Each run owns its own
// state; nothing is shared across runs.
type Interpreter struct {
	code     []codegen.Instruction
	labels   map[string]int   // label name -> instruction offset
	operands *operandStack    // expression evaluation stack
	frames   []*Frame         // call stack, top is the executing function
	globals  map[string]int64 // top-level variable bindings
	ip       int
	state    State
	console  console.Console

	maxSteps int // maximum steps (0 = unlimited)
	steps    int // steps executed
}

type Option func(*Interpreter)

// WithMaxSteps sets a maximum number of interpreter steps before Run
// returns ErrMaxStepsExceeded
func WithMaxSteps(n int) Option {
	return func(i *Interpreter) { i.maxSteps = n }
}

// NewInterpreter loads an instruction sequence, resolving every label to
// its absolute offset. Unresolved or duplicate labels fail here, before
// any instruction executes.
func NewInterpreter(code []codegen.Instruction, cons console.Console, opts ...Option) (*Interpreter, error) {
	labels, err := codegen.LabelTable(code)
	if err != nil {
		return nil, &Fault{Msg: err.Error()}
	}

	it := &Interpreter{
		code:     append([]codegen.Instruction(nil), code...),
		labels:   labels,
		operands: newOperandStack(),
		globals:  make(map[string]int64),
		console:  cons,
	}

	for _, o := range opts {
		o(it)
	}

	return it, nil
}

// State returns the current execution state.
func (i *Interpreter) State() State {
	return i.state
}

// Depth returns the call stack depth.
func (i *Interpreter) Depth() int {
	return len(i.frames)
}

// StackDepth returns the operand stack depth.
func (i *Interpreter) StackDepth() int {
	return i.operands.Depth()
}

// Run executes from the current position until Halted or Faulted.
func (i *Interpreter) Run() error {
	for i.state == Running {
		if err := i.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step executes a single instruction.
func (i *Interpreter) Step() error {
	if i.state != Running {
		return nil
	}

	if i.maxSteps > 0 && i.steps >= i.maxSteps {
		return ErrMaxStepsExceeded
	}
	i.steps++

	if i.ip < 0 || i.ip >= len(i.code) {
		return i.fault(codegen.Instruction{}, "instruction pointer out of range")
	}

	ins := i.code[i.ip]
	switch ins.Op {
	case codegen.OpLabel:
		i.ip++

	case codegen.OpPush:
		i.operands.Push(ins.Imm)
		i.ip++

	case codegen.OpLoad:
		v, ok := i.load(ins.Name)
		if !ok {
			return i.fault(ins, fmt.Sprintf("load of undefined variable %q", ins.Name))
		}
		i.operands.Push(v)
		i.ip++

	case codegen.OpStore:
		v, ok := i.operands.Pop()
		if !ok {
			return i.underflow(ins)
		}
		i.store(ins.Name, v)
		i.ip++

	case codegen.OpAdd, codegen.OpSub, codegen.OpMul, codegen.OpDiv, codegen.OpMod,
		codegen.OpLt, codegen.OpGt, codegen.OpEq, codegen.OpNe, codegen.OpLe, codegen.OpGe,
		codegen.OpAnd, codegen.OpOr:
		b, ok := i.operands.Pop()
		if !ok {
			return i.underflow(ins)
		}
		a, ok := i.operands.Pop()
		if !ok {
			return i.underflow(ins)
		}
		res, err := i.binary(ins, a, b)
		if err != nil {
			return err
		}
		i.operands.Push(res)
		i.ip++

	case codegen.OpNot:
		a, ok := i.operands.Pop()
		if !ok {
			return i.underflow(ins)
		}
		i.operands.Push(bool01(a == 0))
		i.ip++

	case codegen.OpJump:
		i.ip = i.labels[ins.Name]

	case codegen.OpJumpf:
		v, ok := i.operands.Pop()
		if !ok {
			return i.underflow(ins)
		}
		if v == 0 {
			i.ip = i.labels[ins.Name]
		} else {
			i.ip++
		}

	case codegen.OpCall:
		if i.operands.Depth() < ins.Arity {
			return i.fault(ins, fmt.Sprintf("call to %q needs %d argument(s) on the stack", ins.Name, ins.Arity))
		}
		frame := &Frame{
			FuncName: ins.Name,
			Locals:   make(map[string]int64),
			ReturnTo: i.ip + 1,
		}
		if len(i.frames) > 0 {
			frame.Caller = i.frames[len(i.frames)-1]
		}
		i.frames = append(i.frames, frame)
		i.ip = i.labels[ins.Name]

	case codegen.OpReturn:
		v, ok := i.operands.Pop()
		if !ok {
			return i.underflow(ins)
		}
		if len(i.frames) == 0 {
			return i.fault(ins, "return outside a function call")
		}
		frame := i.frames[len(i.frames)-1]
		i.frames = i.frames[:len(i.frames)-1]
		i.operands.Push(v)
		i.ip = frame.ReturnTo

	case codegen.OpRead:
		line, err := i.console.Read()
		if err == io.EOF {
			return i.fault(ins, "end of input")
		}
		if err != nil {
			return i.fault(ins, fmt.Sprintf("input failed: %v", err))
		}
		v, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err != nil {
			return i.fault(ins, fmt.Sprintf("malformed integer input %q", line))
		}
		i.operands.Push(v)
		i.ip++

	case codegen.OpWrite:
		v, ok := i.operands.Pop()
		if !ok {
			return i.underflow(ins)
		}
		i.console.Write(v)
		i.ip++

	case codegen.OpHalt:
		i.state = Halted

	default:
		return i.fault(ins, fmt.Sprintf("unknown opcode %q", ins.Op))
	}

	return nil
}

// load reads a variable: current frame first, then globals. The frame
// stack being empty means global scope.
func (i *Interpreter) load(name string) (int64, bool) {
	if len(i.frames) > 0 {
		if v, ok := i.frames[len(i.frames)-1].Locals[name]; ok {
			return v, true
		}
	}
	v, ok := i.globals[name]
	return v, ok
}

// store writes a variable into the current frame, or the globals when
// no frame is active. Assignment inside a function always creates a
// local, never writes through to a global.
func (i *Interpreter) store(name string, v int64) {
	if len(i.frames) > 0 {
		i.frames[len(i.frames)-1].Locals[name] = v
		return
	}
	i.globals[name] = v
}

func (i *Interpreter) binary(ins codegen.Instruction, a, b int64) (int64, error) {
	switch ins.Op {
	case codegen.OpAdd:
		return a + b, nil
	case codegen.OpSub:
		return a - b, nil
	case codegen.OpMul:
		return a * b, nil
	case codegen.OpDiv:
		if b == 0 {
			return 0, i.fault(ins, "division by zero")
		}
		return floorDiv(a, b), nil
	case codegen.OpMod:
		if b == 0 {
			return 0, i.fault(ins, "modulo by zero")
		}
		return floorMod(a, b), nil
	case codegen.OpLt:
		return bool01(a < b), nil
	case codegen.OpGt:
		return bool01(a > b), nil
	case codegen.OpEq:
		return bool01(a == b), nil
	case codegen.OpNe:
		return bool01(a != b), nil
	case codegen.OpLe:
		return bool01(a <= b), nil
	case codegen.OpGe:
		return bool01(a >= b), nil
	case codegen.OpAnd:
		return bool01(a != 0 && b != 0), nil
	case codegen.OpOr:
		return bool01(a != 0 || b != 0), nil
	}
	return 0, i.fault(ins, fmt.Sprintf("unknown binary opcode %q", ins.Op))
}

func (i *Interpreter) fault(ins codegen.Instruction, msg string) error {
	i.state = Faulted
	return &Fault{Msg: msg, Offset: i.ip, Op: ins.Op}
}

func (i *Interpreter) underflow(ins codegen.Instruction) error {
	return i.fault(ins, "operand stack underflow")
}

func bool01(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// floorDiv matches the source language's floor division.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod matches the source language's modulo: the result takes the
// divisor's sign.
func floorMod(a, b int64) int64 {
	r := a % b
	if r != 0 && ((r < 0) != (b < 0)) {
		r += b
	}
	return r
}
