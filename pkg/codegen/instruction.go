package codegen

import (
	"fmt"
	"strings"
)

type Opcode string

// Target machine opcodes. OpLabel is a pseudo-instruction marking a jump
// target; it is rendered as "name:" and resolved to an offset at load time.
const (
	OpPush  Opcode = "PUSH"
	OpLoad  Opcode = "LOAD"
	OpStore Opcode = "STORE"

	OpAdd Opcode = "ADD"
	OpSub Opcode = "SUB"
	OpMul Opcode = "MUL"
	OpDiv Opcode = "DIV"
	OpMod Opcode = "MOD"

	OpLt Opcode = "LT"
	OpGt Opcode = "GT"
	OpEq Opcode = "EQ"
	OpNe Opcode = "NE"
	OpLe Opcode = "LE"
	OpGe Opcode = "GE"

	OpAnd Opcode = "AND"
	OpOr  Opcode = "OR"
	OpNot Opcode = "NOT"

	OpJump  Opcode = "JUMP"
	OpJumpf Opcode = "JUMPF"

	OpCall   Opcode = "CALL"
	OpReturn Opcode = "RETURN"

	OpRead  Opcode = "READ"
	OpWrite Opcode = "WRITE"
	OpHalt  Opcode = "HALT"

	OpLabel Opcode = "label"
)

// Instruction is one target-machine operation with at most one operand.
type Instruction struct {
	Op    Opcode
	Imm   int64  // PUSH immediate
	Name  string // variable, label, or function name
	Arity int    // CALL arity
}

// String renders the instruction in the textual wire format.
func (i Instruction) String() string {
	switch i.Op {
	case OpLabel:
		return i.Name + ":"
	case OpPush:
		return fmt.Sprintf("%s %d", i.Op, i.Imm)
	case OpLoad, OpStore, OpJump, OpJumpf:
		return fmt.Sprintf("%s %s", i.Op, i.Name)
	case OpCall:
		return fmt.Sprintf("%s %s %d", i.Op, i.Name, i.Arity)
	default:
		return string(i.Op)
	}
}

// LabelTable resolves every label definition to its absolute offset.
// Duplicate definitions and unresolved references fail.
func LabelTable(code []Instruction) (map[string]int, error) {
	labels := make(map[string]int)
	for idx, ins := range code {
		if ins.Op != OpLabel {
			continue
		}
		if _, dup := labels[ins.Name]; dup {
			return nil, fmt.Errorf("label %q defined more than once", ins.Name)
		}
		labels[ins.Name] = idx
	}

	for _, ins := range code {
		switch ins.Op {
		case OpJump, OpJumpf, OpCall:
			if _, ok := labels[ins.Name]; !ok {
				return nil, fmt.Errorf("unresolved label %q", ins.Name)
			}
		}
	}

	return labels, nil
}

// opcodeSet is every real opcode, keyed by mnemonic.
var opcodeSet = func() map[string]Opcode {
	ops := []Opcode{
		OpPush, OpLoad, OpStore,
		OpAdd, OpSub, OpMul, OpDiv, OpMod,
		OpLt, OpGt, OpEq, OpNe, OpLe, OpGe,
		OpAnd, OpOr, OpNot,
		OpJump, OpJumpf, OpCall, OpReturn,
		OpRead, OpWrite, OpHalt,
	}
	set := make(map[string]Opcode, len(ops))
	for _, op := range ops {
		set[string(op)] = op
	}
	return set
}()

// LookupOpcode maps a mnemonic to its opcode, case-insensitively.
func LookupOpcode(mnemonic string) (Opcode, bool) {
	op, ok := opcodeSet[strings.ToUpper(mnemonic)]
	return op, ok
}
