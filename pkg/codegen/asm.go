package codegen

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Textual instruction format, one instruction per line:
//
//	MNEMONIC [operand]
//	name:            label definition
//	CALL name arity
//
// ';' starts a comment. This is the contract downstream tooling consumes,
// so Parse accepts everything Format produces.

// AsmError reports an unusable assembly line.
type AsmError struct {
	Line int
	Msg  string
}

func (e *AsmError) Error() string {
	return fmt.Sprintf("asm: line %d: %s", e.Line, e.Msg)
}

var (
	labelLineRegex = regexp.MustCompile(`^([A-Za-z_$][A-Za-z0-9_$]*):$`)
	nameRegex      = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
)

// Format renders the instruction sequence as a textual listing.
func Format(code []Instruction) string {
	var b strings.Builder
	for _, ins := range code {
		b.WriteString(ins.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Parse reads a textual listing back into an instruction sequence and
// verifies that every referenced label resolves.
func Parse(src string) ([]Instruction, error) {
	var code []Instruction

	for num, raw := range strings.Split(src, "\n") {
		line := raw
		if i := strings.IndexByte(line, ';'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		ins, err := parseLine(line, num+1)
		if err != nil {
			return nil, err
		}
		code = append(code, ins)
	}

	if _, err := LabelTable(code); err != nil {
		return nil, &AsmError{Line: 0, Msg: err.Error()}
	}
	return code, nil
}

func parseLine(line string, num int) (Instruction, error) {
	if m := labelLineRegex.FindStringSubmatch(line); m != nil {
		return Instruction{Op: OpLabel, Name: m[1]}, nil
	}

	fields := strings.Fields(line)
	op, ok := LookupOpcode(fields[0])
	if !ok {
		return Instruction{}, &AsmError{Line: num, Msg: fmt.Sprintf("unknown mnemonic %q", fields[0])}
	}

	switch op {
	case OpPush:
		if len(fields) != 2 {
			return Instruction{}, &AsmError{Line: num, Msg: "PUSH needs one integer operand"}
		}
		imm, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return Instruction{}, &AsmError{Line: num, Msg: fmt.Sprintf("bad PUSH operand %q", fields[1])}
		}
		return Instruction{Op: op, Imm: imm}, nil

	case OpLoad, OpStore, OpJump, OpJumpf:
		if len(fields) != 2 || !nameRegex.MatchString(fields[1]) {
			return Instruction{}, &AsmError{Line: num, Msg: fmt.Sprintf("%s needs one name operand", op)}
		}
		return Instruction{Op: op, Name: fields[1]}, nil

	case OpCall:
		if len(fields) != 3 || !nameRegex.MatchString(fields[1]) {
			return Instruction{}, &AsmError{Line: num, Msg: "CALL needs a function name and an arity"}
		}
		arity, err := strconv.Atoi(fields[2])
		if err != nil || arity < 0 {
			return Instruction{}, &AsmError{Line: num, Msg: fmt.Sprintf("bad CALL arity %q", fields[2])}
		}
		return Instruction{Op: op, Name: fields[1], Arity: arity}, nil

	default:
		if len(fields) != 1 {
			return Instruction{}, &AsmError{Line: num, Msg: fmt.Sprintf("%s takes no operand", op)}
		}
		return Instruction{Op: op}, nil
	}
}
