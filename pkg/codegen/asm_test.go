package codegen_test

import (
	"errors"
	"strings"
	"testing"

	"minipy/pkg/codegen"
)

func TestFormatParseRoundTrip(t *testing.T) {
	src := "total = 0\n" +
		"i = 0\n" +
		"while i < 10:\n" +
		"    total += i\n" +
		"    i += 1\n" +
		"print(int(total))\n"

	code := compile(t, src)
	listing := codegen.Format(code)

	parsed, err := codegen.Parse(listing)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if codegen.Format(parsed) != listing {
		t.Error("expected the listing to survive a round trip unchanged")
	}
}

func TestParseComments(t *testing.T) {
	src := "; program header\n" +
		"PUSH 1   ; immediate\n" +
		"STORE x\n" +
		"\n" +
		"HALT\n"

	code, err := codegen.Parse(src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(code) != 3 {
		t.Fatalf("expected 3 instructions, got %d", len(code))
	}
	if code[0] != (codegen.Instruction{Op: codegen.OpPush, Imm: 1}) {
		t.Errorf("expected PUSH 1, got %q", code[0].String())
	}
}

func TestParseCaseInsensitiveMnemonics(t *testing.T) {
	code, err := codegen.Parse("push 7\nwrite\nhalt\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if code[0].Op != codegen.OpPush || code[1].Op != codegen.OpWrite {
		t.Errorf("expected lowercase mnemonics to parse, got %q %q", code[0].String(), code[1].String())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src         string
		want        string
		description string
	}{
		{"FROB 1\nHALT\n", "unknown mnemonic", "unknown mnemonic"},
		{"PUSH abc\nHALT\n", "bad PUSH operand", "non-integer immediate"},
		{"PUSH\nHALT\n", "one integer operand", "missing immediate"},
		{"LOAD\nHALT\n", "one name operand", "missing variable name"},
		{"CALL f\nHALT\n", "function name and an arity", "missing arity"},
		{"CALL f -1\nHALT\n", "bad CALL arity", "negative arity"},
		{"ADD 3\nHALT\n", "takes no operand", "operand on a bare opcode"},
		{"JUMP nowhere\nHALT\n", `unresolved label "nowhere"`, "unresolved label"},
		{"x:\nx:\nHALT\n", "defined more than once", "duplicate label"},
	}

	for _, test := range tests {
		_, err := codegen.Parse(test.src)
		if err == nil {
			t.Errorf("%s: expected a parse error", test.description)
			continue
		}
		var ae *codegen.AsmError
		if !errors.As(err, &ae) {
			t.Errorf("%s: expected *codegen.AsmError, got %T", test.description, err)
			continue
		}
		if !strings.Contains(err.Error(), test.want) {
			t.Errorf("%s: expected %q in error, got %q", test.description, test.want, err)
		}
	}
}
