package console_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"minipy/pkg/console"
)

func TestStdioRead(t *testing.T) {
	var out bytes.Buffer
	cons := console.NewStdio(strings.NewReader("3\n4\n"), &out)

	for _, want := range []string{"3", "4"} {
		line, err := cons.Read()
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if line != want {
			t.Errorf("expected %q, got %q", want, line)
		}
	}

	if _, err := cons.Read(); err != io.EOF {
		t.Errorf("expected io.EOF after the last line, got %v", err)
	}
}

func TestStdioWrite(t *testing.T) {
	var out bytes.Buffer
	cons := console.NewStdio(strings.NewReader(""), &out)

	cons.Write(5)
	cons.Write(-12)

	if out.String() != "5\n-12\n" {
		t.Errorf("expected one integer per line, got %q", out.String())
	}
}

func TestStatic(t *testing.T) {
	cons := console.NewStatic("7", "8")

	line, err := cons.Read()
	if err != nil || line != "7" {
		t.Fatalf("expected 7, got %q (%v)", line, err)
	}
	line, err = cons.Read()
	if err != nil || line != "8" {
		t.Fatalf("expected 8, got %q (%v)", line, err)
	}
	if _, err := cons.Read(); err != io.EOF {
		t.Errorf("expected io.EOF after the fixed lines, got %v", err)
	}

	cons.Write(15)
	cons.Write(0)
	if cons.Rendered() != "15\n0\n" {
		t.Errorf("expected rendered output %q, got %q", "15\n0\n", cons.Rendered())
	}
}
