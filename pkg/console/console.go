// Package console is the line-oriented I/O collaborator the VM drives.
// The core never owns a terminal or file handle directly.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
)

// Console provides one line of input per Read and receives one integer
// per Write. Read returns io.EOF when the input source is exhausted.
type Console interface {
	Read() (string, error)
	Write(v int64)
}

// Stdio reads buffered lines and writes one integer per line.
type Stdio struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewStdio creates a console over the given reader and writer.
func NewStdio(in io.Reader, out io.Writer) *Stdio {
	return &Stdio{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

func (c *Stdio) Read() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return c.in.Text(), nil
}

func (c *Stdio) Write(v int64) {
	fmt.Fprintln(c.out, v)
}

// Interactive prompts on a terminal using liner.
type Interactive struct {
	state  *liner.State
	prompt string
	out    io.Writer
}

// NewInteractive creates a prompting console. Close releases the
// terminal state.
func NewInteractive(prompt string) *Interactive {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return &Interactive{
		state:  state,
		prompt: prompt,
		out:    os.Stdout,
	}
}

func (c *Interactive) Read() (string, error) {
	line, err := c.state.Prompt(c.prompt)
	if err == liner.ErrPromptAborted || err == io.EOF {
		return "", io.EOF
	}
	return line, err
}

func (c *Interactive) Write(v int64) {
	fmt.Fprintln(c.out, v)
}

func (c *Interactive) Close() error {
	return c.state.Close()
}

// Static serves fixed input lines and records output, for tests.
type Static struct {
	lines  []string
	next   int
	Output []int64
}

// NewStatic creates a console over fixed input lines.
func NewStatic(lines ...string) *Static {
	return &Static{lines: lines}
}

func (c *Static) Read() (string, error) {
	if c.next >= len(c.lines) {
		return "", io.EOF
	}
	line := c.lines[c.next]
	c.next++
	return line, nil
}

func (c *Static) Write(v int64) {
	c.Output = append(c.Output, v)
}

// Rendered returns the captured output, one integer per line.
func (c *Static) Rendered() string {
	var b strings.Builder
	for _, v := range c.Output {
		fmt.Fprintln(&b, v)
	}
	return b.String()
}

// IsTerminal reports whether stdin is attached to a terminal, which
// decides between the prompting and the buffered console.
func IsTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}
