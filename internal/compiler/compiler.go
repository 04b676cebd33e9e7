package compiler

import (
	"fmt"
	"os"

	"minipy/pkg/codegen"
	"minipy/pkg/color"
	"minipy/pkg/console"
	"minipy/pkg/lexer"
	"minipy/pkg/parser"
	"minipy/pkg/sem"
	"minipy/pkg/vm"

	"github.com/charmbracelet/log"
)

type Compiler struct {
	Help       bool   // Show help message
	Verbose    bool   // Enable verbose output
	NoColor    bool   // Disable colored output
	Emit       bool   // Emit the instruction listing
	ShouldRun  bool   // Whether to execute the program
	ExecAsm    bool   // Treat the input as an instruction listing and execute it
	Prompt     string // Prompt shown before each interactive read
	SourceFile string // Path to the source file
	OutputFile string // Path for the emitted listing ("" means stdout)
}

// Compile processes the source file, generates stack-machine code, and
// emits or executes it based on the options set.
func (opts *Compiler) Compile() error {
	log.Info("Processing file", "file", opts.SourceFile)

	input, err := os.ReadFile(opts.SourceFile)
	if err != nil {
		log.Fatal("Failed to read file", "file", opts.SourceFile, "error", err)
	}

	if opts.ExecAsm {
		code, err := codegen.Parse(string(input))
		if err != nil {
			fmt.Println(color.BrightRedText("=== Listing Errors ==="))
			fmt.Println(err)
			return fmt.Errorf("listing parse failed")
		}
		return opts.execute(code)
	}

	code, err := opts.translate(string(input))
	if err != nil {
		return err
	}

	if opts.Verbose {
		fmt.Println(color.GreenText("\n=== Generated Code ==="))
		if len(code) == 0 {
			fmt.Println(color.GrayText("No code generated."))
		} else {
			for i, ins := range code {
				fmt.Printf("%s: %s\n",
					color.CyanText(fmt.Sprintf("%d", i)),
					color.YellowText(ins.String()))
			}
		}
	}

	if opts.Emit {
		listing := codegen.Format(code)
		if opts.OutputFile == "" {
			fmt.Print(listing)
		} else if err := os.WriteFile(opts.OutputFile, []byte(listing), 0o644); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
	}

	if opts.ShouldRun {
		return opts.execute(code)
	}

	return nil
}

// translate runs the front end: lexing, parsing, semantic checking and
// code generation.
func (opts *Compiler) translate(src string) ([]codegen.Instruction, error) {
	l := lexer.NewLexer(src)
	p := parser.NewParser(l)

	prog, err := p.Parse()
	if err != nil {
		fmt.Println(color.BrightRedText("=== Syntax Errors ==="))
		fmt.Println(err)
		return nil, fmt.Errorf("parsing failed")
	}

	info, err := sem.Check(prog)
	if err != nil {
		fmt.Println(color.BrightRedText("=== Semantic Errors ==="))
		fmt.Println(err)
		return nil, fmt.Errorf("semantic analysis failed")
	}

	code, err := codegen.NewGenerator(info).Generate(prog)
	if err != nil {
		return nil, fmt.Errorf("code generation failed: %w", err)
	}

	return code, nil
}

func (opts *Compiler) execute(code []codegen.Instruction) error {
	var cons console.Console
	if console.IsTerminal() {
		in := console.NewInteractive(opts.Prompt)
		defer in.Close()
		cons = in
	} else {
		cons = console.NewStdio(os.Stdin, os.Stdout)
	}

	it, err := vm.NewInterpreter(code, cons)
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}

	fmt.Println(color.GreenText("\n=== Program Output ==="))
	if err := it.Run(); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}

	return nil
}
