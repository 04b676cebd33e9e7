package main

import (
	"flag"
	"fmt"
	"os"

	"minipy/internal/compiler"
	"minipy/internal/logger"
	"minipy/pkg/color"

	"github.com/charmbracelet/log"
)

// Main entry point for the minipy compiler.
func main() {
	options := compiler.Compiler{}

	flag.BoolVar(&options.Help, "h", false, "Show help")
	flag.BoolVar(&options.Verbose, "v", false, "Verbose mode")
	flag.BoolVar(&options.NoColor, "n", false, "No color")
	flag.BoolVar(&options.Emit, "e", false, "Emit the instruction listing")
	flag.BoolVar(&options.ShouldRun, "r", false, "Run the program after compiling")
	flag.BoolVar(&options.ExecAsm, "x", false, "Execute an instruction listing instead of compiling")
	flag.StringVar(&options.Prompt, "p", "? ", "Input prompt for interactive runs")
	flag.StringVar(&options.OutputFile, "o", "", "Output file for the emitted listing (default stdout)")

	flag.Parse()
	args := flag.Args()

	logger.Init(options.Verbose, options.NoColor)
	if options.Help {
		fmt.Printf("Usage: %s [options] <file>\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	if options.NoColor {
		color.EnableColor(false)
	}

	if len(args) == 0 {
		log.Fatal("No input file provided", "help", fmt.Sprintf("%s -h", os.Args[0]))
	}

	options.SourceFile = args[0]

	err := options.Compile()
	if err != nil {
		log.Fatal("Compilation failed", "error", err)
	}
}
