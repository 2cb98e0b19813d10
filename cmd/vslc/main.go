package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"vslc.dev/compiler/pkg/ast"
	"vslc.dev/compiler/pkg/bind"
	"vslc.dev/compiler/pkg/emit"
	"vslc.dev/compiler/pkg/simplify"

	"github.com/teris-io/cli"
)

var Description = strings.ReplaceAll(`
The VSL Compiler compiles a single VSL source file into x86-64 SysV GAS
assembly. VSL is a minimal, uni-typed (int64) imperative language: global
and local variables, functions, print/return/if/while/continue statements,
and integer expressions.
`, "\n", " ")

var VslCompiler = cli.New(Description).
	WithArg(cli.NewArg("input", "The source (.vsl) file to compile; reads stdin if omitted").
		AsOptional().WithType(cli.TypeString)).
	WithOption(cli.NewOption("output", "Write assembly to this file instead of stdout").
		WithType(cli.TypeString)).
	WithOption(cli.NewOption("tree", "Print the parsed AST instead of compiling").
		WithType(cli.TypeBool)).
	WithOption(cli.NewOption("new-print-style", "Use the box-drawing tree dump with --tree").
		WithType(cli.TypeBool)).
	WithOption(cli.NewOption("dump-symbols", "Print the bound symbol table to stderr").
		WithType(cli.TypeBool)).
	WithAction(Handler)

func Handler(args []string, options map[string]string) int {
	content, err := readInput(args)
	if err != nil {
		fmt.Printf("ERROR: Unable to open input: %s\n", err)
		return -1
	}

	parser := ast.NewParser(bytes.NewReader(content))
	tree, err := parser.Parse()
	if err != nil {
		fmt.Printf("ERROR: Unable to complete 'parsing' pass: %s\n", err)
		return -1
	}

	simplified := simplify.New().Simplify(tree)

	if _, enabled := options["tree"]; enabled {
		if _, boxStyle := options["new-print-style"]; boxStyle {
			fmt.Print(simplified.DumpTree())
		} else {
			fmt.Print(simplified.DumpFlat())
		}
		return 0
	}

	binder := bind.New()
	table, pool, err := binder.Bind(simplified)
	if err != nil {
		fmt.Printf("ERROR: Unable to complete 'binding' pass: %s\n", err)
		return -1
	}

	if _, enabled := options["dump-symbols"]; enabled {
		fmt.Fprint(os.Stderr, table.Dump())
	}

	generator := emit.New(table, pool)
	assembly, err := generator.Generate(simplified)
	if err != nil {
		fmt.Printf("ERROR: Unable to complete 'codegen' pass: %s\n", err)
		return -1
	}

	if err := writeOutput(options, assembly); err != nil {
		fmt.Printf("ERROR: Unable to write output: %s\n", err)
		return -1
	}

	return 0
}

func readInput(args []string) ([]byte, error) {
	if len(args) < 1 {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

func writeOutput(options map[string]string, assembly string) error {
	path, toFile := options["output"]
	if !toFile {
		fmt.Print(assembly)
		return nil
	}

	output, err := os.Create(path)
	if err != nil {
		return err
	}
	defer output.Close()

	_, err = output.WriteString(assembly)
	return err
}

func main() { os.Exit(VslCompiler.Run(os.Args, os.Stdout)) }
