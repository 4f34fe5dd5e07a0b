package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/h4ckm310n/lox/interpreter"
	"github.com/h4ckm310n/lox/lexer"
	"github.com/h4ckm310n/lox/parser"
)

// runCmd executes a source file through the tree-walking interpreter path.
type runCmd struct{}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Execute a Lox source file with the tree-walking interpreter" }
func (*runCmd) Usage() string {
	return `run <file>:
  Execute Lox code using the tree-walking interpreter.
`
}
func (r *runCmd) SetFlags(f *flag.FlagSet) {}

func (r *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "error: no file provided")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	lex := lexer.New(string(data))
	tokens, err := lex.Scan()
	if err != nil {
		fmt.Fprintf(os.Stderr, "lexing error: %v\n", err)
		return exitCompileError
	}

	p := parser.Make(tokens)
	statements, parseErrs := p.Parse()
	if len(parseErrs) > 0 {
		for _, parseErr := range parseErrs {
			fmt.Fprintln(os.Stderr, parseErr)
		}
		return exitCompileError
	}

	interp := interpreter.Make()
	if err := interp.Interpret(statements); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitRuntimeError
	}
	return subcommands.ExitSuccess
}
