package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"github.com/h4ckm310n/lox/interpreter"
	"github.com/h4ckm310n/lox/lexer"
	"github.com/h4ckm310n/lox/parser"
)

// replCmd starts an interactive session backed by the tree-walking interpreter.
type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start a tree-walking interpreter REPL session" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive tree-walking interpreter session.
`
}
func (r *replCmd) SetFlags(f *flag.FlagSet) {}

func (r *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Println("Lox tree-walking REPL. Type 'exit' to quit.")
	if err := treeWalkRepl(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func treeWalkRepl() error {
	rl, err := readline.New("lox> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	interp := interpreter.Make()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		lex := lexer.New(line)
		tokens, err := lex.Scan()
		if err != nil {
			fmt.Println(err)
			continue
		}

		p := parser.Make(tokens)
		statements, parseErrs := p.Parse()
		if len(parseErrs) > 0 {
			for _, parseErr := range parseErrs {
				fmt.Println(parseErr)
			}
			continue
		}

		if err := interp.Interpret(statements); err != nil {
			fmt.Println(err)
		}
	}
}
