package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"github.com/h4ckm310n/lox/compiler"
	"github.com/h4ckm310n/lox/vm"
)

// replCompiledCmd starts an interactive session backed by the bytecode
// compiler and VM, each line compiled and run as its own program sharing
// one VM instance (so globals persist across lines).
type replCompiledCmd struct {
	disassemble bool
}

func (*replCompiledCmd) Name() string { return "replc" }
func (*replCompiledCmd) Synopsis() string {
	return "Start a bytecode VM REPL session"
}
func (*replCompiledCmd) Usage() string {
	return `replc [-disassemble]:
  Start an interactive bytecode compiler/VM session.
`
}

func (cmd *replCompiledCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.disassemble, "disassemble", false, "print the disassembly of each compiled line before running it")
}

func (cmd *replCompiledCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Println("Lox bytecode REPL. Type 'exit' to quit.")
	if err := compiledRepl(cmd.disassemble); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func compiledRepl(disassemble bool) error {
	rl, err := readline.New("loxc> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	machine := vm.New()

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

		fn, compileErrs := compiler.Compile(line)
		if len(compileErrs) > 0 {
			for _, compileErr := range compileErrs {
				fmt.Println(compileErr)
			}
			continue
		}

		if disassemble {
			fmt.Print(compiler.Disassemble(fn))
		}

		if err := machine.Interpret(fn); err != nil {
			fmt.Println(err)
		}
	}
}
