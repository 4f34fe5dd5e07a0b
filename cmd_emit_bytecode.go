package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/h4ckm310n/lox/compiler"
)

// emitBytecodeCmd compiles a source file and writes its disassembly to disk
// (or stdout) instead of running it, for inspecting the compiler's output.
type emitBytecodeCmd struct {
	out string
}

func (*emitBytecodeCmd) Name() string { return "emit" }
func (*emitBytecodeCmd) Synopsis() string {
	return "Emit the disassembled bytecode for a source file"
}
func (*emitBytecodeCmd) Usage() string {
	return `emit [-out <path>] <file>:
  Compile a Lox source file and print its disassembly. With -out, write the
  disassembly to the given path instead of stdout, appending ".dis" to the
  path if it does not already end in it.
`
}

func (cmd *emitBytecodeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.out, "out", "", "write the disassembly to this path (\".dis\" appended if missing) instead of stdout")
}

func (cmd *emitBytecodeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	fn, compileErrs := compiler.Compile(string(data))
	if len(compileErrs) > 0 {
		for _, compileErr := range compileErrs {
			fmt.Fprintln(os.Stderr, compileErr)
		}
		return exitCompileError
	}

	disassembly := compiler.Disassemble(fn)

	if cmd.out == "" {
		fmt.Print(disassembly)
		return subcommands.ExitSuccess
	}

	outPath := cmd.out
	if !strings.HasSuffix(outPath, ".dis") {
		outPath += ".dis"
	}
	if err := os.WriteFile(outPath, []byte(disassembly), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to write disassembly: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
