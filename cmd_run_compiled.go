package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/subcommands"

	"github.com/h4ckm310n/lox/compiler"
	"github.com/h4ckm310n/lox/vm"
)

// runCompiledCmd executes a source file by compiling it to bytecode and
// running it on the stack-based VM — the primary execution path.
type runCompiledCmd struct{}

func (*runCompiledCmd) Name() string { return "runc" }
func (*runCompiledCmd) Synopsis() string {
	return "Compile and execute a Lox source file with the bytecode VM"
}
func (*runCompiledCmd) Usage() string {
	return `runc <path>:
  Compile Lox code to bytecode and execute it on the VM. <path> may be a
  single file or a directory, in which case every ".lox" file it contains
  is run in turn.
`
}
func (r *runCompiledCmd) SetFlags(f *flag.FlagSet) {}

func (r *runCompiledCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "error: no path provided")
		return subcommands.ExitUsageError
	}
	return runPath(args[0])
}

// runPath compiles and executes source at path on the bytecode VM. If path
// is a directory, every ".lox" file it contains is run in turn, in
// lexical order, each against a fresh VM; a file that fails does not stop
// the files after it, and the first failing file's exit status is returned.
func runPath(path string) subcommands.ExitStatus {
	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to read path: %v\n", err)
		return subcommands.ExitFailure
	}

	if !info.IsDir() {
		return runFile(path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to read directory: %v\n", err)
		return subcommands.ExitFailure
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lox" {
			continue
		}
		files = append(files, filepath.Join(path, entry.Name()))
	}
	sort.Strings(files)

	result := subcommands.ExitSuccess
	for _, file := range files {
		if status := runFile(file); status != subcommands.ExitSuccess && result == subcommands.ExitSuccess {
			result = status
		}
	}
	return result
}

func runFile(file string) subcommands.ExitStatus {
	data, err := os.ReadFile(file)
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

	machine := vm.New()
	if err := machine.Interpret(fn); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitRuntimeError
	}
	return subcommands.ExitSuccess
}
