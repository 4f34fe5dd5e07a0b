package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

// Exit codes follow the sysexits.h convention: a compile-time failure
// (lexing or parsing) is distinguished from a runtime failure so callers
// can tell the two apart without parsing stderr.
const (
	exitCompileError subcommands.ExitStatus = 65 // EX_DATAERR
	exitRuntimeError subcommands.ExitStatus = 70 // EX_SOFTWARE
)

func main() {
	run := &runCmd{}
	runCompiled := &runCompiledCmd{}
	repl := &replCmd{}
	replCompiled := &replCompiledCmd{}
	emit := &emitBytecodeCmd{}

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(run, "")
	subcommands.Register(runCompiled, "")
	subcommands.Register(repl, "")
	subcommands.Register(replCompiled, "")
	subcommands.Register(emit, "")

	flag.Parse()

	// "lox <path>" with no recognized subcommand name runs <path> directly
	// on the bytecode VM, the primary execution path, per spec §6.
	knownCommands := map[string]bool{
		"help": true, "flags": true, "commands": true,
		run.Name(): true, runCompiled.Name(): true,
		repl.Name(): true, replCompiled.Name(): true, emit.Name(): true,
	}
	if flag.NArg() >= 1 && !knownCommands[flag.Arg(0)] {
		os.Exit(int(runPath(flag.Arg(0))))
	}

	os.Exit(int(subcommands.Execute(context.Background())))
}
