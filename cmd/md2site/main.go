package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(maxprocsLogger(hasVerboseFlag(os.Args[1:]), os.Stderr)))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// maxprocsLogger returns a logger that writes to w in verbose mode and
// discards otherwise.
func maxprocsLogger(verbose bool, w io.Writer) func(string, ...interface{}) {
	if !verbose {
		return func(string, ...interface{}) {}
	}
	return func(format string, args ...interface{}) {
		fmt.Fprintf(w, format+"\n", args...)
	}
}

// hasVerboseFlag reports whether -v or --verbose appears before "--".
// GOMAXPROCS is set before flags are parsed, so this is a plain scan.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		switch a {
		case "--":
			return false
		case "-v", "--verbose", "--verbose=true":
			return true
		}
	}
	return false
}

// commands lists the subcommand names recognized as the first argument.
var commands = map[string]bool{
	"build":   true,
	"config":  true,
	"version": true,
	"help":    true,
}

// isCommand reports whether arg names a subcommand.
func isCommand(arg string) bool {
	return commands[arg]
}

// splitCommand returns the command and its arguments. Without an explicit
// command, every argument goes to build.
func splitCommand(args []string) (string, []string) {
	if len(args) > 0 && isCommand(args[0]) {
		return args[0], args[1:]
	}
	return "build", args
}

// runMain dispatches args (including the program name) and returns the
// process exit code.
func runMain(args []string, env *Environment) int {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	if len(args) > 0 {
		args = args[1:]
	}
	cmd, rest := splitCommand(args)

	var err error
	switch cmd {
	case "version":
		fmt.Fprintf(env.Stdout, "md2site %s\n", Version)
	case "help":
		runHelp(rest, env)
	case "config":
		err = runConfig(rest, env)
	default:
		err = runBuild(ctx, rest, env)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
	}
	return exitCodeFor(err)
}
