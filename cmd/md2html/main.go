package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-md2html/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches the command in args and returns the process exit code.
// Without a known command, args are handled by convert, so "md2html" alone
// converts report.md to index.html.
func runMain(args []string, env *Environment) int {
	rest := args[1:]
	cmd := "convert"
	if len(rest) > 0 && isCommand(rest[0]) {
		cmd, rest = rest[0], rest[1:]
	}

	switch cmd {
	case "version":
		fmt.Fprintf(env.Stdout, "md2html %s\n", Version)
		return ExitSuccess
	case "help":
		return runHelp(rest, env)
	}

	flags, positional, err := parseConvertFlags(rest, env)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	configureMaxProcs(flags.common.verbose, env)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	err = runConvert(ctx, positional, flags, env)
	if err == nil {
		return ExitSuccess
	}

	// Per-file failures were already reported with their hints.
	var be *batchError
	if errors.As(err, &be) {
		if flags.keepGoing {
			return ExitSuccess
		}
		return exitCodeFor(err)
	}

	fmt.Fprintln(env.Stderr, "error: "+withHint(err))
	return exitCodeFor(err)
}

// isCommand reports whether arg names a subcommand.
func isCommand(arg string) bool {
	switch arg {
	case "convert", "version", "help":
		return true
	}
	return false
}

// looksLikeMarkdown reports whether arg has a Markdown file extension.
func looksLikeMarkdown(arg string) bool {
	return fileutil.IsMarkdown(arg)
}

// configureMaxProcs sizes GOMAXPROCS to the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func configureMaxProcs(verbose bool, env *Environment) {
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
}
