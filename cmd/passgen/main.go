package main

import (
	"context"
	"fmt"
	"os"

	"github.com/doeshing/passgen-go/internal/infrastructure/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx := context.Background()
	opts := cli.Options{Verbose: hasVerboseFlag(os.Args[1:])}

	root, closeFn, err := cli.NewRootCmd(ctx, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	defer closeFn()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

// hasVerboseFlag scans for -v/--verbose before cobra parses flags, since the
// logger is built together with the container.
func hasVerboseFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if arg == "-v" || arg == "--verbose" || arg == "--verbose=true" {
			return true
		}
	}
	return false
}
