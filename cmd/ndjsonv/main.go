package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
)

// Exit codes.
const (
	exitOK      = 0
	exitInvalid = 1 // at least one invalid line or skipped file
	exitFailure = 2 // configuration or I/O failure
)

// errInvalid is returned after the report has been printed so main can pick
// the exit code without printing anything else.
var errInvalid = errors.New("invalid lines found")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errInvalid):
		return exitInvalid
	default:
		fmt.Fprintln(stderr, "Error:", err)
		return exitFailure
	}
}
