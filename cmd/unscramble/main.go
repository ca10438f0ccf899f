package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"unscramble/internal/failure"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(max(failure.ExitCode(err), 1))
	}
}
