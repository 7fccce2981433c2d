package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"shootdesk/internal/services"
)

func main() {
	cmd := newRootCommand()
	err := cmd.Execute()
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		os.Exit(1)
	}
	// Operator mistakes (bad input, missing session, busy lock) get a plain
	// message; anything else is a pipeline or environment fault.
	if services.IsOperatorError(err) {
		fmt.Fprintf(os.Stderr, "shootdesk: %v\n", err)
		os.Exit(2)
	}
	fmt.Fprintf(os.Stderr, "shootdesk: unexpected failure: %v\n", err)
	os.Exit(1)
}
