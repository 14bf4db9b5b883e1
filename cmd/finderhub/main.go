package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"finderhub/internal/budget"
)

func main() {
	err := newRootCommand().Execute()
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		os.Exit(130)
	}
	if errors.Is(err, budget.ErrLedgerLocked) {
		fmt.Fprintln(os.Stderr, "finderhub: another run holds the spend ledger; wait for it to finish or disable budget.locking")
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, "finderhub:", err)
	os.Exit(1)
}
