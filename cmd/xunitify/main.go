package main

import (
	"context"
	"os"
	"os/signal"
)

// main builds the command tree and runs it; any command error exits with status 1.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	root, a := newRootCmd()
	err := root.ExecuteContext(ctx)
	a.close(root)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
