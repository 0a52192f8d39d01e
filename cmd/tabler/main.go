package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"

	"tableflip.dev/tabler/pkg/commands"
	"tableflip.dev/tabler/pkg/commands/options"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := commands.New().ExecuteContext(ctx)
	var reported *options.ReportedError
	switch {
	case errors.As(err, &reported):
		stop()
		os.Exit(1)
	case err != nil:
		log.Fatalf("error during command execution: %v", err)
	}
}
