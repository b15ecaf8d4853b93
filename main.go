package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/atboard/board-service/internal/cmd/migrate"
	"github.com/atboard/board-service/internal/cmd/serve"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:  "board-service",
		Usage: "Persistence layer for the discussion board",
		Commands: []*cli.Command{
			serve.Command(),
			migrate.Command(),
		},
	}
	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
