package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/fr0stylo/ghevents/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		slog.Error("ghevents exited", "error", err)
		os.Exit(1)
	}
}
