package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/dr/version"
)

func main() {
	ctx := context.Background()

	appl := &cli.Command{
		Name:      version.Name(),
		Usage:     "Dynamic range meter for audio files",
		Version:   version.Version() + " " + version.Commit(),
		ArgsUsage: "<file | directory | ->",
		Flags:     rootFlags(),
		Action:    runRoot,
	}

	if err := appl.Run(ctx, os.Args); err != nil {
		slog.Error("failed to run", "error", err)
		os.Exit(1)
	}
}
