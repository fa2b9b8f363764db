package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"

	"github.com/ardnew/runr/cli"
	"github.com/ardnew/runr/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		// A task that ran but failed already wrote its own output.
		// Propagate its exit code without additional noise.
		var exit *exec.ExitError
		if errors.As(err, &exit) && exit.ExitCode() > 0 {
			os.Exit(exit.ExitCode())
		}

		log.Error(
			"run failed",
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
