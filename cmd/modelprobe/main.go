// Command modelprobe validates ONNX models by creating inference sessions.
//
// For every configured model it resolves the artifact (local file or
// Hugging Face download), creates an ONNX Runtime inference session with
// the configured execution-provider preference list (CPU by default),
// records the outcome, and closes the session again. No inference is run.
//
// Usage:
//
//	modelprobe probe                       # Probe all configured models once
//	modelprobe probe model.onnx            # Probe a single model file
//	modelprobe watch                       # Keep probing as the config changes
//	modelprobe providers                   # List execution providers
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/ekisa-team/modelprobe/internal/env"
	"github.com/ekisa-team/modelprobe/internal/logger"
)

func main() {
	environment := env.FromEnv()

	slog.SetDefault(
		logger.New(environment,
			logger.WithLogToFile(environment.IsProduction()),
			logger.WithLogFile("logs/modelprobe.log"),
		),
	)

	app := &cli.Command{
		Name:  "modelprobe",
		Usage: "Validate ONNX models by creating inference sessions",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			probeCmd(),
			watchCmd(),
			providersCmd(),
			versionCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
