package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/ekisa-team/modelprobe/internal/version"
)

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			info := version.Resolve()
			fmt.Printf("modelprobe %s", info.Version)
			if info.Commit != "" {
				fmt.Printf(" (%s)", info.Commit)
			}
			if info.BuildTime != "" {
				fmt.Printf(" built %s", info.BuildTime)
			}
			fmt.Println()
			return nil
		},
	}
}
