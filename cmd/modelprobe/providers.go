package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/ekisa-team/modelprobe/internal/ort"
)

func providersCmd() *cli.Command {
	return &cli.Command{
		Name:  "providers",
		Usage: "List known execution providers and whether this host supports them",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cpu := ort.HostCPU()
			fmt.Printf("host: %s (%d physical / %d logical cores)\n\n",
				cpu.Brand, cpu.PhysicalCores, cpu.LogicalCores)

			for _, name := range ort.KnownProviders() {
				mark := " "
				if ort.SupportedOnHost(name) {
					mark = "*"
				}
				fmt.Printf("  %s %-28s %s\n", mark, name, ort.HostHint(name))
			}

			fmt.Println("\n* = usable on this operating system")
			return nil
		},
	}
}
