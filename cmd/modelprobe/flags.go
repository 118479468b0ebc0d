package main

import (
	"path"

	"github.com/urfave/cli/v3"

	"github.com/ekisa-team/modelprobe/internal/config"
)

// Flag destinations shared by the commands.
var (
	flagConfigPath  string
	flagSchemaPath  string
	flagLibraryPath string
)

// commonConfigFlags returns flags every config-driven command takes.
func commonConfigFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config file",
			Value:       path.Join(config.DefaultConfigPath(), "config.yaml"),
			Destination: &flagConfigPath,
		},
		&cli.StringFlag{
			Name:        "schema",
			Usage:       "path to config schema file (default: embedded schema)",
			Destination: &flagSchemaPath,
		},
		&cli.StringFlag{
			Name:        "library",
			Usage:       "path to the ONNX Runtime shared library",
			Destination: &flagLibraryPath,
		},
	}
}
