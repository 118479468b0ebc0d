package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/ekisa-team/modelprobe/internal/config"
	"github.com/ekisa-team/modelprobe/internal/metrics"
	"github.com/ekisa-team/modelprobe/internal/model"
	"github.com/ekisa-team/modelprobe/internal/ort"
	"github.com/ekisa-team/modelprobe/internal/probe"
)

func probeCmd() *cli.Command {
	var (
		format    string
		providers []string
		models    []string
	)

	return &cli.Command{
		Name:      "probe",
		Usage:     "Create a session for each model once and report the outcome",
		ArgsUsage: "[model.onnx ...]",
		Flags: append(commonConfigFlags(),
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format: text or json",
				Value:       "text",
				Destination: &format,
			},
			&cli.StringSliceFlag{
				Name:        "provider",
				Usage:       "execution provider preference for bare model paths (repeatable)",
				Destination: &providers,
			},
			&cli.StringSliceFlag{
				Name:        "model",
				Usage:       "probe only the named configured models (repeatable)",
				Destination: &models,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if format != "text" && format != "json" {
				return cli.Exit(fmt.Sprintf("error: unknown format %q", format), 2)
			}

			rt := ort.NewRuntime(flagLibraryPath)
			defer rt.Close()

			prober := probe.New(rt)

			var instances []*model.Instance
			if args := cmd.Args().Slice(); len(args) > 0 {
				adhoc, err := adhocInstances(args, providers)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: %v", err), 2)
				}
				instances = adhoc
			} else {
				cfg, err := config.LoadAndValidate(flagConfigPath, flagSchemaPath)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: %v", err), 2)
				}
				manager := model.NewManager()
				if err := manager.LoadModelsFromConfig(ctx, cfg); err != nil {
					return cli.Exit(fmt.Sprintf("error: %v", err), 1)
				}
				if len(models) > 0 {
					for _, id := range models {
						inst, err := manager.Model(id)
						if err != nil {
							return cli.Exit(fmt.Sprintf("error: %v", err), 2)
						}
						instances = append(instances, inst)
					}
				} else {
					instances = manager.Registry().List()
				}
			}

			metrics.SetConfiguredModels(len(instances))

			reports := make([]*probe.Report, 0, len(instances))
			failed := 0
			for _, inst := range instances {
				report := prober.Probe(ctx, inst)
				if !report.OK() {
					failed++
				}
				reports = append(reports, report)
			}

			if err := renderReports(os.Stdout, reports, format); err != nil {
				return err
			}

			if failed > 0 {
				return cli.Exit(fmt.Sprintf("%d of %d model(s) failed", failed, len(reports)), 1)
			}
			return nil
		},
	}
}

// adhocInstances builds model instances for bare model file paths,
// mirroring a one-off "load this model with these providers" invocation.
func adhocInstances(paths, providerNames []string) ([]*model.Instance, error) {
	if len(providerNames) == 0 {
		providerNames = []string{ort.CPUExecutionProvider}
	}

	providerConfigs := make([]config.ProviderConfig, 0, len(providerNames))
	for _, name := range providerNames {
		if !ort.Known(name) {
			return nil, fmt.Errorf("unknown execution provider %q (known: %s)",
				name, strings.Join(ort.KnownProviders(), ", "))
		}
		providerConfigs = append(providerConfigs, config.ProviderConfig{Name: name})
	}

	instances := make([]*model.Instance, 0, len(paths))
	for _, p := range paths {
		cfg := &config.ModelConfig{Providers: providerConfigs}
		cfg.SetLocalSource(config.LocalSource{Path: p})

		inst := model.NewInstance(cfg, filepath.Base(p), p, p)
		inst.SetStatus(model.StatusResolved)
		instances = append(instances, inst)
	}

	return instances, nil
}

func renderReports(w *os.File, reports []*probe.Report, format string) error {
	if format == "json" {
		data, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to render reports: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(w)
		}
		r.Render(w)
	}
	return nil
}
