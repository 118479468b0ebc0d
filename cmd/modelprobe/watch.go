package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/ekisa-team/modelprobe/internal/config"
	"github.com/ekisa-team/modelprobe/internal/envvar"
	"github.com/ekisa-team/modelprobe/internal/metrics"
	"github.com/ekisa-team/modelprobe/internal/model"
	"github.com/ekisa-team/modelprobe/internal/ort"
	"github.com/ekisa-team/modelprobe/internal/probe"
	serverhttp "github.com/ekisa-team/modelprobe/internal/server/http"
)

func watchCmd() *cli.Command {
	var listenAddr string

	return &cli.Command{
		Name:  "watch",
		Usage: "Probe models continuously, reloading when the config file changes",
		Flags: append(commonConfigFlags(),
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "address for the status server (empty disables it)",
				Destination: &listenAddr,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rt := ort.NewRuntime(flagLibraryPath)
			defer rt.Close()

			manager := model.NewManager()
			status := serverhttp.NewStatusServer()

			initial, err := config.LoadAndValidate(flagConfigPath, flagSchemaPath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 2)
			}

			ttl, err := initial.Probe.CacheTTLDuration()
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 2)
			}

			var prober *probe.Prober
			if ttl > 0 {
				cache := probe.NewCache(ttl)
				defer cache.Stop()
				prober = probe.New(rt, probe.WithCache(cache))
			} else {
				prober = probe.New(rt)
			}

			runProbes := func(ctx context.Context, cfg *config.Config) {
				if err := manager.LoadModelsFromConfig(ctx, cfg); err != nil {
					slog.Error("Failed to load models", "error", err)
				}

				instances := manager.Registry().List()
				metrics.SetConfiguredModels(len(instances))

				for _, inst := range instances {
					if ctx.Err() != nil {
						return
					}
					report := prober.Probe(ctx, inst)
					status.Update(report)
					fmt.Println(report.Summary())
				}
			}

			watcher, err := config.NewWatcher(flagConfigPath, flagSchemaPath, func(cfg *config.Config, err error) {
				if err != nil {
					slog.Error("Config reload failed, keeping previous models", "error", err)
					return
				}
				slog.Info("Config reloaded, re-probing models")
				runProbes(ctx, cfg)
			})
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 2)
			}
			defer watcher.Close()

			cfg := watcher.Snapshot()

			if addr := resolveListenAddr(listenAddr, cfg); addr != "" {
				go func() {
					if err := status.Start(ctx, addr); err != nil {
						slog.Error("Status server stopped", "error", err)
					}
				}()
			}

			runProbes(ctx, cfg)

			interval, err := cfg.Probe.IntervalDuration()
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 2)
			}

			var tick <-chan time.Time
			if interval > 0 {
				ticker := time.NewTicker(interval)
				defer ticker.Stop()
				tick = ticker.C
			}

			slog.Info("Watching for config changes", "path", flagConfigPath)
			for {
				select {
				case <-ctx.Done():
					slog.Info("Shutting down")
					return nil
				case <-tick:
					runProbes(ctx, watcher.Snapshot())
				}
			}
		},
	}
}

// resolveListenAddr picks the status server address, preferring the flag,
// then the environment, then the config file.
func resolveListenAddr(flagAddr string, cfg *config.Config) string {
	if flagAddr != "" {
		return flagAddr
	}
	if addr := os.Getenv(envvar.ModelprobeListenAddr); addr != "" {
		return addr
	}
	return cfg.Server.Addr
}
