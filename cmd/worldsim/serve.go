package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/livingworld/kernel/internal/renderer"
	"github.com/livingworld/kernel/world"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		seed       int64
		addr       string
		dt         float64
		entities   int
		arena      float64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Drive a simulation in real time and serve its status over HTTP",
		Long:  "serve ticks the world on a wall-clock timer and exposes /status, /entities and /fields over HTTP until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, seed, cmd.Flags().Changed("seed"))
			if err != nil {
				return err
			}

			adapter := renderer.NewHTTPStatusAdapter()
			w, err := world.New(cfg, defaultMaterials(), world.WithAdapter(adapter), world.WithLogger(newLogger("worldsim")))
			if err != nil {
				return fmt.Errorf("create world: %w", err)
			}
			if err := spawnInitial(w, entities, arena); err != nil {
				return err
			}

			serveErr := make(chan error, 1)
			go func() {
				serveErr <- adapter.Run(addr)
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
			defer ticker.Stop()

			ctx := context.Background()
			fmt.Printf("serving world status on %s (seed=%d, tick_dt=%.4fs)\n", addr, w.Seed(), dt)
			for {
				select {
				case <-ticker.C:
					w.PollContext(ctx, nil)
					w.Tick(dt)
				case err := <-serveErr:
					return fmt.Errorf("http server: %w", err)
				case sig := <-sigCh:
					fmt.Printf("received %v, stopping after %d ticks\n", sig, w.TickCount())
					return nil
				}
			}
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a WorldConfig YAML file (defaults to config.Default())")
	cmd.Flags().Int64Var(&seed, "seed", 1, "world seed (overrides the config file's seed)")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "HTTP listen address")
	cmd.Flags().Float64Var(&dt, "dt", 1.0/60.0, "seconds of world_time advanced per tick")
	cmd.Flags().IntVar(&entities, "entities", 10, "number of autonomous entities to spawn before serving")
	cmd.Flags().Float64Var(&arena, "arena", 400, "side length in pixels of the square spawn arena")
	return cmd
}
