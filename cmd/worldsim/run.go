package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/livingworld/kernel/internal/snapshot"
	"github.com/livingworld/kernel/world"
)

func runCmd() *cobra.Command {
	var (
		configPath string
		seed       int64
		seedSet    bool
		ticks      int
		dt         float64
		entities   int
		arena      float64
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a headless simulation for a fixed number of ticks",
		Long:  "run drives the world kernel for a fixed tick count with no renderer attached, printing a summary and optionally writing a final WorldFile snapshot.",
		RunE: func(cmd *cobra.Command, args []string) error {
			seedSet = cmd.Flags().Changed("seed")
			cfg, err := loadConfig(configPath, seed, seedSet)
			if err != nil {
				return err
			}

			w, err := world.New(cfg, defaultMaterials(), world.WithLogger(newLogger("worldsim")))
			if err != nil {
				return fmt.Errorf("create world: %w", err)
			}
			if err := spawnInitial(w, entities, arena); err != nil {
				return err
			}

			ctx := context.Background()
			start := time.Now()
			for i := 0; i < ticks; i++ {
				// Poll trigger-context providers before each tick, strictly
				// outside Tick itself — worldsim ships no providers by
				// default, but this is the call site any embedder wires
				// real ones into (world.WithContextProviders).
				w.PollContext(ctx, nil)
				w.Tick(dt)
			}
			elapsed := time.Since(start)

			stats := w.Stats()
			fmt.Printf("ran %d ticks (%.3fs world_time) in %s\n", w.TickCount(), w.WorldTime(), elapsed)
			fmt.Printf("entities: %d  mean_valence: %.3f  mean_arousal: %.3f\n", w.EntityCount(), stats.AvgValence, stats.AvgArousal)
			fmt.Printf("events logged: %d\n", len(w.Events()))

			if outPath != "" {
				wf, err := w.Snapshot()
				if err != nil {
					return fmt.Errorf("snapshot world: %w", err)
				}
				if err := snapshot.WriteFile(outPath, wf); err != nil {
					return fmt.Errorf("write snapshot: %w", err)
				}
				fmt.Printf("wrote snapshot to %s\n", outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a WorldConfig YAML file (defaults to config.Default())")
	cmd.Flags().Int64Var(&seed, "seed", 1, "world seed (overrides the config file's seed)")
	cmd.Flags().IntVar(&ticks, "ticks", 600, "number of ticks to run")
	cmd.Flags().Float64Var(&dt, "dt", 1.0/60.0, "seconds of world_time per tick")
	cmd.Flags().IntVar(&entities, "entities", 10, "number of autonomous entities to spawn before running")
	cmd.Flags().Float64Var(&arena, "arena", 400, "side length in pixels of the square spawn arena")
	cmd.Flags().StringVar(&outPath, "out", "", "path to write a final WorldFile snapshot (skipped if empty)")
	return cmd
}
