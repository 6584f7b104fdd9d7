package main

import (
	"fmt"
	"log"
	"os"

	"github.com/livingworld/kernel/internal/config"
	"github.com/livingworld/kernel/internal/material"
	"github.com/livingworld/kernel/internal/rng"
	"github.com/livingworld/kernel/world"
)

// defaultMaterials returns a bootstrap registry with a single generic
// material. Real material definitions are parsed from `.mdm` files
// elsewhere in the pipeline (internal/material only holds the parsed
// shape); worldsim ships this one so `run`/`serve` work standalone.
func defaultMaterials() *material.Registry {
	reg := material.NewRegistry()
	reg.RegisterMaterial(material.Material{
		ID: "generic",
		Physics: material.PhysicsProfile{
			Mass: 1, Friction: 0.02, Bounce: 0.3, DecayRate: 0.01,
			Conductivity: 0.1, Density: 1, HasPhysics: true,
		},
		Dialogue: material.NewDialogueTable(),
		Language: material.LanguageProfile{Native: "en", HasLanguage: true},
	})
	return reg
}

// loadConfig resolves the effective WorldConfig: the named file if given,
// otherwise config.Default(), with an explicit --seed flag taking final
// precedence over either.
func loadConfig(path string, seed int64, seedSet bool) (config.WorldConfig, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.WorldConfig{}, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if seedSet {
		cfg.Seed = seed
	}
	return cfg, nil
}

// newLogger builds the stderr logger every subcommand hands its World.
func newLogger(prefix string) *log.Logger {
	return log.New(os.Stderr, prefix+": ", log.LstdFlags)
}

// spawnInitial scatters n autonomous entities across a square arena
// centered on the origin, using the world's own seeded stream so the
// layout is reproducible for a given seed.
func spawnInitial(w *world.World, n int, arenaSize float64) error {
	stream := rng.NewRoot(w.Seed()).Stream("worldsim-init")
	for i := 0; i < n; i++ {
		x := stream.Range(-arenaSize/2, arenaSize/2)
		y := stream.Range(-arenaSize/2, arenaSize/2)
		if _, err := w.Spawn("generic", x, y, 0xFF, true); err != nil {
			return fmt.Errorf("spawn entity %d: %w", i, err)
		}
	}
	return nil
}
