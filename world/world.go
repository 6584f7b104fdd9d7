// Package world implements the World kernel (spec.md §4.17): the fixed
// 13-phase tick scheduler, entity/field registries, and event log that bind
// every other subsystem together. The scheduling model is single-threaded
// cooperative — Tick never suspends and never performs I/O (spec.md §5).
package world

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/livingworld/kernel/internal/coglink"
	"github.com/livingworld/kernel/internal/config"
	kcontext "github.com/livingworld/kernel/internal/context"
	"github.com/livingworld/kernel/internal/dialogue"
	"github.com/livingworld/kernel/internal/entity"
	"github.com/livingworld/kernel/internal/environment"
	"github.com/livingworld/kernel/internal/field"
	"github.com/livingworld/kernel/internal/material"
	"github.com/livingworld/kernel/internal/memory"
	"github.com/livingworld/kernel/internal/physics"
	"github.com/livingworld/kernel/internal/relationship"
	"github.com/livingworld/kernel/internal/renderer"
	"github.com/livingworld/kernel/internal/rng"
	"github.com/livingworld/kernel/internal/trust"
	"github.com/livingworld/kernel/internal/worldmind"
)

// World is the kernel. It exclusively owns the entity and field
// collections; external observers only ever see copies or read-only views
// between ticks (spec.md §5).
type World struct {
	cfg  config.WorldConfig
	rng  *rng.Root
	seed int64

	worldTime float64
	tickCount int64

	entityOrder []string
	entities    map[string]*entity.Entity

	materials *material.Registry

	fieldOrder []string
	fields     map[string]*field.Field

	env     *environment.Environment
	weather *environment.Weather

	energySystem physics.EnergySystem
	coupler      physics.Coupler
	archetypes   physics.ArchetypeSelector

	decayManager *relationship.DecayManager
	trustSystems map[string]*trust.System
	memoryLogs   map[string]*memory.Log
	crystals     map[string]*memory.Crystallizer

	dialogueBank *dialogue.Bank

	lastStatsUpdate float64
	stats           worldmind.Stats
	patterns        []worldmind.Pattern

	lastInteraction map[string]float64 // pair key -> world_time of the pair's last sync moment

	events []WorldEvent

	adapter renderer.Adapter

	broadcaster    *kcontext.Broadcaster
	lastContext    map[string]any
	triggerContext map[string]any

	logger *log.Logger
}

// Option configures a World at construction time.
type Option func(*World)

// WithAdapter attaches a RendererAdapter; defaults to renderer.Headless{}.
func WithAdapter(a renderer.Adapter) Option {
	return func(w *World) { w.adapter = a }
}

// WithLogger overrides the default stderr logger.
func WithLogger(l *log.Logger) Option {
	return func(w *World) { w.logger = l }
}

// WithContextProviders attaches trigger-context providers. The caller polls
// them via PollContext, strictly outside Tick — Tick itself never blocks on
// external I/O.
func WithContextProviders(providers ...kcontext.Provider) Option {
	return func(w *World) { w.broadcaster = kcontext.NewBroadcaster(w.logger, providers...) }
}

// New creates a World from a config, material registry, and seed, applying
// any options.
func New(cfg config.WorldConfig, materials *material.Registry, opts ...Option) (*World, error) {
	weatherCfg, err := cfg.ResolveWeather()
	if err != nil {
		return nil, fmt.Errorf("resolve weather config: %w", err)
	}

	root := rng.NewRoot(cfg.Seed)
	w := &World{
		cfg:             cfg,
		rng:             root,
		seed:            cfg.Seed,
		entities:        make(map[string]*entity.Entity),
		materials:       materials,
		fields:          make(map[string]*field.Field),
		env:             environment.New(environment.State{Temperature: 293, Humidity: 0.4, Light: 1}),
		weather:         environment.NewWeather(toEnvironmentConfig(weatherCfg), root.Stream("weather")),
		energySystem:    physics.DefaultEnergySystem(),
		coupler:         physics.NewCoupler(physics.ArchetypeNeutral),
		archetypes:      physics.DefaultArchetypeSelector(),
		decayManager:    relationship.NewDecayManager(relationship.CurveLinear, 0.01, 30, 0.05),
		trustSystems:    make(map[string]*trust.System),
		memoryLogs:      make(map[string]*memory.Log),
		crystals:        make(map[string]*memory.Crystallizer),
		dialogueBank:    dialogue.NewBank(),
		lastInteraction: make(map[string]float64),
		triggerContext:  make(map[string]any),
		adapter:         renderer.Headless{},
		logger:          log.New(os.Stderr, "", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := w.adapter.Init(); err != nil {
		return nil, fmt.Errorf("init renderer adapter: %w", err)
	}
	return w, nil
}

// WorldTime returns the current simulation clock.
func (w *World) WorldTime() float64 { return w.worldTime }

// TickCount returns the number of ticks executed so far.
func (w *World) TickCount() int64 { return w.tickCount }

// Seed returns the world seed.
func (w *World) Seed() int64 { return w.seed }

// Spawn creates and registers a new entity, in registry insertion order
// (spec.md §5: "Entities are iterated in registry insertion order ... must
// be stable across save/load").
func (w *World) Spawn(materialID string, x, y float64, features entity.Feature, autonomous bool) (*entity.Entity, error) {
	if _, err := w.materials.RequireMaterial(materialID); err != nil {
		return nil, fmt.Errorf("spawn: %w", err)
	}
	id := rng.NewID()
	e := entity.New(id, materialID, 64, features)
	e.X, e.Y = x, y
	e.Autonomous = autonomous

	w.entities[id] = e
	w.entityOrder = append(w.entityOrder, id)
	w.trustSystems[id] = newTrustSystem()
	w.memoryLogs[id] = memory.NewLog(id)
	w.crystals[id] = newCrystallizer()

	w.emit(WorldEvent{Time: w.worldTime, Type: EventEntitySpawned, EntityID: id, HasEntityID: true})
	w.adapter.Spawn(renderer.EntityView{ID: id, X: x, Y: y, Opacity: e.Opacity})
	return e, nil
}

// Remove deletes an entity from every registry, dropping any dangling
// references to it from surviving entities' relationships/cognitive links
// (spec.md §3 invariant 3, §7 "dangling id reference: dropped on next
// tick's invariant sweep").
func (w *World) Remove(id string) {
	if _, ok := w.entities[id]; !ok {
		return
	}
	delete(w.entities, id)
	delete(w.trustSystems, id)
	delete(w.memoryLogs, id)
	delete(w.crystals, id)
	for i, existing := range w.entityOrder {
		if existing == id {
			w.entityOrder = append(w.entityOrder[:i], w.entityOrder[i+1:]...)
			break
		}
	}
	for _, other := range w.entities {
		delete(other.Relationships, id)
		if other.Links != nil {
			other.Links.Remove(id)
		}
	}
	w.emit(WorldEvent{Time: w.worldTime, Type: EventEntityRemoved, EntityID: id, HasEntityID: true})
	w.adapter.Destroy(id)
}

// Entity looks up an entity by id.
func (w *World) Entity(id string) (*entity.Entity, bool) {
	e, ok := w.entities[id]
	return e, ok
}

// EntityIDs returns every entity id in registry insertion order.
func (w *World) EntityIDs() []string {
	out := make([]string, len(w.entityOrder))
	copy(out, w.entityOrder)
	return out
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int { return len(w.entityOrder) }

// Materials returns the world's material registry.
func (w *World) Materials() *material.Registry { return w.materials }

// Stats returns the most recently computed WorldMind statistics.
func (w *World) Stats() worldmind.Stats { return w.stats }

// Patterns returns the most recently detected WorldMind patterns.
func (w *World) Patterns() []worldmind.Pattern {
	out := make([]worldmind.Pattern, len(w.patterns))
	copy(out, w.patterns)
	return out
}

// PollContext queries every registered trigger-context provider and caches
// the merged result for LastContext. Callers invoke this between ticks,
// never from inside Tick, since provider I/O may block (spec.md §5).
func (w *World) PollContext(ctx context.Context, args map[string]any) map[string]any {
	if w.broadcaster == nil {
		return nil
	}
	w.lastContext = w.broadcaster.Poll(ctx, args)
	return w.lastContext
}

// LastContext returns the most recent result of PollContext, or nil if it
// has never been called.
func (w *World) LastContext() map[string]any { return w.lastContext }

// TriggerContext returns the world-level trigger_context last merged by
// Tick (spec.md §3, §4.17 step 2).
func (w *World) TriggerContext() map[string]any { return w.triggerContext }

// EntityContext returns id's merged trigger_context: the world-level
// broadcast with that entity's own local overrides layered on top,
// computed lazily rather than cached (spec.md §3).
func (w *World) EntityContext(id string) map[string]any {
	e, ok := w.entities[id]
	if !ok {
		return nil
	}
	return e.Context(w.triggerContext)
}

// drainContext merges whatever PollContext last cached into the world-level
// trigger_context. This never itself blocks or polls — polling is the
// caller's responsibility, strictly outside Tick (spec.md §4.18, §5); this
// step only makes already-polled data visible to entities on schedule.
func (w *World) drainContext() {
	for k, v := range w.lastContext {
		w.triggerContext[k] = v
	}
}

// Events returns a copy of the event log.
func (w *World) Events() []WorldEvent {
	out := make([]WorldEvent, len(w.events))
	copy(out, w.events)
	return out
}

// LinkTable implements coglink.Registry, letting cognitive-link operations
// resolve an entity id to its link table without entities holding pointers
// to one another (spec.md §9).
func (w *World) LinkTable(entityID string) (*coglink.Table, bool) {
	e, ok := w.entities[entityID]
	if !ok || e.Links == nil {
		return nil, false
	}
	return e.Links, true
}

// newTrustSystem builds a per-entity trust table with the documented
// default threshold/baseline and category policies: emotion shares freely,
// memory and intent are trust-gated (spec.md §4.13).
func newTrustSystem() *trust.System {
	s := trust.NewSystem(0.6, 0.3)
	s.SetPolicy(trust.CategoryMemory, trust.TrustGated)
	s.SetPolicy(trust.CategoryEmotion, trust.Public)
	s.SetPolicy(trust.CategoryIntent, trust.TrustGated)
	return s
}

// newCrystallizer builds a memory crystallizer with the documented default
// consolidation thresholds.
func newCrystallizer() *memory.Crystallizer {
	return memory.NewCrystallizer(3, 1.5, 50)
}

// Speak produces a dialogue line for an entity via the full fallback chain:
// the entity's material's dialogue table, the built-in bank, mood fallback,
// then "...".
func (w *World) Speak(id, category, lang string) (string, bool) {
	e, ok := w.entities[id]
	if !ok {
		return "", false
	}
	mat, err := w.materials.RequireMaterial(e.MaterialID)
	if err != nil {
		return "", false
	}
	stream := w.rng.Stream("dialogue:" + id)
	return e.Speak(mat.Dialogue, w.dialogueBank, category, lang, stream), true
}

// pairKey returns a stable, order-independent key for an unordered pair,
// used for interaction-cadence bookkeeping (spec.md §4.17 step 7 iterates
// i<j in registry order; the key must not depend on which came first).
func pairKey(a, b string) string {
	if a < b {
		return a + "\x00" + b
	}
	return b + "\x00" + a
}

// toEnvironmentConfig adapts the file-format WeatherConfig to the runtime
// environment.Config; kept here rather than in internal/config, which
// intentionally owns only the file shape (internal/config/config.go).
func toEnvironmentConfig(c config.WeatherConfig) environment.Config {
	return environment.Config{
		RainChance:       c.RainChance,
		MaxRainIntensity: c.MaxRainIntensity,
		MaxCloudCover:    c.MaxCloudCover,
		BaseWindStrength: c.BaseWindStrength,
		WindVariance:     c.WindVariance,
		EvaporationRate:  c.EvaporationRate,
		TransitionSpeed:  c.TransitionSpeed,
	}
}
