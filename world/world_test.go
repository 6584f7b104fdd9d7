package world

import (
	"testing"

	"github.com/livingworld/kernel/internal/config"
	"github.com/livingworld/kernel/internal/entity"
	"github.com/livingworld/kernel/internal/material"
	"github.com/livingworld/kernel/internal/relationship"
)

func testMaterials() *material.Registry {
	reg := material.NewRegistry()
	reg.RegisterMaterial(material.Material{ID: "clay"})
	return reg
}

func newTestWorld(t *testing.T, seed int64) *World {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = seed
	w, err := New(cfg, testMaterials())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w
}

const allFeatures = entity.FeatureMemory | entity.FeatureLearning | entity.FeatureRelationships |
	entity.FeatureSkills | entity.FeatureConsolidation | entity.FeatureEmotion | entity.FeatureIntent |
	entity.FeatureCognitiveLinks

func TestSpawnRejectsUnknownMaterial(t *testing.T) {
	w := newTestWorld(t, 1)
	if _, err := w.Spawn("unobtainium", 0, 0, allFeatures, false); err == nil {
		t.Fatal("expected error spawning with unknown material id")
	}
}

func TestSpawnRegistersEntity(t *testing.T) {
	w := newTestWorld(t, 1)
	e, err := w.Spawn("clay", 10, 20, allFeatures, false)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if w.EntityCount() != 1 {
		t.Fatalf("EntityCount = %d, want 1", w.EntityCount())
	}
	got, ok := w.Entity(e.ID)
	if !ok || got != e {
		t.Fatalf("Entity(%s) = %v, %v; want the spawned entity", e.ID, got, ok)
	}
	ids := w.EntityIDs()
	if len(ids) != 1 || ids[0] != e.ID {
		t.Fatalf("EntityIDs = %v, want [%s]", ids, e.ID)
	}
	events := w.Events()
	if len(events) != 1 || events[0].Type != EventEntitySpawned || events[0].EntityID != e.ID {
		t.Fatalf("Events = %+v, want a single entity_spawned event for %s", events, e.ID)
	}
}

func TestRemoveDropsRegistryAndDanglingReferences(t *testing.T) {
	w := newTestWorld(t, 1)
	a, _ := w.Spawn("clay", 0, 0, allFeatures, false)
	b, _ := w.Spawn("clay", 1, 1, allFeatures, false)

	a.Relationships[b.ID] = relationship.Create()

	w.Remove(b.ID)

	if w.EntityCount() != 1 {
		t.Fatalf("EntityCount after Remove = %d, want 1", w.EntityCount())
	}
	if _, ok := w.Entity(b.ID); ok {
		t.Fatal("removed entity still resolvable")
	}
	if _, ok := a.Relationships[b.ID]; ok {
		t.Fatal("dangling relationship to removed entity was not dropped")
	}

	events := w.Events()
	last := events[len(events)-1]
	if last.Type != EventEntityRemoved || last.EntityID != b.ID {
		t.Fatalf("last event = %+v, want entity_removed for %s", last, b.ID)
	}
}

func TestPairKeyIsOrderIndependent(t *testing.T) {
	if pairKey("a", "b") != pairKey("b", "a") {
		t.Fatal("pairKey must not depend on argument order")
	}
	if pairKey("a", "a") != pairKey("a", "a") {
		t.Fatal("pairKey must be deterministic for identical ids")
	}
}
