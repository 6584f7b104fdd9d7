package world

import (
	"testing"

	"github.com/livingworld/kernel/internal/learning"
	"github.com/livingworld/kernel/internal/memory"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	w := newTestWorld(t, 5)
	a, _ := w.Spawn("clay", 1, 2, allFeatures, true)
	b, _ := w.Spawn("clay", 3, 4, allFeatures, false)

	a.Emotion.Valence = 0.4
	a.Remember(memory.Memory{Timestamp: 0, Type: memory.TypeObservation, Subject: memory.SubjectWorld, Salience: 0.7})
	a.Links.Connect(b.ID, 0.6, true, 0)
	w.memoryLogs[a.ID].Append(0, memory.Content{Text: "hello"})
	w.trustSystems[a.ID].UpdateTrust(b.ID, 0.2)
	a.PracticeSkill("fishing", 0.4)
	a.LearnPattern(learning.Pattern{Trigger: "loud_noise", Response: "flee", Confidence: 0.5})
	a.SetContext("mood", "curious")

	for i := 0; i < 30; i++ {
		w.Tick(1.0 / 60.0)
	}
	w.spawnField("field.sync_moment", 2, 3, 5000, 200, nil, a.ID, true)

	wf, err := w.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	restored, err := New(w.cfg, testMaterials())
	if err != nil {
		t.Fatalf("New for restore target: %v", err)
	}
	if err := restored.Restore(wf); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if restored.EntityCount() != w.EntityCount() {
		t.Fatalf("EntityCount after restore = %d, want %d", restored.EntityCount(), w.EntityCount())
	}
	if restored.WorldTime() != w.WorldTime() || restored.TickCount() != w.TickCount() {
		t.Fatal("world clock did not survive round-trip")
	}

	ra, ok := restored.Entity(a.ID)
	if !ok {
		t.Fatalf("entity %s missing after restore", a.ID)
	}
	if ra.X != a.X || ra.Y != a.Y {
		t.Fatalf("position did not survive round-trip: got (%f,%f), want (%f,%f)", ra.X, ra.Y, a.X, a.Y)
	}
	if ra.Emotion.Valence != a.Emotion.Valence {
		t.Fatalf("emotion did not survive round-trip: got %f, want %f", ra.Emotion.Valence, a.Emotion.Valence)
	}
	if ra.Memory == nil || ra.Memory.Count() != a.Memory.Count() {
		t.Fatal("memory buffer did not survive round-trip")
	}
	if ra.Links == nil || !ra.Links.IsConnected(b.ID) {
		t.Fatal("cognitive link did not survive round-trip")
	}
	if ra.Skills == nil || ra.Skills.Proficiency("fishing") != a.Skills.Proficiency("fishing") {
		t.Fatal("skill proficiency did not survive round-trip")
	}
	if ra.Learning == nil || ra.Learning.Count() != a.Learning.Count() {
		t.Fatal("learned pattern did not survive round-trip")
	}
	if ra.TriggerContext["mood"] != "curious" {
		t.Fatal("trigger context did not survive round-trip")
	}

	restoredLog := restored.memoryLogs[a.ID]
	if restoredLog == nil || restoredLog.Len() != w.memoryLogs[a.ID].Len() {
		t.Fatal("memory log did not survive round-trip")
	}

	restoredTrust := restored.trustSystems[a.ID]
	if restoredTrust == nil || restoredTrust.TrustOf(b.ID) != w.trustSystems[a.ID].TrustOf(b.ID) {
		t.Fatal("trust table did not survive round-trip")
	}

	if len(restored.fieldOrder) != len(w.fieldOrder) {
		t.Fatalf("field count did not survive round-trip: got %d, want %d", len(restored.fieldOrder), len(w.fieldOrder))
	}
}

func TestRestoreBackfillsMissingAncillaryState(t *testing.T) {
	w := newTestWorld(t, 9)
	w.Spawn("clay", 0, 0, allFeatures, false)

	wf, err := w.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	// Simulate a hand-edited or older-format file missing trust/memory-log
	// sections entirely.
	wf.Trust = nil
	wf.MemoryLogs = nil

	restored, err := New(w.cfg, testMaterials())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := restored.Restore(wf); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	for id := range restored.entities {
		if restored.trustSystems[id] == nil {
			t.Fatalf("entity %s missing backfilled trust system", id)
		}
		if restored.memoryLogs[id] == nil {
			t.Fatalf("entity %s missing backfilled memory log", id)
		}
		if restored.crystals[id] == nil {
			t.Fatalf("entity %s missing backfilled crystallizer", id)
		}
	}
}
