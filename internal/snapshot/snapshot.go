// Package snapshot implements the WorldFile persistence format (spec.md §6):
// an opaque, versioned JSON document satisfying restore(snapshot(W)) ≡ W
// modulo registry re-supply. Encode/decode and atomic file I/O are grounded
// on the teacher's core/persistence state manager (temp-file-then-rename
// writes, wrapped errors, version-stamped documents).
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// CurrentVersion is the WorldFile schema version this package writes. Older
// versions may still be read if Decode is ever extended with migration
// logic; for now a mismatched version is accepted as-is (fields are additive
// so far).
const CurrentVersion = 1

// EntitySnapshot is the serialized shape of one entity (spec.md §6).
// Optional sections are nil when the corresponding feature was disabled on
// that entity, so the document only carries what was actually in use.
type EntitySnapshot struct {
	ID              string             `json:"id"`
	MaterialID      string             `json:"material_id"`
	X               float64            `json:"x"`
	Y               float64            `json:"y"`
	VX              float64            `json:"vx"`
	VY              float64            `json:"vy"`
	Age             float64            `json:"age"`
	Opacity         float64            `json:"opacity"`
	Entropy         float64            `json:"entropy"`
	Energy          float64            `json:"energy"`
	Features        uint16             `json:"features"`
	Emotion         json.RawMessage    `json:"emotion,omitempty"`
	Intent          json.RawMessage    `json:"intent,omitempty"`
	Memory          json.RawMessage    `json:"memory,omitempty"`
	Relationships   json.RawMessage    `json:"relationships,omitempty"`
	CognitiveLinks  json.RawMessage    `json:"cognitive_links,omitempty"`
	Skills          json.RawMessage    `json:"skills,omitempty"`
	Learning        json.RawMessage    `json:"learning,omitempty"`
	TriggerContext  json.RawMessage    `json:"trigger_context,omitempty"`
	Temperature     *float64           `json:"temperature,omitempty"`
	Humidity        *float64           `json:"humidity,omitempty"`
	LanguageWeights map[string]float64 `json:"language_weights,omitempty"`
	NativeLanguage  string             `json:"native_language,omitempty"`
}

// FieldSnapshot is the serialized shape of one active field (spec.md §6).
type FieldSnapshot struct {
	ID               string             `json:"id"`
	SpecID           string             `json:"spec_id"`
	X                float64            `json:"x"`
	Y                float64            `json:"y"`
	ElapsedMs        float64            `json:"elapsed_ms"`
	DurationMs       float64            `json:"duration_ms"`
	RadiusPx         float64            `json:"radius_px"`
	Expired          bool               `json:"expired"`
	Effects          map[string]float64 `json:"effects,omitempty"`
	SourceEntityID   string             `json:"source_entity_id,omitempty"`
	HasSource        bool               `json:"has_source,omitempty"`
}

// EventSnapshot is one entry of the optional persisted event log.
type EventSnapshot struct {
	Type      string          `json:"type"`
	WorldTime float64         `json:"world_time"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// TrustSnapshot is one entry of an entity's persisted trust table.
type TrustSnapshot struct {
	EntityID string             `json:"entity_id"`
	Trust    map[string]float64 `json:"trust"`
}

// MemoryLogSnapshot is one entity's persisted CRDT memory log.
type MemoryLogSnapshot struct {
	EntityID string          `json:"entity_id"`
	Records  json.RawMessage `json:"records"`
}

// WorldFile is the opaque top-level persisted document (spec.md §6).
type WorldFile struct {
	Version    int                 `json:"version"`
	Seed       int64               `json:"seed"`
	WorldTime  float64             `json:"world_time"`
	TickCount  int64               `json:"tick_count"`
	Entities   []EntitySnapshot    `json:"entities"`
	Fields     []FieldSnapshot     `json:"fields"`
	EventLog   []EventSnapshot     `json:"event_log,omitempty"`
	Trust      []TrustSnapshot     `json:"trust,omitempty"`
	MemoryLogs []MemoryLogSnapshot `json:"memory_logs,omitempty"`
}

// Encode marshals a WorldFile to indented JSON bytes.
func Encode(wf WorldFile) ([]byte, error) {
	wf.Version = CurrentVersion
	data, err := json.MarshalIndent(wf, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode world file: %w", err)
	}
	return data, nil
}

// Decode unmarshals a WorldFile from JSON bytes.
func Decode(data []byte) (WorldFile, error) {
	var wf WorldFile
	if err := json.Unmarshal(data, &wf); err != nil {
		return WorldFile{}, fmt.Errorf("decode world file: %w", err)
	}
	return wf, nil
}

// WriteFile encodes wf and writes it to path atomically: write to a
// temporary sibling file, then rename over the destination, the same
// pattern the teacher's StateManager.SaveState uses to avoid truncated
// writes on crash.
func WriteFile(path string, wf WorldFile) error {
	data, err := Encode(wf)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write snapshot file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename snapshot file: %w", err)
	}
	return nil
}

// ReadFile reads and decodes a WorldFile from path.
func ReadFile(path string) (WorldFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return WorldFile{}, fmt.Errorf("read snapshot file: %w", err)
	}
	return Decode(data)
}
