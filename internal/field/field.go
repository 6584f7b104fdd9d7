// Package field implements transient radial influence zones (spec.md §4.8).
// Fields are abstract by design: a headless world observes exactly the
// same emotional/relational effects as a rendered one.
package field

import "math"

// Channel names an effect dimension a Field may carry.
type Channel string

const (
	ChannelOpacity            Channel = "opacity"
	ChannelValence            Channel = "valence"
	ChannelArousal            Channel = "arousal"
	ChannelDominance          Channel = "dominance"
	ChannelRelationshipBoost  Channel = "relationship_boost"
	ChannelLinkStrength       Channel = "link_strength"
	ChannelSourceEntity       Channel = "source_entity" // carried as a string id, not a scalar
)

// Field is a transient radial influence zone.
type Field struct {
	ID          string
	SpecID      string
	OriginX     float64
	OriginY     float64
	ElapsedMs   float64
	DurationMs  float64
	RadiusPx    float64
	Effects     map[Channel]float64
	SourceEntityID string
	HasSource   bool
	Expired     bool
}

// New creates a field at origin with the given spec id, duration and
// radius.
func New(id, specID string, originX, originY, durationMs, radiusPx float64) *Field {
	return &Field{
		ID:         id,
		SpecID:     specID,
		OriginX:    originX,
		OriginY:    originY,
		DurationMs: durationMs,
		RadiusPx:   radiusPx,
		Effects:    make(map[Channel]float64),
	}
}

// Strength returns the field's current strength given elapsed/duration:
// 1 at spawn, 0.5 at elapsed==duration (spec.md §4.8, §8).
func (f *Field) Strength() float64 {
	if f.DurationMs <= 0 {
		return 0
	}
	return 1 - 0.5*f.ElapsedMs/f.DurationMs
}

// TargetEffect mirrors the abstract effects an in-range entity receives
// this update, computed by the caller and applied by whatever owns the
// entity (the field package has no entity dependency, to avoid an import
// cycle — see World.applyFieldEffects in package world for the consumer).
type TargetEffect struct {
	EntityID           string
	Intensity          float64
	OpacityFloor       float64
	HasOpacity         bool
	ValenceDelta       float64
	ArousalDelta       float64
	DominanceDelta     float64
	RelationshipBoost  float64
	HasRelationshipBoost bool
	LinkReinforce      float64
	HasLinkReinforce   bool
	SourceEntityID     string
}

// EntityPosition is the minimal shape field.Update needs from a candidate
// target, decoupling this package from internal/entity.
type EntityPosition struct {
	ID string
	X  float64
	Y  float64
}

// Update advances elapsed time by dtMs, marks the field expired once
// elapsed reaches duration, and returns the per-entity abstract effects for
// every entity within radius. Per spec.md §4.8: intensity =
// field_strength * (1 - dist/radius); opacity, PAD deltas, relationship
// boost, and link reinforcement are each gated on their channel being
// present.
func (f *Field) Update(dtMs float64, candidates []EntityPosition) []TargetEffect {
	f.ElapsedMs += dtMs
	if f.ElapsedMs >= f.DurationMs {
		f.Expired = true
	}

	strength := f.Strength()
	var out []TargetEffect
	for _, c := range candidates {
		dist := math.Hypot(c.X-f.OriginX, c.Y-f.OriginY)
		if dist > f.RadiusPx {
			continue
		}
		intensity := strength * (1 - dist/f.RadiusPx)
		eff := TargetEffect{EntityID: c.ID, Intensity: intensity}

		if v, ok := f.Effects[ChannelOpacity]; ok {
			eff.HasOpacity = true
			eff.OpacityFloor = clamp01(v)
		}
		if v, ok := f.Effects[ChannelValence]; ok {
			eff.ValenceDelta = v * intensity * 0.01
		}
		if v, ok := f.Effects[ChannelArousal]; ok {
			eff.ArousalDelta = v * intensity * 0.01
		}
		if v, ok := f.Effects[ChannelDominance]; ok {
			eff.DominanceDelta = v * intensity * 0.01
		}
		if v, ok := f.Effects[ChannelRelationshipBoost]; ok && f.HasSource {
			eff.HasRelationshipBoost = true
			eff.RelationshipBoost = v * intensity * 0.001
			eff.SourceEntityID = f.SourceEntityID
		}
		if v, ok := f.Effects[ChannelLinkStrength]; ok && f.HasSource {
			eff.HasLinkReinforce = true
			eff.LinkReinforce = v * intensity * 0.001
			eff.SourceEntityID = f.SourceEntityID
		}
		out = append(out, eff)
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
