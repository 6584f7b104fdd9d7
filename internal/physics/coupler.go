package physics

import "github.com/livingworld/kernel/internal/emotion"

// Archetype names a Coupler preset (spec.md §4.14: expressive, restrained,
// neutral).
type Archetype string

const (
	ArchetypeExpressive Archetype = "expressive"
	ArchetypeRestrained Archetype = "restrained"
	ArchetypeNeutral    Archetype = "neutral"
)

// Coefficients is the scalar output of the emotion→physics mapping: speed,
// mass, force. Coupler never mutates emotion — this is a pure function of a
// State snapshot.
type Coefficients struct {
	Speed float64
	Mass  float64
	Force float64
}

// Coupler is a pure emotion→physics function, parameterized by an archetype
// preset. It never holds or mutates entity state.
type Coupler struct {
	Archetype Archetype
}

// NewCoupler creates a Coupler for the given archetype.
func NewCoupler(archetype Archetype) Coupler {
	return Coupler{Archetype: archetype}
}

// Apply maps an emotional state to physical coefficients, scaled by the
// Coupler's archetype. Speed rises with arousal, mass rises with dominance
// (more "grounded"), force rises with |valence| (motivated entities push
// harder in whichever direction their affect points).
func (c Coupler) Apply(s emotion.State) Coefficients {
	s = emotion.Sanitize(s)
	base := Coefficients{
		Speed: 0.5 + 0.5*s.Arousal,
		Mass:  0.5 + 0.5*s.Dominance,
		Force: 0.2 + 0.8*absf(s.Valence),
	}
	switch c.Archetype {
	case ArchetypeExpressive:
		base.Speed *= 1.3
		base.Force *= 1.3
		base.Mass *= 0.8
	case ArchetypeRestrained:
		base.Speed *= 0.7
		base.Force *= 0.7
		base.Mass *= 1.2
	case ArchetypeNeutral:
		// no scaling
	}
	return base
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// ArchetypeSelector scores an emotional state against expressive/restrained
// activation thresholds and picks the dominant archetype, the same weighted-
// threshold-sum technique the teacher's PersonaManager uses to pick between
// its Ordo and Chao cognitive archetypes. The scoring function is read-only:
// it inspects a State snapshot and returns a choice, keeping it physically
// separate from Coupler.Apply so selection can never accidentally mutate
// emotion.
type ArchetypeSelector struct {
	ActivationThreshold float64
}

// DefaultArchetypeSelector mirrors PersonaManager's 0.6 activation cutoff.
func DefaultArchetypeSelector() ArchetypeSelector {
	return ArchetypeSelector{ActivationThreshold: 0.6}
}

// Select returns the archetype whose score exceeds the activation threshold
// and beats the other, or ArchetypeNeutral if neither does.
func (sel ArchetypeSelector) Select(s emotion.State) Archetype {
	s = emotion.Sanitize(s)
	expressiveScore := sel.expressiveScore(s)
	restrainedScore := sel.restrainedScore(s)

	if expressiveScore > restrainedScore && expressiveScore > sel.ActivationThreshold {
		return ArchetypeExpressive
	}
	if restrainedScore > expressiveScore && restrainedScore > sel.ActivationThreshold {
		return ArchetypeRestrained
	}
	return ArchetypeNeutral
}

// expressiveScore favors high arousal and strong valence: an entity that is
// both activated and affectively charged wants to move expressively.
func (sel ArchetypeSelector) expressiveScore(s emotion.State) float64 {
	score := 0.0
	if s.Arousal > 0.6 {
		score += 0.5 * (s.Arousal - 0.6) / 0.4
	}
	if absf(s.Valence) > 0.5 {
		score += 0.4 * (absf(s.Valence) - 0.5) / 0.5
	}
	if s.Dominance > 0.6 {
		score += 0.2
	}
	return minf(score, 1.0)
}

// restrainedScore favors low arousal and high dominance: a calm, grounded
// entity wants to move restrainedly.
func (sel ArchetypeSelector) restrainedScore(s emotion.State) float64 {
	score := 0.0
	if s.Arousal < 0.4 {
		score += 0.5 * (0.4 - s.Arousal) / 0.4
	}
	if s.Dominance > 0.5 {
		score += 0.3 * (s.Dominance - 0.5) / 0.5
	}
	if absf(s.Valence) < 0.2 {
		score += 0.2
	}
	return minf(score, 1.0)
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
