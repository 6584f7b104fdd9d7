// Package relationship implements trust/familiarity bonds between entities
// (spec.md §4.5), including a DecayManager supporting multiple decay curve
// families. The richer agent-model shape (Predictability, interaction
// history) is grounded on the teacher's theory-of-mind module; see
// DESIGN.md.
package relationship

import "math"

// Outcome classifies the result of an interaction for Update.
type Outcome int

const (
	Neutral Outcome = iota
	Positive
	Negative
)

// Relationship is a directed bond one entity holds toward another.
type Relationship struct {
	Trust            float64
	Familiarity      float64
	LastInteraction  float64
	HasInteracted    bool
	InteractionCount int

	// Predictability is derived from the variance of past interaction
	// outcomes: a partner whose outcomes are consistently positive or
	// consistently negative is more predictable than one that alternates.
	// Folded in from the teacher's theory-of-mind AgentModel per
	// SPEC_FULL.md §6 rather than introducing a second subsystem.
	Predictability float64
	outcomeHistory []Outcome
}

// Strength is the weighted trust/familiarity composite (spec.md §3).
func (r Relationship) Strength() float64 {
	return 0.7*r.Trust + 0.3*r.Familiarity
}

// Create returns a fresh relationship with the documented defaults.
func Create() Relationship {
	return Relationship{Trust: 0.5, Familiarity: 0.1}
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

// Update applies an interaction outcome to the relationship at time now.
func Update(r Relationship, outcome Outcome, strength, now float64) Relationship {
	switch outcome {
	case Positive:
		r.Trust = clamp01(r.Trust + strength)
	case Negative:
		r.Trust = clamp01(r.Trust - strength)
	}
	r.Familiarity = clamp01(r.Familiarity + 0.5*strength)
	r.LastInteraction = now
	r.HasInteracted = true
	r.InteractionCount++

	r.outcomeHistory = append(r.outcomeHistory, outcome)
	if len(r.outcomeHistory) > 20 {
		r.outcomeHistory = r.outcomeHistory[len(r.outcomeHistory)-20:]
	}
	r.Predictability = predictability(r.outcomeHistory)
	return r
}

// predictability is 1 minus the normalized variance of recent outcomes
// (coded as -1/0/+1): a run of identical outcomes scores 1, an even split
// of positive/negative scores close to 0.
func predictability(history []Outcome) float64 {
	if len(history) == 0 {
		return 0
	}
	vals := make([]float64, len(history))
	mean := 0.0
	for i, o := range history {
		switch o {
		case Positive:
			vals[i] = 1
		case Negative:
			vals[i] = -1
		default:
			vals[i] = 0
		}
		mean += vals[i]
	}
	mean /= float64(len(vals))
	variance := 0.0
	for _, v := range vals {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(vals))
	return clamp01(1 - variance)
}

// Decay reduces familiarity by rate*dt and trust by half that, per
// spec.md §4.5.
func Decay(r Relationship, dt, rate float64) Relationship {
	drop := rate * dt
	r.Familiarity = clamp01(r.Familiarity - drop)
	r.Trust = clamp01(r.Trust - drop/2)
	return r
}

// Curve names a decay-shape family for the DecayManager.
type Curve int

const (
	CurveLinear Curve = iota
	CurveExponential
	CurveLogarithmic
	CurveStepped
)

// DecayManager applies a configurable decay curve with a grace period and
// prunes relationships whose strength falls below a threshold.
type DecayManager struct {
	Curve          Curve
	Rate           float64
	GracePeriod    float64
	PruneThreshold float64
}

// NewDecayManager builds a manager with the given curve and parameters.
func NewDecayManager(curve Curve, rate, gracePeriod, pruneThreshold float64) *DecayManager {
	return &DecayManager{Curve: curve, Rate: rate, GracePeriod: gracePeriod, PruneThreshold: pruneThreshold}
}

// Apply decays r by elapsed-since-last-interaction time, honoring the
// grace period, and reports whether the relationship should now be pruned.
func (m *DecayManager) Apply(r Relationship, now float64) (Relationship, bool) {
	if !r.HasInteracted {
		return r, false
	}
	elapsed := now - r.LastInteraction
	if elapsed <= m.GracePeriod {
		return r, false
	}
	t := elapsed - m.GracePeriod

	var factor float64
	switch m.Curve {
	case CurveLinear:
		factor = m.Rate * t
	case CurveExponential:
		factor = m.Rate * t * t
	case CurveLogarithmic:
		factor = m.Rate * math.Log1p(t)
	case CurveStepped:
		steps := math.Floor(t / 10)
		factor = m.Rate * steps
	}

	r.Familiarity = clamp01(r.Familiarity - factor)
	r.Trust = clamp01(r.Trust - factor/2)

	return r, r.Strength() < m.PruneThreshold
}
