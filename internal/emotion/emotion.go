// Package emotion implements the PAD(+Vitality) affective algebra: clamp-safe
// deltas, baseline drift, resonance/contagion between entities, and an
// advisory color mapping for renderers. The model is operational, not
// clinical — see spec.md §1.
package emotion

import "math"

// State is a point in Pleasure-Arousal-Dominance space, with an optional
// Vitality dimension. Valence is in [-1, 1]; the rest are in [0, 1].
type State struct {
	Valence   float64
	Arousal   float64
	Dominance float64
	Vitality  float64 // 0 when unused; HasVitality gates whether it's meaningful
	HasVitality bool
}

// Delta is an additive perturbation to a State.
type Delta struct {
	Valence   float64
	Arousal   float64
	Dominance float64
	Vitality  float64
}

// New returns a neutral baseline state: zero valence, mid arousal/dominance.
// This is also the safe-default state substituted whenever NaN is observed,
// per spec.md §4.3.
func New() State {
	return State{Valence: 0, Arousal: 0.5, Dominance: 0.5}
}

func safe(v, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return v
}

// Sanitize replaces any NaN component with its safe default, never
// propagating NaN into the simulation. This is applied defensively at the
// boundary of every mutating operation below.
func Sanitize(s State) State {
	return State{
		Valence:     clamp(safe(s.Valence, 0), -1, 1),
		Arousal:     clamp(safe(s.Arousal, 0.5), 0, 1),
		Dominance:   clamp(safe(s.Dominance, 0.5), 0, 1),
		Vitality:    clamp(safe(s.Vitality, 0.5), 0, 1),
		HasVitality: s.HasVitality,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ApplyDelta adds d to s component-wise, clamping each component back into
// its declared range. NaN in either operand is replaced by the safe
// default before the sum is taken.
func ApplyDelta(s State, d Delta) State {
	s = Sanitize(s)
	out := State{
		Valence:     clamp(s.Valence+safe(d.Valence, 0), -1, 1),
		Arousal:     clamp(s.Arousal+safe(d.Arousal, 0), 0, 1),
		Dominance:   clamp(s.Dominance+safe(d.Dominance, 0), 0, 1),
		HasVitality: s.HasVitality,
	}
	if s.HasVitality {
		out.Vitality = clamp(s.Vitality+safe(d.Vitality, 0), 0, 1)
	}
	return out
}

// DriftToBaseline moves s toward baseline b at the given rate: s += (b-s)*rate.
// Both operands are already within range, so no clamp is needed afterward.
func DriftToBaseline(s, baseline State, rate float64) State {
	s = Sanitize(s)
	baseline = Sanitize(baseline)
	out := State{
		Valence:     s.Valence + (baseline.Valence-s.Valence)*rate,
		Arousal:     s.Arousal + (baseline.Arousal-s.Arousal)*rate,
		Dominance:   s.Dominance + (baseline.Dominance-s.Dominance)*rate,
		HasVitality: s.HasVitality,
	}
	if s.HasVitality {
		out.Vitality = s.Vitality + (baseline.Vitality-s.Vitality)*rate
	}
	return out
}

// Distance returns the Euclidean distance between two states in PAD(+V)
// space. Vitality only participates if both states declare it.
func Distance(a, b State) float64 {
	a, b = Sanitize(a), Sanitize(b)
	dv, da, dd := a.Valence-b.Valence, a.Arousal-b.Arousal, a.Dominance-b.Dominance
	sum := dv*dv + da*da + dd*dd
	if a.HasVitality && b.HasVitality {
		dvt := a.Vitality - b.Vitality
		sum += dvt * dvt
	}
	return math.Sqrt(sum)
}

// Blend linearly interpolates between a and b by t ∈ [0,1].
func Blend(a, b State, t float64) State {
	a, b = Sanitize(a), Sanitize(b)
	out := State{
		Valence:     a.Valence + (b.Valence-a.Valence)*t,
		Arousal:     a.Arousal + (b.Arousal-a.Arousal)*t,
		Dominance:   a.Dominance + (b.Dominance-a.Dominance)*t,
		HasVitality: a.HasVitality && b.HasVitality,
	}
	if out.HasVitality {
		out.Vitality = a.Vitality + (b.Vitality-a.Vitality)*t
	}
	return out
}

// Resonate moves self toward other by strength, in place of self, clamping
// the result. This is the per-tick contagion primitive used by the
// relational phase (spec.md §4.17 step 7).
func Resonate(self, other State, strength float64) State {
	self, other = Sanitize(self), Sanitize(other)
	return ApplyDelta(self, Delta{
		Valence:   (other.Valence - self.Valence) * strength,
		Arousal:   (other.Arousal - self.Arousal) * strength,
		Dominance: (other.Dominance - self.Dominance) * strength,
		Vitality:  (other.Vitality - self.Vitality) * strength,
	})
}

// ToColor deterministically maps the state to an advisory HSL triple for
// rendering only: valence -> hue in [0, 240] degrees (red=distress through
// blue=calm), arousal -> saturation, dominance -> lightness.
func ToColor(s State) (hueDeg, saturation, lightness float64) {
	s = Sanitize(s)
	hueDeg = (s.Valence + 1) / 2 * 240
	saturation = s.Arousal
	lightness = 0.25 + s.Dominance*0.5
	return
}

// InRange reports whether every declared component of s is within its
// contractual bounds — the per-tick invariant sweep in spec.md §3 item 1.
func InRange(s State) bool {
	if s.Valence < -1 || s.Valence > 1 {
		return false
	}
	if s.Arousal < 0 || s.Arousal > 1 {
		return false
	}
	if s.Dominance < 0 || s.Dominance > 1 {
		return false
	}
	if s.HasVitality && (s.Vitality < 0 || s.Vitality > 1) {
		return false
	}
	return true
}
