// Package physics implements the proximity-based collision/energy exchange
// system (spec.md §4.10) and the emotion→physics Coupler (§4.14). Neither
// component performs continuous-time rigid-body resolution — that is an
// explicit Non-goal (spec.md §1); collision here is detection plus thermal
// exchange only, leaving physical resolution to an external engine harness.
package physics

import "github.com/livingworld/kernel/internal/rng"

// Body is the minimal physical state the collision/energy system needs from
// an entity: position, temperature, opacity. Kept separate from
// internal/entity to avoid an import cycle, the same pattern internal/field
// uses for EntityPosition.
type Body struct {
	ID          string
	X, Y        float64
	Temperature float64
	Opacity     float64
}

// Pair names a colliding pair of bodies by id, in registry order (i<j).
type Pair struct {
	AID, BID string
}

// Detect returns every pair of bodies whose centers are within radius,
// iterating in the given slice order so results are deterministic for a
// fixed registry order (spec.md §4.17 step 4 requires registry-order
// iteration throughout the physical phases).
func Detect(bodies []Body, radius float64) []Pair {
	var pairs []Pair
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			if rng.Distance2D(bodies[i].X, bodies[i].Y, bodies[j].X, bodies[j].Y) <= radius {
				pairs = append(pairs, Pair{AID: bodies[i].ID, BID: bodies[j].ID})
			}
		}
	}
	return pairs
}

// EnergySystem performs the thermal exchange described in spec.md §4.10:
// entity-entity heat flow, entity-environment heat flow, and opacity decay
// for hot entities.
type EnergySystem struct {
	EntityCoupling      float64 // k in entity<->entity heat flow
	EnvironmentCoupling float64 // coupling constant toward env.temperature
	OpacityDecayRate    float64 // thermal decay coefficient
	HotThreshold        float64 // temperature above which opacity decays faster
}

// DefaultEnergySystem returns the system's documented default coefficients.
func DefaultEnergySystem() EnergySystem {
	return EnergySystem{
		EntityCoupling:      0.05,
		EnvironmentCoupling: 0.02,
		OpacityDecayRate:    0.01,
		HotThreshold:        310, // Kelvin, roughly body-warm
	}
}

// ExchangeEntityEntity moves heat from the hotter to the colder body: ΔT =
// k·(Ta - Tb)·dt applied symmetrically (a cools, b warms, or vice versa).
func (es EnergySystem) ExchangeEntityEntity(a, b Body, dt float64) (newA, newB Body) {
	flow := es.EntityCoupling * (a.Temperature - b.Temperature) * dt
	newA, newB = a, b
	newA.Temperature -= flow
	newB.Temperature += flow
	return
}

// ExchangeEntityEnvironment moves body's temperature toward envTemp at the
// system's environment coupling constant.
func (es EnergySystem) ExchangeEntityEnvironment(body Body, envTemp, dt float64) Body {
	out := body
	out.Temperature += (envTemp - body.Temperature) * es.EnvironmentCoupling * dt
	return out
}

// DecayOpacity applies the thermal decay coefficient: opacity falls faster
// the hotter the body is above HotThreshold, floored at zero.
func (es EnergySystem) DecayOpacity(body Body, dt float64) Body {
	out := body
	excess := body.Temperature - es.HotThreshold
	if excess <= 0 {
		return out
	}
	out.Opacity = rng.Clamp01(body.Opacity - es.OpacityDecayRate*excess*dt)
	return out
}
