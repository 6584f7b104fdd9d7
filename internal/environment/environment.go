// Package environment implements the spatial scalar/vector Environment
// (spec.md §4.9) and the stochastic Weather process that mutates it.
package environment

// State is the environmental reading at a point.
type State struct {
	Temperature float64 // Kelvin
	Humidity    float64 // 0..1
	Light       float64 // 0..1
	WindX       float64
	WindY       float64
}

// Environment is a uniform field sampled at any (x, y); entity-local
// perturbations are layered on by the caller (e.g. field effects), keeping
// this package a pure ambient-conditions source.
type Environment struct {
	base State
}

// New creates an Environment with the given base conditions.
func New(base State) *Environment {
	return &Environment{base: base}
}

// StateAt returns the ambient conditions at (x, y). The base model is
// spatially uniform; this signature exists so future spatial variation
// (gradients, local weather cells) doesn't change callers.
func (e *Environment) StateAt(x, y float64) State {
	return e.base
}

// Base returns the environment's current uniform state.
func (e *Environment) Base() State { return e.base }

// SetBase replaces the environment's uniform state, used by Weather.Apply.
func (e *Environment) SetBase(s State) { e.base = s }
