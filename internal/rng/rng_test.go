package rng

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreamDeterministic(t *testing.T) {
	r1 := NewRoot(42)
	r2 := NewRoot(42)

	s1 := r1.Stream("weather")
	s2 := r2.Stream("weather")

	for i := 0; i < 50; i++ {
		assert.Equal(t, s1.Float64(), s2.Float64())
	}
}

func TestStreamIndependentLabels(t *testing.T) {
	root := NewRoot(7)
	weather := root.Stream("weather")
	spawn := root.Stream("entity-spawn")

	var weatherDraws, spawnDraws []float64
	for i := 0; i < 10; i++ {
		weatherDraws = append(weatherDraws, weather.Float64())
	}
	for i := 0; i < 10; i++ {
		spawnDraws = append(spawnDraws, spawn.Float64())
	}

	assert.NotEqual(t, weatherDraws, spawnDraws)
}

func TestStreamOrderIndependence(t *testing.T) {
	// Drawing from stream A before stream B must not perturb B's sequence
	// versus drawing B first — this is what makes a determinism-bypass
	// detectable regardless of call order elsewhere in the tick.
	rootA := NewRoot(99)
	a1 := rootA.Stream("a")
	_ = rootA.Stream("b").Float64()
	firstOfA := a1.Float64()

	rootB := NewRoot(99)
	b1 := rootB.Stream("a")
	firstOfB := b1.Float64()

	assert.Equal(t, firstOfA, firstOfB)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-5))
	assert.Equal(t, 1.0, Clamp01(5))
	assert.Equal(t, 0.5, Clamp01(0.5))
	assert.Equal(t, 0.0, Clamp01(math.NaN()))
}

func TestLerp(t *testing.T) {
	assert.InDelta(t, 5.0, Lerp(0, 10, 0.5), 1e-9)
}

func TestDistance2D(t *testing.T) {
	assert.InDelta(t, 5.0, Distance2D(0, 0, 3, 4), 1e-9)
}

func TestWeightedPickFallsBackUniformly(t *testing.T) {
	root := NewRoot(1)
	s := root.Stream("pick")
	idx := s.WeightedPick([]float64{0, 0, 0})
	assert.True(t, idx >= 0 && idx < 3)
}

func TestNewIDIsUUID(t *testing.T) {
	id := NewID()
	assert.Len(t, id, 36)
}
