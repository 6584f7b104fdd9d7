package environment

import (
	"testing"

	"github.com/livingworld/kernel/internal/rng"
	"github.com/stretchr/testify/assert"
)

func TestStateAtReturnsBase(t *testing.T) {
	env := New(State{Temperature: 290, Humidity: 0.4})
	got := env.StateAt(10, 20)
	assert.Equal(t, 290.0, got.Temperature)
}

func TestWeatherDeterministicGivenSeed(t *testing.T) {
	root1 := rng.NewRoot(5)
	root2 := rng.NewRoot(5)
	w1 := NewFromPreset(PresetStormy, root1.Stream("weather"))
	w2 := NewFromPreset(PresetStormy, root2.Stream("weather"))

	for i := 0; i < 50; i++ {
		w1.Update(0.5)
		w2.Update(0.5)
	}
	assert.Equal(t, w1.Reading(), w2.Reading())
}

func TestWeatherApplyRaisesHumidityDuringRain(t *testing.T) {
	root := rng.NewRoot(1)
	w := NewFromPreset(PresetStormy, root.Stream("weather"))
	w.reading.Rain = true
	w.reading.RainIntensity = 1.0

	env := New(State{Humidity: 0.3})
	w.Apply(env)
	assert.Greater(t, env.Base().Humidity, 0.3)
}

func TestWeatherApplyLightFollowsCloudCover(t *testing.T) {
	root := rng.NewRoot(1)
	w := NewFromPreset(PresetCalm, root.Stream("weather"))
	w.reading.CloudCover = 0.8

	env := New(State{Light: 1})
	w.Apply(env)
	assert.InDelta(t, 0.2, env.Base().Light, 1e-9)
}

func TestValenceNudgeOnlyWhenRaining(t *testing.T) {
	root := rng.NewRoot(1)
	w := NewFromPreset(PresetDry, root.Stream("weather"))
	assert.Equal(t, 0.0, w.ValenceNudge())

	w.reading.Rain = true
	w.reading.RainIntensity = 0.5
	assert.Less(t, w.ValenceNudge(), 0.0)
}
