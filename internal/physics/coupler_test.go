package physics

import (
	"testing"

	"github.com/livingworld/kernel/internal/emotion"
	"github.com/stretchr/testify/assert"
)

func TestCouplerNeverMutatesEmotion(t *testing.T) {
	s := emotion.State{Valence: 0.5, Arousal: 0.7, Dominance: 0.3}
	before := s
	NewCoupler(ArchetypeNeutral).Apply(s)
	assert.Equal(t, before, s)
}

func TestCouplerExpressiveScalesAboveNeutral(t *testing.T) {
	s := emotion.State{Valence: 0.5, Arousal: 0.6, Dominance: 0.5}
	neutral := NewCoupler(ArchetypeNeutral).Apply(s)
	expressive := NewCoupler(ArchetypeExpressive).Apply(s)
	assert.Greater(t, expressive.Speed, neutral.Speed)
	assert.Greater(t, expressive.Force, neutral.Force)
}

func TestCouplerRestrainedScalesBelowNeutral(t *testing.T) {
	s := emotion.State{Valence: 0.5, Arousal: 0.6, Dominance: 0.5}
	neutral := NewCoupler(ArchetypeNeutral).Apply(s)
	restrained := NewCoupler(ArchetypeRestrained).Apply(s)
	assert.Less(t, restrained.Speed, neutral.Speed)
	assert.Less(t, restrained.Force, neutral.Force)
}

func TestArchetypeSelectorPicksExpressiveForHighArousalStrongValence(t *testing.T) {
	sel := DefaultArchetypeSelector()
	s := emotion.State{Valence: 0.9, Arousal: 0.95, Dominance: 0.8}
	assert.Equal(t, ArchetypeExpressive, sel.Select(s))
}

func TestArchetypeSelectorPicksRestrainedForLowArousalHighDominance(t *testing.T) {
	sel := DefaultArchetypeSelector()
	s := emotion.State{Valence: 0.05, Arousal: 0.05, Dominance: 0.9}
	assert.Equal(t, ArchetypeRestrained, sel.Select(s))
}

func TestArchetypeSelectorPicksNeutralWhenNeitherExceedsThreshold(t *testing.T) {
	sel := DefaultArchetypeSelector()
	s := emotion.State{Valence: 0.3, Arousal: 0.5, Dominance: 0.5}
	assert.Equal(t, ArchetypeNeutral, sel.Select(s))
}
