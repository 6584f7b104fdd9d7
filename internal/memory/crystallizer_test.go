package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func repeated(n int, salience float64, typ Type, subj Subject) []Memory {
	out := make([]Memory, n)
	for i := range out {
		out[i] = Memory{Timestamp: float64(i), Type: typ, Subject: subj, Salience: salience}
	}
	return out
}

func TestCrystallizePromotesRepeatedGroup(t *testing.T) {
	c := NewCrystallizer(3, 1.5, 10)
	mems := repeated(5, 0.5, TypeInteraction, "alice")
	c.Consolidate(mems, 100)

	crystals := c.Crystals()
	assert.Len(t, crystals, 1)
	assert.Equal(t, 5, crystals[0].Count)
	assert.InDelta(t, 0.5, crystals[0].Strength, 1e-9)
}

func TestCrystallizeIgnoresWeakGroups(t *testing.T) {
	c := NewCrystallizer(3, 5, 10)
	mems := repeated(2, 0.1, TypeObservation, "bob")
	c.Consolidate(mems, 10)
	assert.Equal(t, 0, c.Count())
}

func TestCrystallizeReinforcesRatherThanDuplicates(t *testing.T) {
	c := NewCrystallizer(2, 0.5, 10)
	c.Consolidate(repeated(3, 0.4, TypeInteraction, "alice"), 1)
	c.Consolidate(repeated(3, 0.4, TypeInteraction, "alice"), 2)

	assert.Equal(t, 1, c.Count())
	assert.Equal(t, 6, c.Crystals()[0].Count)
}

func TestCrystallizePrunesWeakestOverCapacity(t *testing.T) {
	c := NewCrystallizer(1, 0.1, 2)
	c.Consolidate(repeated(1, 0.9, TypeInteraction, "a"), 1)
	c.Consolidate(repeated(1, 0.5, TypeInteraction, "b"), 1)
	c.Consolidate(repeated(1, 0.8, TypeInteraction, "c"), 1)

	assert.Equal(t, 2, c.Count())
	for _, cr := range c.Crystals() {
		assert.NotEqual(t, Subject("b"), cr.Subject)
	}
}
