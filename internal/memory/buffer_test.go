package memory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferEvictsOldestAtCapacity(t *testing.T) {
	b := NewBuffer(3)
	b.Add(Memory{Timestamp: 1, Content: Content{Text: "a"}, Salience: 0.5})
	b.Add(Memory{Timestamp: 2, Content: Content{Text: "b"}, Salience: 0.5})
	b.Add(Memory{Timestamp: 3, Content: Content{Text: "c"}, Salience: 0.5})
	b.Add(Memory{Timestamp: 4, Content: Content{Text: "d"}, Salience: 0.5})

	assert.Equal(t, 3, b.Count())
	recalled := b.Recall(Filter{})
	assert.Equal(t, "b", recalled[0].Content.Text)
	assert.Equal(t, "d", recalled[2].Content.Text)
}

func TestBufferAddSanitizesNaNSalience(t *testing.T) {
	b := NewBuffer(4)
	b.Add(Memory{Timestamp: 1, Salience: math.NaN()})
	assert.Equal(t, 0.5, b.Recall(Filter{})[0].Salience)
}

func TestDecayClampsAtZero(t *testing.T) {
	b := NewBuffer(4)
	b.Add(Memory{Timestamp: 1, Salience: 0.05})
	b.Decay(10, 0.1)
	assert.Equal(t, 0.0, b.Recall(Filter{})[0].Salience)
}

func TestForgetRemovesBelowThreshold(t *testing.T) {
	b := NewBuffer(10)
	for i := 0; i < 10; i++ {
		b.Add(Memory{Timestamp: float64(i), Salience: 0.2})
	}
	b.Decay(20, 0.01)
	b.Forget(0.1)
	assert.Equal(t, 0, b.Count())
}

func TestStrengthOfCapsAtOne(t *testing.T) {
	b := NewBuffer(2)
	b.Add(Memory{Subject: "alice", Salience: 1})
	b.Add(Memory{Subject: "alice", Salience: 1})
	assert.Equal(t, 1.0, b.StrengthOf("alice"))
}

func TestSnapshotRoundTrip(t *testing.T) {
	b := NewBuffer(5)
	b.Add(Memory{Timestamp: 1, Subject: "bob", Salience: 0.4})
	snap := b.ToSnapshot()
	restored := FromSnapshot(snap)
	assert.Equal(t, b.Count(), restored.Count())
	assert.Equal(t, b.Capacity(), restored.Capacity())
}

func TestRecallFilters(t *testing.T) {
	b := NewBuffer(10)
	b.Add(Memory{Timestamp: 1, Type: TypeInteraction, Subject: "a", Salience: 0.9})
	b.Add(Memory{Timestamp: 2, Type: TypeObservation, Subject: "b", Salience: 0.1})

	got := b.Recall(Filter{HasType: true, Type: TypeInteraction})
	assert.Len(t, got, 1)
	assert.Equal(t, Subject("a"), got[0].Subject)

	got = b.Recall(Filter{MinSalience: 0.5})
	assert.Len(t, got, 1)
}
