package learning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLearnAddsNewPattern(t *testing.T) {
	s := NewSystem()
	s.Learn(Pattern{Trigger: "loud_noise", Response: "flee", Confidence: 0.6, LastSeen: 0})
	assert.Equal(t, 1, s.Count())
}

func TestLearnMergesMatchingTriggerResponse(t *testing.T) {
	s := NewSystem()
	s.Learn(Pattern{Trigger: "loud_noise", Response: "flee", Confidence: 0.4, LastSeen: 0})
	s.Learn(Pattern{Trigger: "loud_noise", Response: "flee", Confidence: 0.8, LastSeen: 5})
	require.Equal(t, 1, s.Count())
	p, ok := s.Suggest("loud_noise")
	require.True(t, ok)
	assert.InDelta(t, 0.6, p.Confidence, 1e-9)
	assert.Equal(t, 5.0, p.LastSeen)
}

func TestForgetOldDropsStalePatterns(t *testing.T) {
	s := NewSystem()
	s.Learn(Pattern{Trigger: "a", Response: "x", LastSeen: 0})
	s.Learn(Pattern{Trigger: "b", Response: "y", LastSeen: 290})

	s.ForgetOld(301, ForgetOldMaxAge)

	assert.Equal(t, 1, s.Count())
	_, ok := s.Suggest("a")
	assert.False(t, ok)
	_, ok = s.Suggest("b")
	assert.True(t, ok)
}

func TestSuggestReturnsHighestConfidence(t *testing.T) {
	s := NewSystem()
	s.Learn(Pattern{Trigger: "a", Response: "x", Confidence: 0.2, LastSeen: 0})
	s.Learn(Pattern{Trigger: "a", Response: "z", Confidence: 0.9, LastSeen: 0})

	p, ok := s.Suggest("a")
	require.True(t, ok)
	assert.Equal(t, "z", p.Response)
}

func TestSuggestNoMatch(t *testing.T) {
	s := NewSystem()
	_, ok := s.Suggest("nonexistent")
	assert.False(t, ok)
}

func TestLoadReplacesContents(t *testing.T) {
	s := NewSystem()
	s.Learn(Pattern{Trigger: "a", Response: "x"})
	s.Load([]Pattern{{Trigger: "b", Response: "y"}})
	assert.Equal(t, 1, s.Count())
	_, ok := s.Suggest("a")
	assert.False(t, ok)
}
