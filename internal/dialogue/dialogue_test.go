package dialogue

import (
	"testing"

	"github.com/livingworld/kernel/internal/rng"
	"github.com/stretchr/testify/assert"
)

type stubMaterial struct {
	phrase string
	ok     bool
}

func (s stubMaterial) Phrase(category, lang string) (string, bool) { return s.phrase, s.ok }

func TestSpeakUsesMaterialTableFirst(t *testing.T) {
	stream := rng.NewRoot(1).Stream("dialogue")
	got := Speak(stubMaterial{phrase: "from material", ok: true}, NewBank(), "greeting", "en", MoodHappy, stream)
	assert.Equal(t, "from material", got)
}

func TestSpeakFallsBackToBuiltinCategory(t *testing.T) {
	stream := rng.NewRoot(1).Stream("dialogue")
	got := Speak(nil, NewBank(), "greeting", "en", MoodHappy, stream)
	assert.Contains(t, []string{"Hello there.", "Oh, hi!", "Good to see you."}, got)
}

func TestSpeakFallsBackToMood(t *testing.T) {
	stream := rng.NewRoot(1).Stream("dialogue")
	got := Speak(nil, NewBank(), "unknown_category", "en", MoodSad, stream)
	assert.Contains(t, []string{"I feel heavy today.", "This is hard."}, got)
}

func TestSpeakFallsBackThroughMoodOrder(t *testing.T) {
	stream := rng.NewRoot(1).Stream("dialogue")
	bank := NewBank()
	got := Speak(nil, bank, "unknown_category", "de", Mood("nonexistent"), stream)
	assert.NotEqual(t, UnknownPhrase, got)
}

func TestSpeakReturnsUnknownWhenNothingMatches(t *testing.T) {
	stream := rng.NewRoot(1).Stream("dialogue")
	bank := &Bank{byCategory: map[string]map[string][]string{}, byMood: map[Mood]map[string][]string{}}
	got := Speak(nil, bank, "whatever", "xx", Mood("nope"), stream)
	assert.Equal(t, UnknownPhrase, got)
}

func TestMoodFromValenceExcitedWhenHighArousalHighValence(t *testing.T) {
	assert.Equal(t, MoodExcited, MoodFromValence(0.8, 0.9))
}
