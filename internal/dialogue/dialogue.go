// Package dialogue implements the Dialogue Enhancer (spec.md §4.7, §4.16):
// a built-in phrase bank plus the category → built-in → emotion fallback
// chain Entity.Speak walks. Generation from an LLM, embeddings, and
// similarity services are an explicit Non-goal (spec.md §1) — every phrase
// here is a literal.
package dialogue

import "github.com/livingworld/kernel/internal/rng"

// Mood names one of the emotion-keyed fallback categories, in the exact
// order spec.md §4.7 lists them.
type Mood string

const (
	MoodExcited  Mood = "excited"
	MoodHappy    Mood = "happy"
	MoodRelieved Mood = "relieved"
	MoodPlayful  Mood = "playful"
	MoodCurious  Mood = "curious"
	MoodGrateful Mood = "grateful"
	MoodAnxious  Mood = "anxious"
	MoodSad      Mood = "sad"
	MoodLonely   Mood = "lonely"
	MoodInspired Mood = "inspired"
	MoodTired    Mood = "tired"
	MoodThinking Mood = "thinking"
)

// moodOrder is the fallback priority spec.md §4.7 lists, used when no mood
// has already been chosen by the caller.
var moodOrder = []Mood{
	MoodExcited, MoodHappy, MoodRelieved, MoodPlayful, MoodCurious,
	MoodGrateful, MoodAnxious, MoodSad, MoodLonely, MoodInspired,
	MoodTired, MoodThinking,
}

// UnknownPhrase is returned when speak has no match anywhere in the chain
// (spec.md §4.7: "speak with unknown category returns '...'").
const UnknownPhrase = "..."

// Bank is a built-in phrase bank keyed by (category, language), with a
// parallel mood bank for the final emotion fallback.
type Bank struct {
	byCategory map[string]map[string][]string
	byMood     map[Mood]map[string][]string
}

// NewBank returns the built-in phrase bank. Phrases are Go map literals, not
// loaded from a file — material parsing is external per spec.md §6.
func NewBank() *Bank {
	return &Bank{
		byCategory: map[string]map[string][]string{
			"greeting": {
				"en": {"Hello there.", "Oh, hi!", "Good to see you."},
			},
			"farewell": {
				"en": {"See you around.", "Take care.", "Until next time."},
			},
			"idle": {
				"en": {"Hmm.", "...", "Just thinking."},
			},
		},
		byMood: map[Mood]map[string][]string{
			MoodExcited:  {"en": {"This is amazing!", "I can't wait!"}},
			MoodHappy:    {"en": {"I feel good.", "Things are looking up."}},
			MoodRelieved: {"en": {"Phew, that's better.", "Okay, I can breathe now."}},
			MoodPlayful:  {"en": {"Catch me if you can!", "Let's have some fun."}},
			MoodCurious:  {"en": {"I wonder what that is.", "What happens if..."}},
			MoodGrateful: {"en": {"Thank you for that.", "I appreciate it."}},
			MoodAnxious:  {"en": {"Something feels off.", "I don't like this."}},
			MoodSad:      {"en": {"I feel heavy today.", "This is hard."}},
			MoodLonely:   {"en": {"Is anyone there?", "It's quiet here."}},
			MoodInspired: {"en": {"I have an idea.", "Let's try something new."}},
			MoodTired:    {"en": {"I need to rest.", "So worn out."}},
			MoodThinking: {"en": {"Let me consider that.", "Still processing."}},
		},
	}
}

// material.DialogueTable is the already-parsed representation Entity
// consults first; this interface is the minimal shape dialogue needs from
// it, avoiding an import cycle with internal/material.
type MaterialTable interface {
	Phrase(category, lang string) (string, bool)
}

// Speak implements the full fallback chain from spec.md §4.7: material
// table -> built-in bank (category, lang) -> emotion fallback in mood order
// -> UnknownPhrase. stream selects among equally-eligible phrases.
func Speak(table MaterialTable, bank *Bank, category, lang string, mood Mood, stream *rng.Stream) string {
	if table != nil {
		if phrase, ok := table.Phrase(category, lang); ok {
			return phrase
		}
	}
	if phrase, ok := pickFrom(bank.byCategory[category], lang, stream); ok {
		return phrase
	}
	if phrase, ok := pickFrom(bank.byMood[mood], lang, stream); ok {
		return phrase
	}
	for _, m := range moodOrder {
		if phrase, ok := pickFrom(bank.byMood[m], lang, stream); ok {
			return phrase
		}
	}
	return UnknownPhrase
}

func pickFrom(byLang map[string][]string, lang string, stream *rng.Stream) (string, bool) {
	if byLang == nil {
		return "", false
	}
	phrases, ok := byLang[lang]
	if !ok || len(phrases) == 0 {
		return "", false
	}
	return phrases[stream.Pick(len(phrases))], true
}

// MoodFromValence picks the dominant mood fallback category from a PAD
// reading, used when the caller hasn't already selected one explicitly.
// This is a convenience, not part of the spec's fallback chain itself: §4.7
// only specifies the mood *order* to try, not how to pick one from emotion.
func MoodFromValence(valence, arousal float64) Mood {
	switch {
	case arousal > 0.7 && valence > 0.5:
		return MoodExcited
	case valence > 0.5:
		return MoodHappy
	case arousal < 0.3 && valence > 0:
		return MoodRelieved
	case arousal > 0.6 && valence > 0.2:
		return MoodPlayful
	case arousal > 0.5 && valence >= -0.1 && valence <= 0.1:
		return MoodCurious
	case valence > 0.2 && arousal < 0.4:
		return MoodGrateful
	case arousal > 0.6 && valence < -0.3:
		return MoodAnxious
	case valence < -0.5:
		return MoodSad
	case valence < -0.2 && arousal < 0.3:
		return MoodLonely
	case valence > 0.3 && arousal > 0.5:
		return MoodInspired
	case arousal < 0.2:
		return MoodTired
	default:
		return MoodThinking
	}
}
