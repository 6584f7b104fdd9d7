// Package entity implements the Entity aggregate (spec.md §4.7): an
// autonomous living agent composing memory, emotion, intent, relationships,
// and cognitive links under feature flags, in the teacher's concrete-struct,
// mutex-guarded style (core/deeptreeecho/identity.go's Identity).
package entity

import (
	"sync"

	"github.com/livingworld/kernel/internal/coglink"
	"github.com/livingworld/kernel/internal/dialogue"
	"github.com/livingworld/kernel/internal/emotion"
	"github.com/livingworld/kernel/internal/intent"
	"github.com/livingworld/kernel/internal/learning"
	"github.com/livingworld/kernel/internal/material"
	"github.com/livingworld/kernel/internal/memory"
	"github.com/livingworld/kernel/internal/relationship"
	"github.com/livingworld/kernel/internal/rng"
	"github.com/livingworld/kernel/internal/skill"
)

// Feature is a bitmask flag gating an optional subsystem on an Entity
// (SPEC_FULL.md §4).
type Feature uint16

const (
	FeatureMemory Feature = 1 << iota
	FeatureLearning
	FeatureRelationships
	FeatureSkills
	FeatureConsolidation
	FeatureEmotion
	FeatureIntent
	FeatureCognitiveLinks
)

// Message is an entity-to-entity communication payload (spec.md §4.7,
// §4.17 step 6: delivery is specified externally, the Entity only owns its
// inbox/outbox).
type Message struct {
	FromID    string
	Body      string
	SentAt    float64
	Delivered bool
}

// Entity is a single living agent. All sub-aggregates are concrete structs,
// never pointers to other Entities — cross-entity relationships are id-keyed
// maps, resolved through the World registry (spec.md §9).
type Entity struct {
	mu sync.RWMutex

	ID         string
	MaterialID string

	X, Y   float64
	VX, VY float64
	Age     float64
	Opacity float64
	Entropy float64
	Energy  float64

	Temperature float64
	Humidity    float64

	Autonomous bool
	features   Feature

	Memory       *memory.Buffer
	Emotion      emotion.State
	Intents      *intent.Stack
	Relationships map[string]relationship.Relationship
	Links        *coglink.Table
	Trust        map[string]float64
	Skills       *skill.System
	Learning     *learning.System

	// TriggerContext holds this entity's local context overrides, merged
	// lazily on access on top of the world-level broadcast (spec.md §3,
	// §4.17 step 2) rather than cached eagerly every tick.
	TriggerContext map[string]any

	NativeLanguage  string
	LanguageWeights map[string]float64

	inbox  []Message
	outbox []Message

	LastReflection string
}

// New creates an Entity with the given id/material, memory capacity, and
// enabled features.
func New(id, materialID string, memoryCapacity int, features Feature) *Entity {
	e := &Entity{
		ID:            id,
		MaterialID:    materialID,
		Opacity:       1,
		Energy:        1,
		features:       features,
		Relationships:  make(map[string]relationship.Relationship),
		Trust:          make(map[string]float64),
		TriggerContext: make(map[string]any),
	}
	if features&FeatureMemory != 0 {
		e.Memory = memory.NewBuffer(memoryCapacity)
	}
	if features&FeatureEmotion != 0 {
		e.Emotion = emotion.New()
	}
	if features&FeatureIntent != 0 {
		e.Intents = intent.NewStack()
	}
	if features&FeatureCognitiveLinks != 0 {
		e.Links = coglink.NewTable()
	}
	if features&FeatureSkills != 0 {
		e.Skills = skill.NewSystem(DefaultSkillDecayRate)
	}
	if features&FeatureLearning != 0 {
		e.Learning = learning.NewSystem()
	}
	return e
}

// DefaultSkillDecayRate is the default per-second proficiency loss applied
// to an entity's SkillSystem.
const DefaultSkillDecayRate = 0.0005

// Enable turns on the given features.
func (e *Entity) Enable(features ...Feature) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, f := range features {
		e.features |= f
	}
	if e.features&FeatureMemory != 0 && e.Memory == nil {
		e.Memory = memory.NewBuffer(64)
	}
	if e.features&FeatureIntent != 0 && e.Intents == nil {
		e.Intents = intent.NewStack()
	}
	if e.features&FeatureCognitiveLinks != 0 && e.Links == nil {
		e.Links = coglink.NewTable()
	}
	if e.features&FeatureSkills != 0 && e.Skills == nil {
		e.Skills = skill.NewSystem(DefaultSkillDecayRate)
	}
	if e.features&FeatureLearning != 0 && e.Learning == nil {
		e.Learning = learning.NewSystem()
	}
}

// Disable turns off the given features. Feature data is retained (a
// re-Enable does not lose history), per spec.md §7 "Missing feature:
// calling a feature-gated method ... -> no-op; not an error" — the gate is
// checked at the call site, not by discarding state.
func (e *Entity) Disable(features ...Feature) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, f := range features {
		e.features &^= f
	}
}

// IsEnabled reports whether the given feature is currently on.
func (e *Entity) IsEnabled(f Feature) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.features&f != 0
}

// Features returns the full enabled-feature bitmask, for persistence.
func (e *Entity) Features() Feature {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.features
}

func (e *Entity) isEnabledLocked(f Feature) bool {
	return e.features&f != 0
}

// Update advances age, opacity decay, and velocity friction, and — if
// autonomous with an empty intent stack — generates a new intent by the
// deterministic rule in spec.md §4.7.
func (e *Entity) Update(dt, decayRate, friction float64, stream *rng.Stream) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Age += dt
	e.Opacity = rng.Clamp01(e.Opacity - decayRate*dt)
	e.VX *= 1 - friction
	e.VY *= 1 - friction

	if e.Autonomous && e.isEnabledLocked(FeatureIntent) && e.Intents.IsEmpty() {
		e.generateAutonomousIntent(stream)
	}
}

// generateAutonomousIntent implements spec.md §4.7's deterministic rule,
// reading emotion only (never mutating it).
func (e *Entity) generateAutonomousIntent(stream *rng.Stream) {
	v, a := e.Emotion.Valence, e.Emotion.Arousal
	var goal string
	var motivation float64
	var priority int

	switch {
	case a > 0.5 && v > 0:
		goal, motivation, priority = "explore", 0.8*a, 2
	case a > 0.5 && v < 0:
		goal, motivation, priority = "wander", 0.7*a, 2
	case a < 0.3:
		choices := []string{"rest", "observe"}
		goal = choices[stream.Pick(len(choices))]
		motivation, priority = 0.5, 1
	default:
		goal, motivation, priority = "wander", 0.3, 1
	}

	e.Intents.Push(intent.Intent{
		ID:         rng.NewID(),
		Goal:       goal,
		Motivation: motivation,
		Priority:   priority,
		Created:    e.Age,
		Source:     intent.SourceAutonomous,
	})
}

// Integrate advances position by velocity (spec.md §4.7).
func (e *Entity) Integrate(dt float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.X += e.VX * dt
	e.Y += e.VY * dt
}

// Remember appends a memory if the memory feature is enabled; a no-op
// otherwise (spec.md §7: missing feature is a no-op, not an error).
func (e *Entity) Remember(m memory.Memory) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.isEnabledLocked(FeatureMemory) || e.Memory == nil {
		return
	}
	e.Memory.Add(m)
}

// Feel applies an emotional delta if the emotion feature is enabled.
func (e *Entity) Feel(d emotion.Delta) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.isEnabledLocked(FeatureEmotion) {
		return
	}
	e.Emotion = emotion.ApplyDelta(e.Emotion, d)
}

// Context merges the world-level trigger_context broadcast with this
// entity's own local overrides, computed lazily on access rather than
// cached every tick (spec.md §3: "each entity's local context is updated
// lazily on access"). Entries in TriggerContext take priority over
// same-keyed world entries.
func (e *Entity) Context(worldContext map[string]any) map[string]any {
	e.mu.RLock()
	defer e.mu.RUnlock()
	merged := make(map[string]any, len(worldContext)+len(e.TriggerContext))
	for k, v := range worldContext {
		merged[k] = v
	}
	for k, v := range e.TriggerContext {
		merged[k] = v
	}
	return merged
}

// SetContext stores a local trigger_context override under key.
func (e *Entity) SetContext(key string, value any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.TriggerContext[key] = value
}

// PracticeSkill raises a skill's proficiency if the skills feature is
// enabled; a no-op otherwise.
func (e *Entity) PracticeSkill(name string, amount float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.isEnabledLocked(FeatureSkills) || e.Skills == nil {
		return
	}
	e.Skills.Practice(name, amount, e.Age)
}

// LearnPattern records a trigger/response pattern if the learning feature is
// enabled; a no-op otherwise.
func (e *Entity) LearnPattern(p learning.Pattern) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.isEnabledLocked(FeatureLearning) || e.Learning == nil {
		return
	}
	e.Learning.Learn(p)
}

// SetIntent pushes an explicit intent if the intent feature is enabled.
func (e *Entity) SetIntent(i intent.Intent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.isEnabledLocked(FeatureIntent) || e.Intents == nil {
		return
	}
	i.Source = intent.SourceExplicit
	e.Intents.Push(i)
}

// Thought is the synthesized output of Reflect: recent memories plus an
// emotion annotation plus a learned-pattern count plus the current intent's
// motivation (spec.md §4.7).
type Thought struct {
	Stimulus          string
	RecentMemories    []memory.Memory
	Emotion           emotion.State
	LearnedPatternCount int
	IntentMotivation  float64
	HasIntent         bool
}

// Reflect synthesizes a Thought from recent memories, current emotion,
// learned pattern count, and the active intent's motivation.
func (e *Entity) Reflect(stimulus string, learnedPatternCount int) Thought {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := Thought{
		Stimulus:            stimulus,
		Emotion:             e.Emotion,
		LearnedPatternCount: learnedPatternCount,
	}
	if e.isEnabledLocked(FeatureMemory) && e.Memory != nil {
		all := e.Memory.Recall(memory.Filter{})
		if len(all) > 5 {
			all = all[len(all)-5:]
		}
		t.RecentMemories = all
	}
	if e.isEnabledLocked(FeatureIntent) && e.Intents != nil {
		if current, ok := e.Intents.Current(e.Age); ok {
			t.IntentMotivation = current.Motivation
			t.HasIntent = true
		}
	}
	e.LastReflection = stimulus
	return t
}

// Speak returns a dialogue phrase for category/lang via the full fallback
// chain (spec.md §4.7): material table -> built-in bank -> emotion fallback
// -> "...". Language selection uses the entity's own weights when lang is
// empty.
func (e *Entity) Speak(table material.DialogueTable, bank *dialogue.Bank, category, lang string, stream *rng.Stream) string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if lang == "" {
		lang = e.pickLanguageLocked(stream)
	}
	mood := dialogue.MoodFromValence(e.Emotion.Valence, e.Emotion.Arousal)
	return dialogue.Speak(table, bank, category, lang, mood, stream)
}

func (e *Entity) pickLanguageLocked(stream *rng.Stream) string {
	if len(e.LanguageWeights) == 0 {
		return e.NativeLanguage
	}
	langs := make([]string, 0, len(e.LanguageWeights))
	weights := make([]float64, 0, len(e.LanguageWeights))
	for lang, w := range e.LanguageWeights {
		langs = append(langs, lang)
		weights = append(weights, w)
	}
	return langs[stream.WeightedPick(weights)]
}

// SendMessage appends a message to this entity's own outbox for the
// delivery phase (spec.md §4.17 step 6) to drain; it does not touch any
// other entity's inbox.
func (e *Entity) SendMessage(body string, sentAt float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.outbox = append(e.outbox, Message{FromID: e.ID, Body: body, SentAt: sentAt})
}

// DrainOutbox removes and returns every pending outbound message.
func (e *Entity) DrainOutbox() []Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := e.outbox
	e.outbox = nil
	return out
}

// Deliver appends an inbound message to this entity's inbox.
func (e *Entity) Deliver(m Message) {
	e.mu.Lock()
	defer e.mu.Unlock()
	m.Delivered = true
	e.inbox = append(e.inbox, m)
}

// ReadNextMessage pops the oldest undelivered-to-caller message, if any.
func (e *Entity) ReadNextMessage() (Message, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.inbox) == 0 {
		return Message{}, false
	}
	m := e.inbox[0]
	e.inbox = e.inbox[1:]
	return m, true
}

// HasUnreadMessages reports whether any inbox messages remain unread.
func (e *Entity) HasUnreadMessages() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.inbox) > 0
}

// TrimInbox drops inbox entries older than maxAge seconds, relative to now
// (spec.md §4.17 step 6: "inboxes trim older than 60 s").
func (e *Entity) TrimInbox(now, maxAge float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	kept := e.inbox[:0]
	for _, m := range e.inbox {
		if now-m.SentAt <= maxAge {
			kept = append(kept, m)
		}
	}
	e.inbox = kept
}
