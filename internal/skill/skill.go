// Package skill implements the SkillSystem sub-aggregate (spec.md §3): named
// proficiencies an entity strengthens by practice and loses through disuse.
package skill

import "github.com/livingworld/kernel/internal/rng"

// Skill is a single named proficiency, 0 (untrained) to 1 (mastered).
type Skill struct {
	Name          string
	Proficiency   float64
	LastPracticed float64
}

// System is an entity's full set of skills, keyed by name.
type System struct {
	skills    map[string]*Skill
	decayRate float64 // proficiency lost per second of disuse
}

// NewSystem creates an empty SkillSystem with the given per-second decay
// rate applied to every skill regardless of practice recency.
func NewSystem(decayRate float64) *System {
	return &System{skills: make(map[string]*Skill), decayRate: decayRate}
}

// Practice raises a skill's proficiency by amount, creating it at zero if
// unseen, and records now as its last-practiced time.
func (s *System) Practice(name string, amount, now float64) {
	sk, ok := s.skills[name]
	if !ok {
		sk = &Skill{Name: name}
		s.skills[name] = sk
	}
	sk.Proficiency = rng.Clamp01(sk.Proficiency + amount)
	sk.LastPracticed = now
}

// Decay applies disuse decay to every skill by dt seconds (spec.md §4.17
// step 8: "skills.decay(dt)").
func (s *System) Decay(dt float64) {
	if s.decayRate <= 0 {
		return
	}
	for _, sk := range s.skills {
		sk.Proficiency = rng.Clamp01(sk.Proficiency - s.decayRate*dt)
	}
}

// Proficiency returns a skill's current proficiency, or 0 if never practiced.
func (s *System) Proficiency(name string) float64 {
	if sk, ok := s.skills[name]; ok {
		return sk.Proficiency
	}
	return 0
}

// Count returns the number of distinct skills tracked.
func (s *System) Count() int { return len(s.skills) }

// All returns a stable-order-free snapshot of every tracked skill, for
// persistence and reflection.
func (s *System) All() []Skill {
	out := make([]Skill, 0, len(s.skills))
	for _, sk := range s.skills {
		out = append(out, *sk)
	}
	return out
}

// Load replaces the system's contents, for snapshot restore.
func (s *System) Load(skills []Skill) {
	s.skills = make(map[string]*Skill, len(skills))
	for i := range skills {
		sk := skills[i]
		s.skills[sk.Name] = &sk
	}
}
