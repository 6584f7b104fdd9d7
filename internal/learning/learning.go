// Package learning implements the LearningSystem sub-aggregate (spec.md §3):
// stimulus/response patterns an entity picks up and eventually forgets if
// they go stale.
package learning

// Pattern is a single learned trigger/response association.
type Pattern struct {
	Trigger    string
	Response   string
	Confidence float64
	LearnedAt  float64
	LastSeen   float64
}

// System is an entity's full set of learned patterns.
type System struct {
	patterns []Pattern
}

// NewSystem creates an empty LearningSystem.
func NewSystem() *System {
	return &System{}
}

// Learn records a newly observed pattern, or refreshes an existing one with
// the same trigger/response by averaging its confidence with the new
// observation's and taking the new observation's LastSeen.
func (s *System) Learn(p Pattern) {
	for i := range s.patterns {
		if s.patterns[i].Trigger == p.Trigger && s.patterns[i].Response == p.Response {
			s.patterns[i].Confidence = (s.patterns[i].Confidence + p.Confidence) / 2
			s.patterns[i].LastSeen = p.LastSeen
			return
		}
	}
	s.patterns = append(s.patterns, p)
}

// ForgetOld drops every pattern whose LastSeen is more than maxAge seconds
// before now (spec.md §4.17 step 8: "learning.forget_old(5 min)").
func (s *System) ForgetOld(now, maxAge float64) {
	kept := s.patterns[:0]
	for _, p := range s.patterns {
		if now-p.LastSeen <= maxAge {
			kept = append(kept, p)
		}
	}
	s.patterns = kept
}

// Count returns the number of patterns currently retained.
func (s *System) Count() int { return len(s.patterns) }

// All returns a copy of every retained pattern, for persistence and
// reflection.
func (s *System) All() []Pattern {
	out := make([]Pattern, len(s.patterns))
	copy(out, s.patterns)
	return out
}

// Load replaces the system's contents, for snapshot restore.
func (s *System) Load(patterns []Pattern) {
	s.patterns = append([]Pattern(nil), patterns...)
}

// Suggest returns the highest-confidence pattern matching trigger, if any.
func (s *System) Suggest(trigger string) (Pattern, bool) {
	best := Pattern{}
	found := false
	for _, p := range s.patterns {
		if p.Trigger != trigger {
			continue
		}
		if !found || p.Confidence > best.Confidence {
			best, found = p, true
		}
	}
	return best, found
}

// ForgetOldMaxAge is the default staleness window for ForgetOld (spec.md
// §4.17 step 8: "5 min").
const ForgetOldMaxAge = 5 * 60.0
