// Package intent implements the IntentStack: a priority-ordered stack of
// goals with timeouts (spec.md §4.4), plus the precedence rule between
// explicit pushes, learning-suggested goals, and the autonomous generator
// (spec.md §9, resolved in SPEC_FULL.md §6).
package intent

import "sort"

// Source records who created an Intent, so ResolveTick can enforce
// precedence: explicit push > learning suggestion > autonomous generator.
type Source int

const (
	SourceExplicit Source = iota
	SourceLearning
	SourceAutonomous
)

// Intent is a single goal an entity is pursuing.
type Intent struct {
	ID         string
	Goal       string
	Target     string
	HasTarget  bool
	Motivation float64
	Priority   int
	Created    float64
	Timeout    float64 // seconds; HasTimeout false means no timeout
	HasTimeout bool
	Source     Source
}

// Expired reports whether the intent's timeout has elapsed as of now
// (world_time, never wall-clock — spec.md §5).
func (i Intent) Expired(now float64) bool {
	return i.HasTimeout && now >= i.Created+i.Timeout
}

// Stack is an insertion-ordered, stably-sorted-by-priority-descending
// collection of Intents.
type Stack struct {
	items []Intent
}

// NewStack creates an empty IntentStack.
func NewStack() *Stack { return &Stack{} }

// Push inserts an intent and restores priority order, stable on ties so
// insertion order is preserved among equal priorities.
func (s *Stack) Push(i Intent) {
	s.items = append(s.items, i)
	sort.SliceStable(s.items, func(a, b int) bool {
		return s.items[a].Priority > s.items[b].Priority
	})
}

// Pop removes and returns the current highest-priority intent, if any.
func (s *Stack) Pop() (Intent, bool) {
	if len(s.items) == 0 {
		return Intent{}, false
	}
	top := s.items[0]
	s.items = s.items[1:]
	return top, true
}

// Current returns the highest-priority non-expired intent without removing
// it.
func (s *Stack) Current(now float64) (Intent, bool) {
	for _, i := range s.items {
		if !i.Expired(now) {
			return i, true
		}
	}
	return Intent{}, false
}

// Remove deletes the first intent matching the given goal name.
func (s *Stack) Remove(goal string) bool {
	for idx, i := range s.items {
		if i.Goal == goal {
			s.items = append(s.items[:idx], s.items[idx+1:]...)
			return true
		}
	}
	return false
}

// RemoveTarget deletes every intent whose target is the given id.
func (s *Stack) RemoveTarget(targetID string) int {
	kept := s.items[:0]
	removed := 0
	for _, i := range s.items {
		if i.HasTarget && i.Target == targetID {
			removed++
			continue
		}
		kept = append(kept, i)
	}
	s.items = kept
	return removed
}

// Update drops every expired intent as of now.
func (s *Stack) Update(now float64) {
	kept := s.items[:0]
	for _, i := range s.items {
		if !i.Expired(now) {
			kept = append(kept, i)
		}
	}
	s.items = kept
}

// IsEmpty reports whether the stack holds no intents.
func (s *Stack) IsEmpty() bool { return len(s.items) == 0 }

// Count returns the number of intents currently on the stack.
func (s *Stack) Count() int { return len(s.items) }

// All returns a copy of every intent currently on the stack, in priority
// order.
func (s *Stack) All() []Intent {
	out := make([]Intent, len(s.items))
	copy(out, s.items)
	return out
}

// ResolveTick decides which of an explicit push, a learning suggestion, and
// an autonomously generated intent should actually be pushed this tick,
// applying the fixed precedence order: explicit > learning > autonomous.
// Any of the three candidates may be absent (ok=false).
func ResolveTick(explicit, learning, autonomous Intent, hasExplicit, hasLearning, hasAutonomous bool) (Intent, bool) {
	if hasExplicit {
		explicit.Source = SourceExplicit
		return explicit, true
	}
	if hasLearning {
		learning.Source = SourceLearning
		return learning, true
	}
	if hasAutonomous {
		autonomous.Source = SourceAutonomous
		return autonomous, true
	}
	return Intent{}, false
}
