// Package coglink implements CognitiveLinks: directed, weighted
// entity-to-entity edges along which signals and memories may flow under
// trust gates (spec.md §4.6, §3).
package coglink

// Link is a directed edge to a target entity.
type Link struct {
	TargetID       string
	Strength       float64
	LastReinforced float64
	Bidirectional  bool
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Table is one entity's cognitive-link map, keyed by target id.
type Table struct {
	links map[string]*Link
}

// NewTable creates an empty cognitive-link table.
func NewTable() *Table {
	return &Table{links: make(map[string]*Link)}
}

// Connect creates or updates a link to target with the given strength and
// bidirectionality, at time now.
func (t *Table) Connect(target string, strength float64, bidirectional bool, now float64) {
	t.links[target] = &Link{
		TargetID:       target,
		Strength:       clamp01(strength),
		LastReinforced: now,
		Bidirectional:  bidirectional,
	}
}

// Reinforce increases the strength of the link to target by amount,
// saturating at 1. A no-op if no such link exists.
func (t *Table) Reinforce(target string, amount, now float64) {
	l, ok := t.links[target]
	if !ok {
		return
	}
	l.Strength = clamp01(l.Strength + amount)
	l.LastReinforced = now
}

// Decay applies dt*rate decay to every link and removes any that reach
// zero or below.
func (t *Table) Decay(dt, rate float64) {
	drop := dt * rate
	for k, l := range t.links {
		l.Strength -= drop
		if l.Strength <= 0 {
			delete(t.links, k)
		}
	}
}

// IsConnected reports whether a link to target exists.
func (t *Table) IsConnected(target string) bool {
	_, ok := t.links[target]
	return ok
}

// StrengthOf returns the strength of the link to target, or 0 if absent.
func (t *Table) StrengthOf(target string) float64 {
	if l, ok := t.links[target]; ok {
		return l.Strength
	}
	return 0
}

// Get returns the link to target, if any.
func (t *Table) Get(target string) (Link, bool) {
	l, ok := t.links[target]
	if !ok {
		return Link{}, false
	}
	return *l, true
}

// Remove deletes the link to target, if present.
func (t *Table) Remove(target string) {
	delete(t.links, target)
}

// GetConnectedIDs returns every target id this table currently links to.
func (t *Table) GetConnectedIDs() []string {
	out := make([]string, 0, len(t.links))
	for id := range t.links {
		out = append(out, id)
	}
	return out
}

// Len returns the number of links currently held.
func (t *Table) Len() int { return len(t.links) }

// All returns a copy of every link in the table.
func (t *Table) All() []Link {
	out := make([]Link, 0, len(t.links))
	for _, l := range t.links {
		out = append(out, *l)
	}
	return out
}

// Registry resolves an entity id to its cognitive-link Table, letting
// world-level code form bidirectional mirrors without entities holding
// pointers to one another (spec.md §9).
type Registry interface {
	LinkTable(entityID string) (*Table, bool)
}

// ConnectBidirectional creates mirrored single-direction links on both
// endpoints: a->b and b->a, each owned by its own entity's Table, per
// spec.md §4.6 ("no shared mutable edge object").
func ConnectBidirectional(reg Registry, a, b string, strength, now float64) bool {
	ta, ok := reg.LinkTable(a)
	if !ok {
		return false
	}
	tb, ok := reg.LinkTable(b)
	if !ok {
		return false
	}
	ta.Connect(b, strength, true, now)
	tb.Connect(a, strength, true, now)
	return true
}

// EnsureMirrors walks every entity's links and creates the missing reverse
// link for any bidirectional edge lacking one. Used after restore
// (spec.md §7: "Bidirectional link missing mirror on restore: the loader
// reconstructs the mirror; warn but proceed") and by the invariant sweep.
func EnsureMirrors(reg Registry, ids []string, now float64) (repaired int) {
	for _, id := range ids {
		table, ok := reg.LinkTable(id)
		if !ok {
			continue
		}
		for _, l := range table.All() {
			if !l.Bidirectional {
				continue
			}
			other, ok := reg.LinkTable(l.TargetID)
			if !ok {
				continue
			}
			if !other.IsConnected(id) {
				other.Connect(id, l.Strength, true, now)
				repaired++
			}
		}
	}
	return repaired
}
