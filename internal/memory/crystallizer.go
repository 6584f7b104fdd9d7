package memory

// Crystal is a consolidated long-term memory, immune to ordinary decay
// (spec.md §4.11).
type Crystal struct {
	Type           Type
	Subject        Subject
	Strength       float64
	Count          int
	FirstSeen      float64
	LastReinforced float64
}

type crystalKey struct {
	Type    Type
	Subject Subject
}

// Crystallizer groups repeated memories by (type, subject) and promotes a
// group to a Crystal once it crosses the occurrence/strength thresholds.
// Existing crystals are reinforced rather than duplicated.
type Crystallizer struct {
	minOccurrences int
	minStrength    float64
	maxCrystals    int
	crystals       map[crystalKey]*Crystal
}

// NewCrystallizer creates a Crystallizer with the given thresholds.
func NewCrystallizer(minOccurrences int, minStrength float64, maxCrystals int) *Crystallizer {
	return &Crystallizer{
		minOccurrences: minOccurrences,
		minStrength:    minStrength,
		maxCrystals:    maxCrystals,
		crystals:       make(map[crystalKey]*Crystal),
	}
}

// Consolidate scans buffered memories, grouping by (type, subject), and
// crystallizes or reinforces groups meeting the thresholds. It never
// mutates the source buffer.
func (c *Crystallizer) Consolidate(memories []Memory, now float64) {
	type group struct {
		count    int
		strength float64
		first    float64
	}
	groups := make(map[crystalKey]*group)
	for _, m := range memories {
		k := crystalKey{Type: m.Type, Subject: m.Subject}
		g, ok := groups[k]
		if !ok {
			g = &group{first: m.Timestamp}
			groups[k] = g
		}
		g.count++
		g.strength += m.Salience
		if m.Timestamp < g.first {
			g.first = m.Timestamp
		}
	}

	for k, g := range groups {
		if g.count < c.minOccurrences || g.strength < c.minStrength {
			continue
		}
		if existing, ok := c.crystals[k]; ok {
			existing.Strength = (existing.Strength*float64(existing.Count) + g.strength) /
				float64(existing.Count+g.count)
			existing.Count += g.count
			existing.LastReinforced = now
			continue
		}
		c.crystals[k] = &Crystal{
			Type:           k.Type,
			Subject:        k.Subject,
			Strength:       g.strength / float64(g.count),
			Count:          g.count,
			FirstSeen:      g.first,
			LastReinforced: now,
		}
	}

	c.pruneToCapacity()
}

// pruneToCapacity removes the single weakest crystal whenever the store
// exceeds maxCrystals, one at a time, so repeated small overflows converge.
func (c *Crystallizer) pruneToCapacity() {
	for len(c.crystals) > c.maxCrystals {
		var weakestKey crystalKey
		weakestStrength := 2.0 // above any valid strength
		first := true
		for k, cr := range c.crystals {
			if first || cr.Strength < weakestStrength {
				weakestKey = k
				weakestStrength = cr.Strength
				first = false
			}
		}
		delete(c.crystals, weakestKey)
	}
}

// Crystals returns a copy of all current crystals.
func (c *Crystallizer) Crystals() []Crystal {
	out := make([]Crystal, 0, len(c.crystals))
	for _, cr := range c.crystals {
		out = append(out, *cr)
	}
	return out
}

// Count returns the number of stored crystals.
func (c *Crystallizer) Count() int { return len(c.crystals) }
