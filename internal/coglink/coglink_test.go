package coglink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeRegistry struct {
	tables map[string]*Table
}

func newFakeRegistry(ids ...string) *fakeRegistry {
	r := &fakeRegistry{tables: make(map[string]*Table)}
	for _, id := range ids {
		r.tables[id] = NewTable()
	}
	return r
}

func (r *fakeRegistry) LinkTable(id string) (*Table, bool) {
	t, ok := r.tables[id]
	return t, ok
}

func TestConnectAndReinforceSaturates(t *testing.T) {
	tbl := NewTable()
	tbl.Connect("e2", 0.9, false, 0)
	tbl.Reinforce("e2", 0.5, 1)
	assert.Equal(t, 1.0, tbl.StrengthOf("e2"))
}

func TestDecayRemovesAtZero(t *testing.T) {
	tbl := NewTable()
	tbl.Connect("e2", 0.05, false, 0)
	tbl.Decay(1, 0.1)
	assert.False(t, tbl.IsConnected("e2"))
}

func TestConnectBidirectionalCreatesMirror(t *testing.T) {
	reg := newFakeRegistry("a", "b")
	ok := ConnectBidirectional(reg, "a", "b", 0.7, 0)
	assert.True(t, ok)

	ta, _ := reg.LinkTable("a")
	tb, _ := reg.LinkTable("b")
	assert.True(t, ta.IsConnected("b"))
	assert.True(t, tb.IsConnected("a"))
}

func TestEnsureMirrorsRepairsMissingReverse(t *testing.T) {
	reg := newFakeRegistry("a", "b")
	ta, _ := reg.LinkTable("a")
	ta.Connect("b", 0.6, true, 0)
	// b->a deliberately missing, simulating a restore gap.

	repaired := EnsureMirrors(reg, []string{"a", "b"}, 5)
	assert.Equal(t, 1, repaired)

	tb, _ := reg.LinkTable("b")
	assert.True(t, tb.IsConnected("a"))
}

func TestGetConnectedIDs(t *testing.T) {
	tbl := NewTable()
	tbl.Connect("x", 0.5, false, 0)
	tbl.Connect("y", 0.5, false, 0)
	ids := tbl.GetConnectedIDs()
	assert.Len(t, ids, 2)
}
