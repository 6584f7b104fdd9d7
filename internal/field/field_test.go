package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrengthIsHalfAtFullDuration(t *testing.T) {
	f := New("f1", "spec.sync_moment", 0, 0, 5000, 200)
	f.ElapsedMs = 5000
	assert.InDelta(t, 0.5, f.Strength(), 1e-9)
	_ = f.Update(0, nil)
	assert.True(t, f.Expired)
}

func TestUpdateMarksExpiredAtDuration(t *testing.T) {
	f := New("f1", "spec", 0, 0, 1000, 100)
	f.Update(999, nil)
	assert.False(t, f.Expired)
	f.Update(1, nil)
	assert.True(t, f.Expired)
}

func TestUpdateAppliesValenceEffectWithinRadius(t *testing.T) {
	f := New("f1", "spec", 0, 0, 5000, 100)
	f.Effects[ChannelValence] = 1.0

	effects := f.Update(0, []EntityPosition{{ID: "e1", X: 50, Y: 0}})
	assert.Len(t, effects, 1)
	assert.Greater(t, effects[0].ValenceDelta, 0.0)
}

func TestUpdateIgnoresOutOfRadius(t *testing.T) {
	f := New("f1", "spec", 0, 0, 5000, 10)
	effects := f.Update(0, []EntityPosition{{ID: "e1", X: 500, Y: 0}})
	assert.Empty(t, effects)
}

func TestOpacityEffectIsFloor(t *testing.T) {
	f := New("f1", "spec", 0, 0, 5000, 100)
	f.Effects[ChannelOpacity] = 0.8
	effects := f.Update(0, []EntityPosition{{ID: "e1", X: 0, Y: 0}})
	assert.True(t, effects[0].HasOpacity)
	assert.Equal(t, 0.8, effects[0].OpacityFloor)
}

func TestRelationshipBoostRequiresSource(t *testing.T) {
	f := New("f1", "spec", 0, 0, 5000, 100)
	f.Effects[ChannelRelationshipBoost] = 1.0
	effects := f.Update(0, []EntityPosition{{ID: "e1", X: 0, Y: 0}})
	assert.False(t, effects[0].HasRelationshipBoost)

	f.HasSource = true
	f.SourceEntityID = "src"
	effects = f.Update(0, []EntityPosition{{ID: "e1", X: 0, Y: 0}})
	assert.True(t, effects[0].HasRelationshipBoost)
	assert.Equal(t, "src", effects[0].SourceEntityID)
}

func TestRelationshipBoostScalesByChannelIntensity(t *testing.T) {
	f := New("f1", "spec", 0, 0, 5000, 100)
	f.Effects[ChannelRelationshipBoost] = 500
	f.HasSource = true
	f.SourceEntityID = "src"

	effects := f.Update(0, []EntityPosition{{ID: "e1", X: 0, Y: 0}})
	assert.InDelta(t, 500*1.0*0.001, effects[0].RelationshipBoost, 1e-9)
}
