package worldmind

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateStatsEmpty(t *testing.T) {
	assert.Equal(t, Stats{}, CalculateStats(nil))
}

func TestCalculateStatsAverages(t *testing.T) {
	snaps := []Snapshot{
		{ID: "a", Age: 10, Energy: 1, Valence: 0.5, Memories: 2},
		{ID: "b", Age: 20, Energy: 0.5, Valence: -0.5, Memories: 3},
	}
	stats := CalculateStats(snaps)
	assert.Equal(t, 2, stats.EntityCount)
	assert.InDelta(t, 15, stats.AvgAge, 1e-9)
	assert.InDelta(t, 0.75, stats.AvgEnergy, 1e-9)
	assert.InDelta(t, 0, stats.AvgValence, 1e-9)
	assert.Equal(t, 5, stats.TotalMemories)
}

func TestDetectPatternsRequiresAtLeastTwo(t *testing.T) {
	assert.Empty(t, DetectPatterns([]Snapshot{{ID: "a"}}, DefaultThresholds()))
}

func TestDetectClusteringWhenClose(t *testing.T) {
	snaps := []Snapshot{
		{ID: "a", PosX: 0, PosY: 0},
		{ID: "b", PosX: 5, PosY: 0},
	}
	patterns := DetectPatterns(snaps, DefaultThresholds())
	found := false
	for _, p := range patterns {
		if p.Type == PatternClustering {
			found = true
			assert.Greater(t, p.Strength, 0.9)
		}
	}
	assert.True(t, found)
}

func TestDetectStillnessWhenSlow(t *testing.T) {
	snaps := []Snapshot{
		{ID: "a", VelX: 0, VelY: 0},
		{ID: "b", VelX: 0.1, VelY: 0},
	}
	patterns := DetectPatterns(snaps, DefaultThresholds())
	found := false
	for _, p := range patterns {
		if p.Type == PatternStillness {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDetectCollectiveEmotionAlwaysEmitted(t *testing.T) {
	snaps := []Snapshot{
		{ID: "a", Valence: 1, Arousal: 1, Dominance: 1},
		{ID: "b", Valence: 1, Arousal: 1, Dominance: 1},
	}
	patterns := DetectPatterns(snaps, DefaultThresholds())
	var ce *Pattern
	for i := range patterns {
		if patterns[i].Type == PatternCollectiveEmotion {
			ce = &patterns[i]
		}
	}
	assert.NotNil(t, ce)
	assert.InDelta(t, 1.0, ce.Strength, 1e-9)
}
