// Package worldmind implements the coarse-cadence population analytics layer
// (spec.md §4.15): aggregate statistics plus a small set of named pattern
// detectors over the current entity population.
package worldmind

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Snapshot is the minimal per-entity shape WorldMind needs: position,
// velocity, PAD state, memory/experience counters. Kept separate from
// internal/entity to avoid an import cycle.
type Snapshot struct {
	ID        string
	Age       float64
	Energy    float64
	VelX      float64
	VelY      float64
	PosX      float64
	PosY      float64
	Valence   float64
	Arousal   float64
	Dominance float64
	Memories  int
	Experiences int
}

// Stats is the aggregate population summary returned by calculate_stats.
type Stats struct {
	EntityCount     int
	AvgAge          float64
	AvgEnergy       float64
	TotalMemories   int
	TotalExperiences int
	AvgValence      float64
	AvgArousal      float64
	AvgDominance    float64
}

// CalculateStats computes the population aggregate. Empty input returns a
// zero Stats rather than dividing by zero.
func CalculateStats(snapshots []Snapshot) Stats {
	n := len(snapshots)
	if n == 0 {
		return Stats{}
	}

	ages := make([]float64, n)
	energies := make([]float64, n)
	valences := make([]float64, n)
	arousals := make([]float64, n)
	dominances := make([]float64, n)

	out := Stats{EntityCount: n}
	for i, s := range snapshots {
		ages[i] = s.Age
		energies[i] = s.Energy
		valences[i] = s.Valence
		arousals[i] = s.Arousal
		dominances[i] = s.Dominance
		out.TotalMemories += s.Memories
		out.TotalExperiences += s.Experiences
	}

	out.AvgAge = stat.Mean(ages, nil)
	out.AvgEnergy = stat.Mean(energies, nil)
	out.AvgValence = stat.Mean(valences, nil)
	out.AvgArousal = stat.Mean(arousals, nil)
	out.AvgDominance = stat.Mean(dominances, nil)
	return out
}

// PatternType names one of the detectable collective patterns.
type PatternType string

const (
	PatternClustering        PatternType = "clustering"
	PatternSynchronization    PatternType = "synchronization"
	PatternStillness          PatternType = "stillness"
	PatternCollectiveEmotion  PatternType = "collective_emotion"
)

// Pattern is a tagged pattern record: the entities involved and a strength
// in [0, 1].
type Pattern struct {
	Type     PatternType
	EntityIDs []string
	Strength float64
}

// Thresholds parameterizes the pattern detectors (θ in spec.md §4.15).
type Thresholds struct {
	ClusteringDistance       float64 // mean pairwise distance below this -> clustering
	SynchronizationVariance  float64 // velocity-direction variance below this -> sync
	StillnessSpeed           float64 // avg speed below this -> stillness
}

// DefaultThresholds returns reasonable defaults for a 2D world scaled in
// pixels.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ClusteringDistance:      120,
		SynchronizationVariance: 0.3,
		StillnessSpeed:          2,
	}
}

// DetectPatterns runs every detector over the full population and returns
// whichever patterns cross their threshold. The population is treated as a
// single candidate set per spec.md §4.15 — this is a "DBSCAN-like" grouping
// only in spirit: not a full density-clustering implementation, but a
// mean-pairwise-distance summary, matching the spec's explicit scope.
func DetectPatterns(snapshots []Snapshot, th Thresholds) []Pattern {
	if len(snapshots) < 2 {
		return nil
	}

	ids := make([]string, len(snapshots))
	for i, s := range snapshots {
		ids[i] = s.ID
	}

	var patterns []Pattern
	if p, ok := detectClustering(snapshots, ids, th); ok {
		patterns = append(patterns, p)
	}
	if p, ok := detectSynchronization(snapshots, ids, th); ok {
		patterns = append(patterns, p)
	}
	if p, ok := detectStillness(snapshots, ids, th); ok {
		patterns = append(patterns, p)
	}
	patterns = append(patterns, detectCollectiveEmotion(snapshots, ids))
	return patterns
}

func detectClustering(snapshots []Snapshot, ids []string, th Thresholds) (Pattern, bool) {
	var distances []float64
	for i := 0; i < len(snapshots); i++ {
		for j := i + 1; j < len(snapshots); j++ {
			dx := snapshots[i].PosX - snapshots[j].PosX
			dy := snapshots[i].PosY - snapshots[j].PosY
			distances = append(distances, hypot(dx, dy))
		}
	}
	if len(distances) == 0 {
		return Pattern{}, false
	}
	mean := stat.Mean(distances, nil)
	if mean >= th.ClusteringDistance {
		return Pattern{}, false
	}
	strength := 1 - mean/th.ClusteringDistance
	return Pattern{Type: PatternClustering, EntityIDs: ids, Strength: clamp01(strength)}, true
}

func detectSynchronization(snapshots []Snapshot, ids []string, th Thresholds) (Pattern, bool) {
	headings := make([]float64, len(snapshots))
	for i, s := range snapshots {
		headings[i] = heading(s.VelX, s.VelY)
	}
	variance := stat.Variance(headings, nil)
	if variance >= th.SynchronizationVariance {
		return Pattern{}, false
	}
	strength := 1 - variance/th.SynchronizationVariance
	return Pattern{Type: PatternSynchronization, EntityIDs: ids, Strength: clamp01(strength)}, true
}

func detectStillness(snapshots []Snapshot, ids []string, th Thresholds) (Pattern, bool) {
	speeds := make([]float64, len(snapshots))
	for i, s := range snapshots {
		speeds[i] = hypot(s.VelX, s.VelY)
	}
	avg := stat.Mean(speeds, nil)
	if avg >= th.StillnessSpeed {
		return Pattern{}, false
	}
	strength := 1 - avg/th.StillnessSpeed
	return Pattern{Type: PatternStillness, EntityIDs: ids, Strength: clamp01(strength)}, true
}

func detectCollectiveEmotion(snapshots []Snapshot, ids []string) Pattern {
	valences := make([]float64, len(snapshots))
	arousals := make([]float64, len(snapshots))
	dominances := make([]float64, len(snapshots))
	for i, s := range snapshots {
		valences[i] = s.Valence
		arousals[i] = s.Arousal
		dominances[i] = s.Dominance
	}
	meanV := stat.Mean(valences, nil)
	meanA := stat.Mean(arousals, nil)
	meanD := stat.Mean(dominances, nil)
	magnitude := floats.Norm([]float64{meanV, meanA, meanD}, 2) / sqrt3
	return Pattern{Type: PatternCollectiveEmotion, EntityIDs: ids, Strength: clamp01(magnitude)}
}

const sqrt3 = 1.7320508075688772

func hypot(dx, dy float64) float64 {
	return math.Sqrt(dx*dx + dy*dy)
}

func heading(vx, vy float64) float64 {
	if vx == 0 && vy == 0 {
		return 0
	}
	return math.Atan2(vy, vx)
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
