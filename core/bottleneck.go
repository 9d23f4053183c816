package core

import (
	"github.com/flowlens/flowlens/core/algo"
	"github.com/flowlens/flowlens/schema"
)

// Weighting of the two bottleneck signals. The exceed fraction dominates:
// many items over threshold is a stronger constraint signal than a long
// mean driven by a single outlier.
const (
	exceedWeight = 0.6
	meanWeight   = 0.4
)

// DetectBottlenecks ranks stages by a bottleneck score in [0, 100]. The
// score combines the fraction of the stage population exceeding the
// threshold with the stage's mean duration relative to the slowest stage,
// and is monotonically increasing in both. Stages nobody visited score 0.
func DetectBottlenecks(stats map[string]schema.StageStatistics) []schema.BottleneckEntry {
	var maxMean float64
	for _, s := range stats {
		if s.Mean > maxMean {
			maxMean = s.Mean
		}
	}

	entries := make([]schema.BottleneckEntry, 0, len(stats))
	for _, s := range stats {
		entries = append(entries, schema.BottleneckEntry{
			Stage:          s.Stage,
			Score:          bottleneckScore(s, maxMean),
			MeanTime:       s.Mean,
			MaxTime:        s.Max,
			ItemsExceeding: s.CountExceeding,
		})
	}
	return algo.RankBottlenecks(entries)
}

// bottleneckScore computes one stage's score against the request-wide
// maximum mean.
func bottleneckScore(s schema.StageStatistics, maxMean float64) float64 {
	if s.Count == 0 {
		return 0
	}

	exceedFrac := float64(s.CountExceeding) / float64(s.Count)
	relMean := 0.0
	if maxMean > 0 {
		relMean = s.Mean / maxMean
	}

	raw := exceedWeight*algo.Clamp01(exceedFrac) + meanWeight*algo.Clamp01(relMean)
	return raw * 100
}
