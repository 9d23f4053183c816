package core

import (
	"github.com/flowlens/flowlens/core/algo"
	"github.com/flowlens/flowlens/schema"
)

// StageStatisticsFor computes duration statistics for one stage over the
// shared population. An empty stage population yields zeroed statistics so
// downstream scoring can report "insufficient data" instead of failing.
func StageStatisticsFor(pop *Population, stage string) schema.StageStatistics {
	records := pop.stageRecords(stage)
	durations := make([]float64, 0, len(records))
	exceeding := 0
	threshold := pop.Options().ThresholdDays
	for _, r := range records {
		d := r.StageDuration(stage)
		durations = append(durations, d)
		if d > threshold {
			exceeding++
		}
	}

	return schema.StageStatistics{
		Stage:          stage,
		Mean:           algo.Mean(durations),
		Median:         algo.Median(durations),
		P95:            algo.Percentile(durations, 95),
		Max:            algo.Max(durations),
		Count:          len(durations),
		CountExceeding: exceeding,
	}
}

// AggregateStages computes statistics for every known stage.
func AggregateStages(pop *Population) map[string]schema.StageStatistics {
	stats := make(map[string]schema.StageStatistics, len(schema.AllStages))
	for _, stage := range schema.AllStages {
		stats[stage] = StageStatisticsFor(pop, stage)
	}
	return stats
}
