package core

import (
	"github.com/flowlens/flowlens/core/algo"
	"github.com/flowlens/flowlens/schema"
)

// StuckItemsForStage returns every record whose duration in the stage
// exceeds the request threshold. It reads the exact same stage population
// the aggregator used, so an item carrying the reported max duration is
// always present in the result; summary and itemized list cannot drift
// apart. Results are ordered by days in stage, descending, stable.
func StuckItemsForStage(pop *Population, stage string) []schema.StuckItem {
	threshold := pop.Options().ThresholdDays
	var items []schema.StuckItem
	for _, r := range pop.stageRecords(stage) {
		d := r.StageDuration(stage)
		if d <= threshold {
			continue
		}
		items = append(items, schema.StuckItem{
			IssueKey:    r.IssueKey,
			ART:         r.ART,
			Team:        r.Team,
			PI:          r.PI,
			Stage:       stage,
			DaysInStage: d,
			Status:      r.Status,
		})
	}
	return algo.SortStuckItems(items)
}

// StuckItems collects stuck items across all known stages, ordered by days
// in stage. One issue may appear once per stage it is stuck in.
func StuckItems(pop *Population) []schema.StuckItem {
	var items []schema.StuckItem
	for _, stage := range schema.AllStages {
		items = append(items, StuckItemsForStage(pop, stage)...)
	}
	return algo.SortStuckItems(items)
}
