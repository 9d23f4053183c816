package algo

import (
	"sort"

	"github.com/flowlens/flowlens/schema"
)

// RankBottlenecks sorts stage entries by bottleneck score in descending
// order. Ties break on higher mean time, then on stage name, so the ranking
// is deterministic across runs.
func RankBottlenecks(entries []schema.BottleneckEntry) []schema.BottleneckEntry {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		if entries[i].MeanTime != entries[j].MeanTime {
			return entries[i].MeanTime > entries[j].MeanTime
		}
		return entries[i].Stage < entries[j].Stage
	})
	return entries
}

// SortStuckItems orders items by days in stage, descending. The sort is
// stable so equal durations keep their original relative order.
func SortStuckItems(items []schema.StuckItem) []schema.StuckItem {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DaysInStage > items[j].DaysInStage
	})
	return items
}
