package algo

import (
	"testing"

	"github.com/flowlens/flowlens/schema"
	"github.com/stretchr/testify/assert"
)

// TestRankBottlenecks tests bottleneck ranking and tie-breaking.
func TestRankBottlenecks(t *testing.T) {
	t.Run("orders by score descending", func(t *testing.T) {
		entries := []schema.BottleneckEntry{
			{Stage: "analysis", Score: 20},
			{Stage: "in_uat", Score: 80},
			{Stage: "backlog", Score: 50},
		}
		ranked := RankBottlenecks(entries)
		assert.Equal(t, "in_uat", ranked[0].Stage)
		assert.Equal(t, "backlog", ranked[1].Stage)
		assert.Equal(t, "analysis", ranked[2].Stage)
	})

	t.Run("ties break on mean time then stage name", func(t *testing.T) {
		entries := []schema.BottleneckEntry{
			{Stage: "in_review", Score: 50, MeanTime: 10},
			{Stage: "in_progress", Score: 50, MeanTime: 25},
			{Stage: "deployment", Score: 50, MeanTime: 10},
		}
		ranked := RankBottlenecks(entries)
		assert.Equal(t, "in_progress", ranked[0].Stage)
		assert.Equal(t, "deployment", ranked[1].Stage)
		assert.Equal(t, "in_review", ranked[2].Stage)
	})
}

// TestSortStuckItems tests stuck-item ordering.
func TestSortStuckItems(t *testing.T) {
	t.Run("orders by days descending", func(t *testing.T) {
		items := []schema.StuckItem{
			{IssueKey: "A-1", DaysInStage: 31},
			{IssueKey: "A-2", DaysInStage: 90},
			{IssueKey: "A-3", DaysInStage: 45},
		}
		sorted := SortStuckItems(items)
		assert.Equal(t, "A-2", sorted[0].IssueKey)
		assert.Equal(t, "A-3", sorted[1].IssueKey)
		assert.Equal(t, "A-1", sorted[2].IssueKey)
	})

	t.Run("equal durations keep input order", func(t *testing.T) {
		items := []schema.StuckItem{
			{IssueKey: "B-1", DaysInStage: 40},
			{IssueKey: "B-2", DaysInStage: 40},
			{IssueKey: "B-3", DaysInStage: 40},
		}
		sorted := SortStuckItems(items)
		assert.Equal(t, "B-1", sorted[0].IssueKey)
		assert.Equal(t, "B-2", sorted[1].IssueKey)
		assert.Equal(t, "B-3", sorted[2].IssueKey)
	})
}
