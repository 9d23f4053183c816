package core

import (
	"testing"

	"github.com/flowlens/flowlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStageStatisticsFor tests per-stage aggregation over the population.
func TestStageStatisticsFor(t *testing.T) {
	records := []schema.IssueFlowRecord{
		{IssueKey: "A", Status: "In Progress", Stages: map[string]float64{"in_progress": 10.0}},
		{IssueKey: "B", Status: "In Progress", Stages: map[string]float64{"in_progress": 20.0}},
		{IssueKey: "C", Status: "In Progress", Stages: map[string]float64{"in_progress": 30.0}},
		{IssueKey: "D", Status: "In Progress", Stages: map[string]float64{"in_uat": 5.0}},
	}
	pop := NewPopulation(records, ScopeFilter{}, schema.TimeWindow{}, AnalysisOptions{ThresholdDays: 15})

	t.Run("populated stage", func(t *testing.T) {
		stats := StageStatisticsFor(pop, "in_progress")
		assert.Equal(t, "in_progress", stats.Stage)
		assert.Equal(t, 3, stats.Count)
		assert.InDelta(t, 20.0, stats.Mean, 1e-9)
		assert.InDelta(t, 20.0, stats.Median, 1e-9)
		assert.InDelta(t, 30.0, stats.Max, 1e-9)
		assert.Equal(t, 2, stats.CountExceeding)
	})

	t.Run("exceeding count is strictly greater than threshold", func(t *testing.T) {
		exact := NewPopulation([]schema.IssueFlowRecord{
			{IssueKey: "E", Status: "In Progress", Stages: map[string]float64{"in_progress": 15.0}},
		}, ScopeFilter{}, schema.TimeWindow{}, AnalysisOptions{ThresholdDays: 15})
		stats := StageStatisticsFor(exact, "in_progress")
		assert.Equal(t, 0, stats.CountExceeding)
	})

	t.Run("unvisited stage yields zeroed statistics", func(t *testing.T) {
		stats := StageStatisticsFor(pop, "deployment")
		assert.Equal(t, schema.StageStatistics{Stage: "deployment"}, stats)
	})

	t.Run("max always belongs to a selected record", func(t *testing.T) {
		stats := StageStatisticsFor(pop, "in_progress")
		found := false
		for _, r := range pop.stageRecords("in_progress") {
			if r.StageDuration("in_progress") == stats.Max {
				found = true
			}
		}
		assert.True(t, found)
	})
}

func TestAggregateStages(t *testing.T) {
	records := []schema.IssueFlowRecord{
		{IssueKey: "A", Status: "In Progress", Stages: map[string]float64{"in_progress": 10.0, "in_review": 2.0}},
	}
	pop := NewPopulation(records, ScopeFilter{}, schema.TimeWindow{}, AnalysisOptions{})

	stats := AggregateStages(pop)
	require.Len(t, stats, len(schema.AllStages))
	for _, stage := range schema.AllStages {
		assert.Contains(t, stats, stage)
	}
	assert.Equal(t, 1, stats["in_progress"].Count)
	assert.Equal(t, 0, stats["backlog"].Count)
}
