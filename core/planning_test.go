package core

import (
	"testing"

	"github.com/flowlens/flowlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commitment(key string, committed, uncommitted, delivered string) schema.PICommitmentRecord {
	return schema.PICommitmentRecord{
		IssueKey:           key,
		ART:                "SAART",
		Team:               "blue",
		PI:                 "26Q1",
		PlannedCommitted:   schema.NewFlexBool(committed),
		PlannedUncommitted: schema.NewFlexBool(uncommitted),
		PLCDelivery:        schema.NewFlexBool(delivered),
	}
}

// TestCalculatePlanningAccuracy tests the committed/uncommitted partition
// and the delivered ratio.
func TestCalculatePlanningAccuracy(t *testing.T) {
	t.Run("basic accuracy", func(t *testing.T) {
		records := []schema.PICommitmentRecord{
			commitment("A", "1", "0", "1"),
			commitment("B", "1", "0", "1"),
			commitment("C", "1", "0", "1"),
			commitment("D", "1", "0", "1"),
			commitment("E", "1", "0", "0"),
			commitment("F", "0", "1", "1"),
		}
		result := CalculatePlanningAccuracy(records)
		assert.Equal(t, 5, result.CommittedCount)
		assert.Equal(t, 1, result.UncommittedCount)
		assert.Equal(t, 4, result.DeliveredCount)
		assert.InDelta(t, 80.0, result.Accuracy, 1e-9)
	})

	t.Run("both flags set counts as committed only", func(t *testing.T) {
		records := []schema.PICommitmentRecord{
			commitment("A", "1", "1", "1"),
		}
		result := CalculatePlanningAccuracy(records)
		assert.Equal(t, 1, result.CommittedCount)
		assert.Equal(t, 0, result.UncommittedCount)
	})

	t.Run("neither flag set counts nowhere", func(t *testing.T) {
		records := []schema.PICommitmentRecord{
			commitment("A", "0", "0", "1"),
		}
		result := CalculatePlanningAccuracy(records)
		assert.Equal(t, schema.PlanningAccuracy{}, result)
	})

	t.Run("zero committed yields zero accuracy", func(t *testing.T) {
		records := []schema.PICommitmentRecord{
			commitment("A", "0", "1", "1"),
			commitment("B", "0", "1", "0"),
		}
		result := CalculatePlanningAccuracy(records)
		assert.Equal(t, 0, result.CommittedCount)
		assert.Zero(t, result.Accuracy)
	})

	t.Run("uncommitted delivery does not inflate accuracy", func(t *testing.T) {
		records := []schema.PICommitmentRecord{
			commitment("A", "1", "0", "0"),
			commitment("B", "0", "1", "1"),
			commitment("C", "0", "1", "1"),
		}
		result := CalculatePlanningAccuracy(records)
		assert.Equal(t, 0, result.DeliveredCount)
		assert.Zero(t, result.Accuracy)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, schema.PlanningAccuracy{}, CalculatePlanningAccuracy(nil))
	})
}

// TestFilterCommitments tests scope filtering on commitment records.
func TestFilterCommitments(t *testing.T) {
	records := []schema.PICommitmentRecord{
		commitment("A", "1", "0", "1"),
		{IssueKey: "X", ART: "OTHERART", Team: "green", PI: "25Q4"},
	}

	t.Run("scope match is case-insensitive", func(t *testing.T) {
		filtered := FilterCommitments(records, ScopeFilter{ARTs: []string{"saart"}})
		require.Len(t, filtered, 1)
		assert.Equal(t, "A", filtered[0].IssueKey)
	})

	t.Run("empty scope keeps all", func(t *testing.T) {
		assert.Len(t, FilterCommitments(records, ScopeFilter{}), 2)
	})

	t.Run("pi axis filters", func(t *testing.T) {
		filtered := FilterCommitments(records, ScopeFilter{PIs: []string{"25Q4"}})
		require.Len(t, filtered, 1)
		assert.Equal(t, "X", filtered[0].IssueKey)
	})
}
