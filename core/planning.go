package core

import (
	"github.com/flowlens/flowlens/schema"
	"github.com/samber/lo"
)

// FilterCommitments applies the scope filter to commitment records using
// the same normalization rules as the flow-record filter.
func FilterCommitments(records []schema.PICommitmentRecord, scope ScopeFilter) []schema.PICommitmentRecord {
	arts := selectorSet(scope.ARTs)
	teams := selectorSet(scope.Teams)
	pis := selectorSet(scope.PIs)

	return lo.Filter(records, func(r schema.PICommitmentRecord, _ int) bool {
		return axisMatches(arts, r.ART) && axisMatches(teams, r.Team) && axisMatches(pis, r.PI)
	})
}

// CalculatePlanningAccuracy partitions commitment records into committed and
// uncommitted and computes the delivered-vs-committed ratio. An item with
// both flags set counts as committed only; an item with neither flag counts
// in neither partition. Accuracy over zero commitments is 0, not a division
// error.
func CalculatePlanningAccuracy(records []schema.PICommitmentRecord) schema.PlanningAccuracy {
	var result schema.PlanningAccuracy
	for _, r := range records {
		switch {
		case r.PlannedCommitted.Bool():
			result.CommittedCount++
			if r.PLCDelivery.Bool() {
				result.DeliveredCount++
			}
		case r.PlannedUncommitted.Bool():
			result.UncommittedCount++
		}
	}

	if result.CommittedCount > 0 {
		result.Accuracy = float64(result.DeliveredCount) / float64(result.CommittedCount) * 100
	}
	return result
}
