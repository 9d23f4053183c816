package core

import (
	"github.com/flowlens/flowlens/core/algo"
	"github.com/flowlens/flowlens/schema"
)

// ScoreDimensions folds raw metric values into the five health dimensions
// using the mapping table. Each contributing metric is normalized against
// its ceiling, inverted when lower is better, and weighted within its
// dimension. Dimensions with no contributing metric score 0. The overall
// score is the arithmetic mean of the five dimension scores.
func ScoreDimensions(metrics map[string]float64, mappings []schema.DimensionMapping) (map[schema.Dimension]float64, float64) {
	type accum struct {
		weighted float64
		weight   float64
	}
	sums := make(map[schema.Dimension]*accum)

	for _, m := range mappings {
		value, ok := metrics[m.Metric]
		if !ok {
			continue
		}
		contribution := normalizeMetric(value, m)
		a := sums[m.Dimension]
		if a == nil {
			a = &accum{}
			sums[m.Dimension] = a
		}
		a.weighted += contribution * m.Weight
		a.weight += m.Weight
	}

	scores := make(map[schema.Dimension]float64, len(schema.AllDimensions))
	var total float64
	for _, dim := range schema.AllDimensions {
		score := 0.0
		if a, ok := sums[dim]; ok && a.weight > 0 {
			score = a.weighted / a.weight * 100
		}
		scores[dim] = score
		total += score
	}

	overall := total / float64(len(schema.AllDimensions))
	return scores, overall
}

// normalizeMetric maps a raw metric value to [0, 1] where 1 is healthiest.
func normalizeMetric(value float64, m schema.DimensionMapping) float64 {
	ceiling := m.Ceiling
	if ceiling <= 0 {
		ceiling = 100
	}
	n := algo.Clamp01(value / ceiling)
	if m.Direction == schema.LowerIsBetter {
		return 1 - n
	}
	return n
}
