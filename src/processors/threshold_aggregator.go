// Package processors holds the data transformations behind the dashboard:
// group-wise threshold aggregation, trade-file consolidation and the
// analysis calculators.
package processors

import (
	"strconv"

	"github.com/username/fxmonitor/src/models"
	"github.com/username/fxmonitor/src/utils"
)

// AggregateThresholdsByGroup folds currency-level threshold rows into one
// row per distinct OriginalGroup, in first-occurrence order. Each threshold
// column carries the running arithmetic mean over the group's currencies;
// values that fail to parse count as 0. Means are rounded to two decimals
// and rows get 1-based ids in emission order.
func AggregateThresholdsByGroup(thresholds []models.Threshold) []models.GroupThreshold {
	type groupAccumulator struct {
		original float64
		proposed float64
		adjusted float64
		count    int
	}

	accumulators := make(map[string]*groupAccumulator)
	var order []string

	for _, t := range thresholds {
		acc, ok := accumulators[t.OriginalGroup]
		if !ok {
			acc = &groupAccumulator{}
			accumulators[t.OriginalGroup] = acc
			order = append(order, t.OriginalGroup)
		}
		acc.count++
		acc.original = runningMean(acc.original, t.OriginalThreshold, acc.count)
		acc.proposed = runningMean(acc.proposed, t.ProposedThreshold, acc.count)
		acc.adjusted = runningMean(acc.adjusted, t.AdjustedThreshold, acc.count)
	}

	groups := make([]models.GroupThreshold, 0, len(order))
	for i, name := range order {
		acc := accumulators[name]
		groups = append(groups, models.GroupThreshold{
			ID:                int64(i + 1),
			Group:             name,
			OriginalThreshold: utils.RoundFloat(acc.original, 2),
			ProposedThreshold: utils.RoundFloat(acc.proposed, 2),
			AdjustedThreshold: utils.RoundFloat(acc.adjusted, 2),
		})
	}
	return groups
}

// runningMean folds one more observation into an incremental mean. count is
// the number of observations including this one.
func runningMean(mean float64, rawValue string, count int) float64 {
	value, err := strconv.ParseFloat(rawValue, 64)
	if err != nil {
		value = 0
	}
	return (mean*float64(count-1) + value) / float64(count)
}
