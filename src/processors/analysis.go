package processors

import (
	"fmt"
	"math/rand"

	"github.com/username/fxmonitor/src/models"
)

// The calculators below are placeholders that return plausible-shaped random
// numbers instead of real deviation statistics. The real implementation
// would bucket trades by deviationPercent against the applicable threshold;
// trades and thresholds are accepted now so the signatures survive that
// change.

var bucketRanges = []string{"0.0-0.5", "0.5-1.0", "1.0-2.0", "2.0-5.0", "5.0+"}

var bucketCurrencies = []string{"USD", "EUR", "GBP", "JPY"}

// CalculateDeviationBuckets returns the deviation-bucket grid for the given
// threshold mode ("group" or "currency").
func CalculateDeviationBuckets(trades []models.Trade, thresholds []models.Threshold, thresholdMode string) []models.DeviationBucket {
	buckets := make([]models.DeviationBucket, 0, len(bucketRanges))
	for _, r := range bucketRanges {
		counts := make(map[string]int, len(bucketCurrencies))
		total := 0
		for _, ccy := range bucketCurrencies {
			n := rand.Intn(50)
			counts[ccy] = n
			total += n
		}
		buckets = append(buckets, models.DeviationBucket{Range: r, Counts: counts, Total: total})
	}
	return buckets
}

// CalculateThresholdImpact compares alert counts before and after moving a
// single threshold to newThreshold.
func CalculateThresholdImpact(trades []models.Trade, thresholds []models.Threshold, thresholdID int64, newThreshold float64) models.ThresholdImpact {
	currentAlerts := rand.Intn(100)
	newAlerts := rand.Intn(100)

	percentageChange := "0.00"
	if currentAlerts != 0 {
		percentageChange = fmt.Sprintf("%.2f", float64(newAlerts-currentAlerts)/float64(currentAlerts)*100)
	}

	return models.ThresholdImpact{
		CurrentAlerts:    currentAlerts,
		NewAlerts:        newAlerts,
		Difference:       newAlerts - currentAlerts,
		PercentageChange: percentageChange,
	}
}

// CalculateImpactSummary produces the headline alert-impact numbers for a
// manual analysis run.
func CalculateImpactSummary() models.ImpactSummary {
	return models.ImpactSummary{
		TotalAlerts:      rand.Intn(500),
		ReducedAlerts:    rand.Intn(200),
		PercentReduction: rand.Intn(40) + 10,
	}
}
