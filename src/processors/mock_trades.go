package processors

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/username/fxmonitor/src/models"
)

var mockCcyPairs = []string{"EURUSD", "GBPUSD", "USDJPY", "USDCHF", "USDCAD", "EURGBP"}

// GenerateMockTrades fabricates trade observations for the requested scope.
// This stands in for the UAT/PROD trade API pull, which is out of scope; the
// deviations are uniform random in [0, 3)% and roughly 30% of trades carry
// an alert description.
func GenerateMockTrades(productType, legalEntity, sourceSystem string, count int) []models.Trade {
	trades := make([]models.Trade, 0, count)
	for i := 0; i < count; i++ {
		deviation := fmt.Sprintf("%.4f", rand.Float64()*3)
		tradeDate := time.Now().UTC().Add(-time.Duration(rand.Int63n(int64(30 * 24 * time.Hour))))

		t := models.Trade{
			TradeID:          fmt.Sprintf("TRD-2024-%06d", i+1),
			ProductType:      productType,
			LegalEntity:      legalEntity,
			SourceSystem:     sourceSystem,
			CcyPair:          mockCcyPairs[rand.Intn(len(mockCcyPairs))],
			TradeDate:        tradeDate.Format(time.RFC3339),
			DeviationPercent: deviation,
			IsOutOfScope:     rand.Float64() > 0.9,
		}
		if rand.Float64() > 0.7 {
			t.AlertDescription = "Price deviation exceeds threshold"
		}
		trades = append(trades, t)
	}
	return trades
}

// SampleThresholds returns the demo threshold set used to seed an empty
// database.
func SampleThresholds() []models.Threshold {
	return []models.Threshold{
		{LegalEntity: "GSLB", Currency: "USD", OriginalGroup: "Group 1", OriginalThreshold: "0.50", ProposedGroup: "Group 1", ProposedThreshold: "0.75", AdjustedGroup: "Group 1", AdjustedThreshold: "0.75"},
		{LegalEntity: "GSLB", Currency: "EUR", OriginalGroup: "Group 1", OriginalThreshold: "0.60", ProposedGroup: "Group 2", ProposedThreshold: "0.80", AdjustedGroup: "Group 2", AdjustedThreshold: "0.85"},
		{LegalEntity: "GSI", Currency: "GBP", OriginalGroup: "Group 2", OriginalThreshold: "0.45", ProposedGroup: "Group 1", ProposedThreshold: "0.70", AdjustedGroup: "Group 1", AdjustedThreshold: "0.70"},
		{LegalEntity: "GSI", Currency: "JPY", OriginalGroup: "Group 3", OriginalThreshold: "0.55", ProposedGroup: "Group 2", ProposedThreshold: "0.90", AdjustedGroup: "Group 2", AdjustedThreshold: "0.95"},
		{LegalEntity: "ALL", Currency: "CHF", OriginalGroup: "Group 1", OriginalThreshold: "0.50", ProposedGroup: "Group 1", ProposedThreshold: "0.75", AdjustedGroup: "Group 1", AdjustedThreshold: "0.75"},
	}
}

// SampleTrades fabricates the demo trade set used to seed an empty database.
func SampleTrades(count int) []models.Trade {
	legalEntities := []string{"GSLB", "GSI", "GS_BANK_USA"}
	sourceSystems := []string{"SLANG", "SIGMA", "SECDB"}

	trades := make([]models.Trade, 0, count)
	for i := 0; i < count; i++ {
		deviation := rand.Float64() * 3
		deviationStr := fmt.Sprintf("%.4f", deviation)
		tradeDate := time.Now().UTC().Add(-time.Duration(rand.Int63n(int64(30 * 24 * time.Hour))))

		t := models.Trade{
			TradeID:          fmt.Sprintf("TRD-2024-%06d", i+1),
			ProductType:      "FX_SPOT",
			LegalEntity:      legalEntities[rand.Intn(len(legalEntities))],
			SourceSystem:     sourceSystems[rand.Intn(len(sourceSystems))],
			CcyPair:          mockCcyPairs[rand.Intn(len(mockCcyPairs))],
			TradeDate:        tradeDate.Format(time.RFC3339),
			DeviationPercent: deviationStr,
			IsOutOfScope:     rand.Float64() > 0.95,
		}
		if deviation > 0.5 {
			t.AlertDescription = fmt.Sprintf("Deviation %s%% exceeds threshold", deviationStr)
		}
		trades = append(trades, t)
	}
	return trades
}
