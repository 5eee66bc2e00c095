package services

import (
	"github.com/patrickmn/go-cache"
	"github.com/username/fxmonitor/src/logger"
	"github.com/username/fxmonitor/src/models"
	"github.com/username/fxmonitor/src/processors"
	"github.com/username/fxmonitor/src/storage"
)

const (
	mockFetchTradeCount  = 100
	sampleSeedTradeCount = 150
)

type tradeServiceImpl struct {
	store         *storage.Store
	analysisCache *cache.Cache
}

func NewTradeService(store *storage.Store, analysisCache *cache.Cache) TradeService {
	return &tradeServiceImpl{
		store:         store,
		analysisCache: analysisCache,
	}
}

func (s *tradeServiceImpl) GetTrades(filters models.TradeFilters) ([]models.Trade, error) {
	trades, err := s.store.ListTrades(filters)
	if err != nil {
		return nil, err
	}
	if trades == nil {
		trades = []models.Trade{}
	}
	return trades, nil
}

// FetchTrades stands in for the real UAT/PROD trade API pull: it generates
// mock trades for the requested scope and stores them.
func (s *tradeServiceImpl) FetchTrades(productType, legalEntity, sourceSystem string) (int, error) {
	trades := processors.GenerateMockTrades(productType, legalEntity, sourceSystem, mockFetchTradeCount)
	count, err := s.store.BulkInsertTrades(trades)
	if err != nil {
		return 0, err
	}
	invalidateAnalysisCache(s.analysisCache)
	logger.L.Info("Mock trade fetch complete", "productType", productType, "legalEntity", legalEntity, "sourceSystem", sourceSystem, "count", count)
	return count, nil
}

// SeedSampleData loads the demo thresholds and trades into an empty store.
// Existing data is left untouched.
func (s *tradeServiceImpl) SeedSampleData() error {
	thresholds, err := s.store.ListThresholds()
	if err != nil {
		return err
	}
	if len(thresholds) == 0 {
		if _, err := s.store.ReplaceThresholds(processors.SampleThresholds()); err != nil {
			return err
		}
		logger.L.Info("Seeded sample thresholds")
	}

	trades, err := s.store.ListTrades(models.TradeFilters{})
	if err != nil {
		return err
	}
	if len(trades) == 0 {
		if _, err := s.store.BulkInsertTrades(processors.SampleTrades(sampleSeedTradeCount)); err != nil {
			return err
		}
		logger.L.Info("Seeded sample trades", "count", sampleSeedTradeCount)
	}
	return nil
}
