package services

import (
	"fmt"

	"github.com/patrickmn/go-cache"
	"github.com/username/fxmonitor/src/logger"
	"github.com/username/fxmonitor/src/models"
	"github.com/username/fxmonitor/src/processors"
	"github.com/username/fxmonitor/src/storage"
)

const ckDeviationBuckets = "analysis_deviation_buckets_%s"

// invalidateAnalysisCache drops all cached analysis results. Called by the
// services that mutate thresholds or trades; the next read recomputes.
func invalidateAnalysisCache(c *cache.Cache) {
	for _, mode := range []string{"group", "currency"} {
		c.Delete(fmt.Sprintf(ckDeviationBuckets, mode))
	}
}

type analysisServiceImpl struct {
	store         *storage.Store
	analysisCache *cache.Cache
}

func NewAnalysisService(store *storage.Store, analysisCache *cache.Cache) AnalysisService {
	return &analysisServiceImpl{
		store:         store,
		analysisCache: analysisCache,
	}
}

// RunManualAnalysis checks the manual-mode preconditions (uploaded trade
// files and thresholds must both exist) and produces the analysis payload.
func (s *analysisServiceImpl) RunManualAnalysis(thresholdMode string) (models.AnalysisResults, error) {
	files, err := s.store.ListFileUploads()
	if err != nil {
		return models.AnalysisResults{}, err
	}
	if len(files) == 0 {
		return models.AnalysisResults{}, ErrNoTradeFiles
	}

	thresholds, err := s.store.ListThresholds()
	if err != nil {
		return models.AnalysisResults{}, err
	}
	if len(thresholds) == 0 {
		return models.AnalysisResults{}, ErrNoThresholds
	}

	buckets := processors.CalculateDeviationBuckets(nil, thresholds, thresholdMode)
	results := models.AnalysisResults{
		DeviationBuckets: buckets,
		ImpactSummary:    processors.CalculateImpactSummary(),
	}
	logger.L.Info("Manual analysis run complete", "thresholdMode", thresholdMode, "fileCount", len(files), "thresholdCount", len(thresholds))
	return results, nil
}

// DeviationBuckets returns the bucket grid for the given threshold mode,
// cached until thresholds or trades change.
func (s *analysisServiceImpl) DeviationBuckets(thresholdMode string) ([]models.DeviationBucket, error) {
	cacheKey := fmt.Sprintf(ckDeviationBuckets, thresholdMode)
	if cached, found := s.analysisCache.Get(cacheKey); found {
		logger.L.Debug("Cache hit for deviation buckets", "thresholdMode", thresholdMode)
		return cached.([]models.DeviationBucket), nil
	}

	trades, err := s.store.ListTrades(models.TradeFilters{})
	if err != nil {
		return nil, err
	}
	thresholds, err := s.store.ListThresholds()
	if err != nil {
		return nil, err
	}

	buckets := processors.CalculateDeviationBuckets(trades, thresholds, thresholdMode)
	s.analysisCache.Set(cacheKey, buckets, cache.DefaultExpiration)
	return buckets, nil
}

func (s *analysisServiceImpl) ThresholdImpact(thresholdID int64, newThreshold float64) (models.ThresholdImpact, error) {
	trades, err := s.store.ListTrades(models.TradeFilters{})
	if err != nil {
		return models.ThresholdImpact{}, err
	}
	thresholds, err := s.store.ListThresholds()
	if err != nil {
		return models.ThresholdImpact{}, err
	}
	return processors.CalculateThresholdImpact(trades, thresholds, thresholdID, newThreshold), nil
}
