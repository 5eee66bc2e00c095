package services

import (
	"fmt"
	"io"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/fxmonitor/src/logger"
	"github.com/username/fxmonitor/src/models"
	"github.com/username/fxmonitor/src/parsers"
	"github.com/username/fxmonitor/src/processors"
	"github.com/username/fxmonitor/src/storage"
)

type thresholdServiceImpl struct {
	store         *storage.Store
	parser        parsers.ThresholdParser
	analysisCache *cache.Cache
}

func NewThresholdService(store *storage.Store, parser parsers.ThresholdParser, analysisCache *cache.Cache) ThresholdService {
	return &thresholdServiceImpl{
		store:         store,
		parser:        parser,
		analysisCache: analysisCache,
	}
}

// ImportThresholdCSV parses the upload and replaces the entire threshold
// table with its rows. Returns the number of rows imported.
func (s *thresholdServiceImpl) ImportThresholdCSV(fileReader io.Reader) (int, error) {
	startTime := time.Now()

	thresholds, err := s.parser.Parse(fileReader)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	count, err := s.store.ReplaceThresholds(thresholds)
	if err != nil {
		return 0, err
	}

	invalidateAnalysisCache(s.analysisCache)
	logger.L.Info("Threshold CSV imported", "rowCount", count, "duration", time.Since(startTime))
	return count, nil
}

func (s *thresholdServiceImpl) GetCurrencyThresholds() ([]models.Threshold, error) {
	thresholds, err := s.store.ListThresholds()
	if err != nil {
		return nil, err
	}
	if thresholds == nil {
		thresholds = []models.Threshold{}
	}
	return thresholds, nil
}

// GetGroupThresholds recomputes the group view from the currency rows on
// every call; the view is never persisted.
func (s *thresholdServiceImpl) GetGroupThresholds() ([]models.GroupThreshold, error) {
	thresholds, err := s.store.ListThresholds()
	if err != nil {
		return nil, err
	}
	return processors.AggregateThresholdsByGroup(thresholds), nil
}

func (s *thresholdServiceImpl) UpdateThreshold(id int64, update storage.ThresholdUpdate) (models.Threshold, error) {
	threshold, err := s.store.UpdateThreshold(id, update)
	if err != nil {
		return models.Threshold{}, err
	}
	invalidateAnalysisCache(s.analysisCache)
	logger.L.Info("Threshold updated", "id", id)
	return threshold, nil
}
