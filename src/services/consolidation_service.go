package services

import (
	"time"

	"github.com/username/fxmonitor/src/logger"
	"github.com/username/fxmonitor/src/models"
	"github.com/username/fxmonitor/src/processors"
	"github.com/username/fxmonitor/src/security/validation"
	"github.com/username/fxmonitor/src/storage"
)

// uploadDateLayouts are the date-token formats accepted in trade filenames.
var uploadDateLayouts = []string{"2006-01-02", "20060102", "02-01-2006"}

type consolidationServiceImpl struct {
	store *storage.Store
}

func NewConsolidationService(store *storage.Store) ConsolidationService {
	return &consolidationServiceImpl{store: store}
}

// RegisterUploads validates every filename in the batch before anything is
// persisted, so one bad filename rejects the whole batch. Valid batches are
// stored in one transaction and returned with assigned ids.
func (s *consolidationServiceImpl) RegisterUploads(files []UploadedFile, environment string) ([]models.FileUpload, error) {
	records := make([]models.FileUpload, 0, len(files))
	for _, f := range files {
		parts, err := validation.ParseTradeFilename(f.Filename)
		if err != nil {
			return nil, err
		}

		records = append(records, models.FileUpload{
			Filename:     f.Filename,
			ProductType:  parts.ProductType,
			LegalEntity:  parts.LegalEntity,
			SourceSystem: parts.SourceSystem,
			Environment:  environment,
			UploadDate:   normalizeUploadDate(parts.DateToken),
			FileSize:     f.Size,
			RecordCount:  f.RecordCount,
			Status:       "uploaded",
		})
	}

	saved, err := s.store.InsertFileUploads(records)
	if err != nil {
		return nil, err
	}
	logger.L.Info("Trade files registered", "count", len(saved), "environment", environment)
	return saved, nil
}

func (s *consolidationServiceImpl) GetFileUploads() ([]models.FileUpload, error) {
	files, err := s.store.ListFileUploads()
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []models.FileUpload{}
	}
	return files, nil
}

// CreateConsolidation runs the grouper over all stored file uploads and
// persists the resulting datasets.
func (s *consolidationServiceImpl) CreateConsolidation() ([]models.ConsolidatedDataset, error) {
	files, err := s.store.ListFileUploads()
	if err != nil {
		return nil, err
	}

	datasets := processors.BuildConsolidatedDatasets(files)
	saved := make([]models.ConsolidatedDataset, 0, len(datasets))
	for _, d := range datasets {
		record, err := s.store.InsertConsolidatedDataset(d)
		if err != nil {
			return nil, err
		}
		saved = append(saved, record)
	}
	logger.L.Info("Consolidation complete", "fileCount", len(files), "datasetCount", len(saved))
	return saved, nil
}

func (s *consolidationServiceImpl) GetDatasets() ([]models.ConsolidatedDataset, error) {
	datasets, err := s.store.ListConsolidatedDatasets()
	if err != nil {
		return nil, err
	}
	if datasets == nil {
		datasets = []models.ConsolidatedDataset{}
	}
	return datasets, nil
}

// normalizeUploadDate reduces a filename date token to an ISO date. Tokens
// that match none of the accepted layouts are kept verbatim so grouping
// stays deterministic.
func normalizeUploadDate(token string) string {
	for _, layout := range uploadDateLayouts {
		if t, err := time.Parse(layout, token); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return token
}
