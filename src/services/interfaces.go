package services

import (
	"errors"
	"io"

	"github.com/username/fxmonitor/src/models"
	"github.com/username/fxmonitor/src/storage"
)

var (
	// ErrParsingFailed wraps failures while reading an uploaded file.
	ErrParsingFailed = errors.New("parsing failed")
	// ErrNoTradeFiles is returned when an analysis run requires uploaded
	// trade files and none exist.
	ErrNoTradeFiles = errors.New("no trade files uploaded")
	// ErrNoThresholds is returned when an analysis run requires thresholds
	// and none have been uploaded.
	ErrNoThresholds = errors.New("no threshold file uploaded")
)

// ThresholdService owns the threshold table and its derived group view.
type ThresholdService interface {
	ImportThresholdCSV(fileReader io.Reader) (int, error)
	GetCurrencyThresholds() ([]models.Threshold, error)
	GetGroupThresholds() ([]models.GroupThreshold, error)
	UpdateThreshold(id int64, update storage.ThresholdUpdate) (models.Threshold, error)
}

// TradeService owns trade observations and the mock API fetch.
type TradeService interface {
	GetTrades(filters models.TradeFilters) ([]models.Trade, error)
	FetchTrades(productType, legalEntity, sourceSystem string) (int, error)
	SeedSampleData() error
}

// UploadedFile describes one file received in a consolidation upload batch.
type UploadedFile struct {
	Filename    string
	Size        int64
	RecordCount int64
}

// ConsolidationService owns trade-file uploads and dataset consolidation.
type ConsolidationService interface {
	RegisterUploads(files []UploadedFile, environment string) ([]models.FileUpload, error)
	GetFileUploads() ([]models.FileUpload, error)
	CreateConsolidation() ([]models.ConsolidatedDataset, error)
	GetDatasets() ([]models.ConsolidatedDataset, error)
}

// AnalysisService produces the (currently mock) deviation analysis views.
type AnalysisService interface {
	RunManualAnalysis(thresholdMode string) (models.AnalysisResults, error)
	DeviationBuckets(thresholdMode string) ([]models.DeviationBucket, error)
	ThresholdImpact(thresholdID int64, newThreshold float64) (models.ThresholdImpact, error)
}
