package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/fxmonitor/src/config"
	"github.com/username/fxmonitor/src/database"
	"github.com/username/fxmonitor/src/logger"
	"github.com/username/fxmonitor/src/parsers"
	"github.com/username/fxmonitor/src/services"
	"github.com/username/fxmonitor/src/storage"
)

// newTestAPI wires the full handler stack against a throwaway database and
// returns a mux with the production routes.
func newTestAPI(t *testing.T) *http.ServeMux {
	t.Helper()
	logger.InitLogger("error")
	config.Cfg = &config.AppConfig{MaxUploadSizeBytes: 10 * 1024 * 1024}

	db := database.InitDB(filepath.Join(t.TempDir(), "test.db"))
	t.Cleanup(func() { db.Close() })
	store := storage.NewStore(db)
	analysisCache := cache.New(time.Minute, time.Minute)

	thresholdService := services.NewThresholdService(store, parsers.NewThresholdParser(), analysisCache)
	tradeService := services.NewTradeService(store, analysisCache)
	consolidationService := services.NewConsolidationService(store)
	analysisService := services.NewAnalysisService(store, analysisCache)

	thresholdHandler := NewThresholdHandler(thresholdService)
	tradeHandler := NewTradeHandler(tradeService, store)
	consolidationHandler := NewConsolidationHandler(consolidationService)
	analysisHandler := NewAnalysisHandler(analysisService)
	exportHandler := NewExportHandler(tradeService, thresholdService)
	dashboardHandler := NewDashboardHandler(store)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/dashboard/config", dashboardHandler.HandleGetConfig)
	mux.HandleFunc("POST /api/dashboard/config", dashboardHandler.HandleUpdateConfig)
	mux.HandleFunc("GET /api/trades", tradeHandler.HandleGetTrades)
	mux.HandleFunc("POST /api/trades/fetch", tradeHandler.HandleFetchTrades)
	mux.HandleFunc("GET /api/exceptions", tradeHandler.HandleGetExceptions)
	mux.HandleFunc("GET /api/thresholds", thresholdHandler.HandleGetThresholds)
	mux.HandleFunc("POST /api/thresholds/upload", thresholdHandler.HandleUploadThresholds)
	mux.HandleFunc("PATCH /api/thresholds/{id}", thresholdHandler.HandleUpdateThreshold)
	mux.HandleFunc("POST /api/analysis/run", analysisHandler.HandleRunAnalysis)
	mux.HandleFunc("POST /api/analysis/deviation-buckets", analysisHandler.HandleDeviationBuckets)
	mux.HandleFunc("POST /api/analysis/impact", analysisHandler.HandleThresholdImpact)
	mux.HandleFunc("GET /api/export/{type}", exportHandler.HandleExport)
	mux.HandleFunc("POST /api/files/upload", consolidationHandler.HandleUploadFiles)
	mux.HandleFunc("GET /api/files/uploads", consolidationHandler.HandleGetFileUploads)
	mux.HandleFunc("POST /api/consolidation/create", consolidationHandler.HandleCreateConsolidation)
	mux.HandleFunc("GET /api/consolidation/datasets", consolidationHandler.HandleGetDatasets)
	return mux
}

type uploadPart struct {
	filename string
	content  string
}

// multipartBody builds a multipart request body with the given files under
// one field name plus any extra form values.
func multipartBody(t *testing.T, fileField string, parts []uploadPart, extra map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, p := range parts {
		fw, err := writer.CreateFormFile(fileField, p.filename)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := fw.Write([]byte(p.content)); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	for k, v := range extra {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("failed to write form field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return body, writer.FormDataContentType()
}
