package handlers

import (
	"errors"
	"net/http"

	"github.com/username/fxmonitor/src/logger"
	"github.com/username/fxmonitor/src/services"
	"github.com/username/fxmonitor/src/utils"
)

type AnalysisHandler struct {
	analysisService services.AnalysisService
}

func NewAnalysisHandler(service services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: service}
}

type analysisRunRequest struct {
	DataSourceMode string `json:"dataSourceMode" validate:"required"`
	ThresholdMode  string `json:"thresholdMode" validate:"omitempty,oneof=group currency"`
}

// HandleRunAnalysis serves POST /api/analysis/run. Only manual mode is
// supported; it requires at least one uploaded trade file and a threshold
// set.
func (h *AnalysisHandler) HandleRunAnalysis(w http.ResponseWriter, r *http.Request) {
	var req analysisRunRequest
	if err := decodeAndValidate(r, &req); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.DataSourceMode != "manual" {
		utils.SendJSONError(w, "Invalid data source mode", http.StatusBadRequest)
		return
	}

	results, err := h.analysisService.RunManualAnalysis(req.ThresholdMode)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoTradeFiles):
			utils.SendJSONError(w, "No trade files uploaded", http.StatusBadRequest)
		case errors.Is(err, services.ErrNoThresholds):
			utils.SendJSONError(w, "No threshold file uploaded", http.StatusBadRequest)
		default:
			logger.L.Error("Analysis run failed", "error", err)
			utils.SendJSONError(w, "Failed to run analysis", http.StatusInternalServerError)
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Analysis completed successfully",
		"results": results,
	})
}

type deviationBucketsRequest struct {
	ThresholdMode string `json:"thresholdMode" validate:"omitempty,oneof=group currency"`
}

// HandleDeviationBuckets serves POST /api/analysis/deviation-buckets.
func (h *AnalysisHandler) HandleDeviationBuckets(w http.ResponseWriter, r *http.Request) {
	var req deviationBucketsRequest
	if err := decodeAndValidate(r, &req); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	buckets, err := h.analysisService.DeviationBuckets(req.ThresholdMode)
	if err != nil {
		logger.L.Error("Error calculating deviation buckets", "error", err)
		utils.SendJSONError(w, "Failed to calculate deviation buckets", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, buckets)
}

type thresholdImpactRequest struct {
	ThresholdID  int64   `json:"thresholdId" validate:"required,gt=0"`
	NewThreshold float64 `json:"newThreshold" validate:"gte=0"`
}

// HandleThresholdImpact serves POST /api/analysis/impact.
func (h *AnalysisHandler) HandleThresholdImpact(w http.ResponseWriter, r *http.Request) {
	var req thresholdImpactRequest
	if err := decodeAndValidate(r, &req); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	impact, err := h.analysisService.ThresholdImpact(req.ThresholdID, req.NewThreshold)
	if err != nil {
		logger.L.Error("Error calculating threshold impact", "error", err)
		utils.SendJSONError(w, "Failed to calculate impact analysis", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, impact)
}
