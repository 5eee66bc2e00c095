package handlers

import (
	"fmt"
	"net/http"

	"github.com/username/fxmonitor/src/logger"
	"github.com/username/fxmonitor/src/models"
	"github.com/username/fxmonitor/src/services"
	"github.com/username/fxmonitor/src/utils"
)

type ExportHandler struct {
	tradeService     services.TradeService
	thresholdService services.ThresholdService
}

func NewExportHandler(tradeService services.TradeService, thresholdService services.ThresholdService) *ExportHandler {
	return &ExportHandler{
		tradeService:     tradeService,
		thresholdService: thresholdService,
	}
}

// HandleExport serves GET /api/export/{type} with type alerts or
// thresholds, rendering the corresponding table as a CSV attachment.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	exportType := r.PathValue("type")

	var csv string
	var filename string
	switch exportType {
	case "alerts":
		trades, err := h.tradeService.GetTrades(models.TradeFilters{})
		if err != nil {
			logger.L.Error("Error fetching trades for export", "error", err)
			utils.SendJSONError(w, "Failed to export data", http.StatusInternalServerError)
			return
		}
		csv = utils.StructsToCSV(trades)
		filename = "alerts_export.csv"
	case "thresholds":
		thresholds, err := h.thresholdService.GetCurrencyThresholds()
		if err != nil {
			logger.L.Error("Error fetching thresholds for export", "error", err)
			utils.SendJSONError(w, "Failed to export data", http.StatusInternalServerError)
			return
		}
		csv = utils.StructsToCSV(thresholds)
		filename = "thresholds_export.csv"
	default:
		utils.SendJSONError(w, "Invalid export type", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csv)); err != nil {
		logger.L.Error("Error writing CSV export", "type", exportType, "error", err)
	}
}
