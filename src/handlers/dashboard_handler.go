package handlers

import (
	"net/http"

	"github.com/username/fxmonitor/src/logger"
	"github.com/username/fxmonitor/src/storage"
	"github.com/username/fxmonitor/src/utils"
)

type DashboardHandler struct {
	store *storage.Store
}

func NewDashboardHandler(store *storage.Store) *DashboardHandler {
	return &DashboardHandler{store: store}
}

// HandleGetConfig serves GET /api/dashboard/config for the default user,
// answering an empty object when nothing has been saved.
func (h *DashboardHandler) HandleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.store.GetDashboardConfig(defaultUserID)
	if err != nil {
		logger.L.Error("Error fetching dashboard config", "error", err)
		utils.SendJSONError(w, "Failed to get dashboard config", http.StatusInternalServerError)
		return
	}
	if cfg == nil {
		utils.WriteJSON(w, http.StatusOK, map[string]interface{}{})
		return
	}
	utils.WriteJSON(w, http.StatusOK, cfg)
}

type dashboardConfigRequest struct {
	ProductType   *string `json:"productType" validate:"omitempty"`
	LegalEntity   *string `json:"legalEntity" validate:"omitempty"`
	SourceSystem  *string `json:"sourceSystem" validate:"omitempty"`
	StartDate     *string `json:"startDate" validate:"omitempty"`
	EndDate       *string `json:"endDate" validate:"omitempty"`
	ThresholdMode *string `json:"thresholdMode" validate:"omitempty,oneof=group currency"`
	AnalysisRun   *bool   `json:"analysisRun" validate:"omitempty"`
}

// HandleUpdateConfig serves POST /api/dashboard/config, upserting the
// default user's config.
func (h *DashboardHandler) HandleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req dashboardConfigRequest
	if err := decodeAndValidate(r, &req); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	cfg, err := h.store.UpsertDashboardConfig(defaultUserID, storage.DashboardConfigUpdate{
		ProductType:   req.ProductType,
		LegalEntity:   req.LegalEntity,
		SourceSystem:  req.SourceSystem,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		ThresholdMode: req.ThresholdMode,
		AnalysisRun:   req.AnalysisRun,
	})
	if err != nil {
		logger.L.Error("Error updating dashboard config", "error", err)
		utils.SendJSONError(w, "Failed to update dashboard config", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, cfg)
}
