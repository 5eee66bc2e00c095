package handlers

import (
	"net/http"

	"github.com/username/fxmonitor/src/logger"
	"github.com/username/fxmonitor/src/models"
	"github.com/username/fxmonitor/src/services"
	"github.com/username/fxmonitor/src/storage"
	"github.com/username/fxmonitor/src/utils"
)

type TradeHandler struct {
	tradeService services.TradeService
	store        *storage.Store
}

func NewTradeHandler(service services.TradeService, store *storage.Store) *TradeHandler {
	return &TradeHandler{tradeService: service, store: store}
}

// HandleGetTrades serves GET /api/trades with optional query filters.
func (h *TradeHandler) HandleGetTrades(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := models.TradeFilters{
		ProductType:  q.Get("productType"),
		LegalEntity:  q.Get("legalEntity"),
		SourceSystem: q.Get("sourceSystem"),
		StartDate:    q.Get("startDate"),
		EndDate:      q.Get("endDate"),
	}

	trades, err := h.tradeService.GetTrades(filters)
	if err != nil {
		logger.L.Error("Error fetching trades", "error", err)
		utils.SendJSONError(w, "Failed to fetch trade data", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, trades)
}

type tradeFetchRequest struct {
	ProductType  string `json:"productType" validate:"required"`
	LegalEntity  string `json:"legalEntity" validate:"required"`
	SourceSystem string `json:"sourceSystem" validate:"required"`
	StartDate    string `json:"startDate" validate:"omitempty"`
	EndDate      string `json:"endDate" validate:"omitempty"`
}

// HandleFetchTrades serves POST /api/trades/fetch. The real UAT/PROD API
// pull is out of scope; this generates mock trades for the requested scope.
func (h *TradeHandler) HandleFetchTrades(w http.ResponseWriter, r *http.Request) {
	var req tradeFetchRequest
	if err := decodeAndValidate(r, &req); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	count, err := h.tradeService.FetchTrades(req.ProductType, req.LegalEntity, req.SourceSystem)
	if err != nil {
		logger.L.Error("Error fetching trade data", "error", err)
		utils.SendJSONError(w, "Failed to fetch trade data from APIs", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Trade data fetched successfully",
		"count":   count,
	})
}

// HandleGetExceptions serves GET /api/exceptions with an optional date range.
func (h *TradeHandler) HandleGetExceptions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	exceptions, err := h.store.ListExceptions(q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		logger.L.Error("Error fetching exceptions", "error", err)
		utils.SendJSONError(w, "Failed to fetch exception data", http.StatusInternalServerError)
		return
	}
	if exceptions == nil {
		exceptions = []models.Exception{}
	}
	utils.WriteJSON(w, http.StatusOK, exceptions)
}
