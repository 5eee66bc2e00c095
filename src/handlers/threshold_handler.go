package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/username/fxmonitor/src/config"
	"github.com/username/fxmonitor/src/logger"
	"github.com/username/fxmonitor/src/security/validation"
	"github.com/username/fxmonitor/src/services"
	"github.com/username/fxmonitor/src/storage"
	"github.com/username/fxmonitor/src/utils"
)

type ThresholdHandler struct {
	thresholdService services.ThresholdService
}

func NewThresholdHandler(service services.ThresholdService) *ThresholdHandler {
	return &ThresholdHandler{thresholdService: service}
}

// HandleGetThresholds serves GET /api/thresholds. mode=group returns the
// derived group view; anything else returns the raw currency rows.
func (h *ThresholdHandler) HandleGetThresholds(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	logger.L.Debug("Threshold mode requested", "mode", mode)

	var data interface{}
	if mode == "group" {
		groups, err := h.thresholdService.GetGroupThresholds()
		if err != nil {
			logger.L.Error("Error computing group thresholds", "error", err)
			utils.SendJSONError(w, "Failed to fetch thresholds", http.StatusInternalServerError)
			return
		}
		data = groups
	} else {
		thresholds, err := h.thresholdService.GetCurrencyThresholds()
		if err != nil {
			logger.L.Error("Error fetching currency thresholds", "error", err)
			utils.SendJSONError(w, "Failed to fetch thresholds", http.StatusInternalServerError)
			return
		}
		data = thresholds
	}

	w.Header().Set("Cache-Control", "no-cache, private")
	if etag, err := utils.GenerateETag(data); err == nil && etag != "" {
		quotedETag := fmt.Sprintf("%q", etag)
		w.Header().Set("ETag", quotedETag)
		for _, clientETag := range strings.Split(r.Header.Get("If-None-Match"), ",") {
			if strings.TrimSpace(clientETag) == quotedETag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	}

	utils.WriteJSON(w, http.StatusOK, data)
}

// HandleUploadThresholds serves POST /api/thresholds/upload: multipart field
// "file" holding the threshold CSV. The upload replaces all existing rows.
func (h *ThresholdHandler) HandleUploadThresholds(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		logger.L.Warn("Failed to parse multipart form or request too large", "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to parse form or request too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		logger.L.Warn("Failed to retrieve file from request", "error", err)
		utils.SendJSONError(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		utils.SendJSONError(w, fmt.Sprintf("File too large, max %d MB", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	if err := validation.ValidateClientContentType(fileHeader.Header.Get("Content-Type")); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := validation.ValidateFileContentByMagicBytes(file); err != nil {
		logger.L.Warn("Server-side file content validation failed", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	count, err := h.thresholdService.ImportThresholdCSV(file)
	if err != nil {
		if errors.Is(err, services.ErrParsingFailed) {
			logger.L.Warn("Threshold upload failed due to CSV parsing errors", "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, fmt.Sprintf("Error parsing CSV file: %v", err), http.StatusBadRequest)
			return
		}
		logger.L.Error("Internal error importing threshold CSV", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, "Failed to upload threshold file", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Thresholds uploaded successfully",
		"count":   count,
	})
}

type thresholdUpdateRequest struct {
	LegalEntity       *string `json:"legalEntity" validate:"omitempty,min=1"`
	Currency          *string `json:"currency" validate:"omitempty,len=3"`
	OriginalGroup     *string `json:"originalGroup" validate:"omitempty,min=1"`
	OriginalThreshold *string `json:"originalThreshold" validate:"omitempty,numeric"`
	ProposedGroup     *string `json:"proposedGroup" validate:"omitempty,min=1"`
	ProposedThreshold *string `json:"proposedThreshold" validate:"omitempty,numeric"`
	AdjustedGroup     *string `json:"adjustedGroup" validate:"omitempty,min=1"`
	AdjustedThreshold *string `json:"adjustedThreshold" validate:"omitempty,numeric"`
}

// HandleUpdateThreshold serves PATCH /api/thresholds/{id}: a partial update
// of one currency-level row. Unknown ids answer 404.
func (h *ThresholdHandler) HandleUpdateThreshold(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		utils.SendJSONError(w, "Invalid threshold id", http.StatusBadRequest)
		return
	}

	var req thresholdUpdateRequest
	if err := decodeAndValidate(r, &req); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	threshold, err := h.thresholdService.UpdateThreshold(id, storage.ThresholdUpdate{
		LegalEntity:       req.LegalEntity,
		Currency:          req.Currency,
		OriginalGroup:     req.OriginalGroup,
		OriginalThreshold: req.OriginalThreshold,
		ProposedGroup:     req.ProposedGroup,
		ProposedThreshold: req.ProposedThreshold,
		AdjustedGroup:     req.AdjustedGroup,
		AdjustedThreshold: req.AdjustedThreshold,
	})
	if err != nil {
		if errors.Is(err, storage.ErrThresholdNotFound) {
			utils.SendJSONError(w, fmt.Sprintf("Threshold %d not found", id), http.StatusNotFound)
			return
		}
		logger.L.Error("Error updating threshold", "id", id, "error", err)
		utils.SendJSONError(w, "Failed to update threshold", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, threshold)
}
