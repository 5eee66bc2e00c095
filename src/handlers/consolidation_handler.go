package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/username/fxmonitor/src/config"
	"github.com/username/fxmonitor/src/logger"
	"github.com/username/fxmonitor/src/security/validation"
	"github.com/username/fxmonitor/src/services"
	"github.com/username/fxmonitor/src/utils"
)

type ConsolidationHandler struct {
	consolidationService services.ConsolidationService
}

func NewConsolidationHandler(service services.ConsolidationService) *ConsolidationHandler {
	return &ConsolidationHandler{consolidationService: service}
}

// HandleUploadFiles serves POST /api/files/upload: repeatable multipart
// field "files" plus an "environment" form value of UAT or PROD. The batch
// is all-or-nothing; one invalid filename rejects every file in it.
func (h *ConsolidationHandler) HandleUploadFiles(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		logger.L.Warn("Failed to parse multipart form or request too large", "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to parse form or request too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	environment := r.FormValue("environment")
	if environment != "UAT" && environment != "PROD" {
		utils.SendJSONError(w, "environment must be UAT or PROD", http.StatusBadRequest)
		return
	}

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		utils.SendJSONError(w, "No files uploaded", http.StatusBadRequest)
		return
	}

	uploads := make([]services.UploadedFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		recordCount, err := countUploadedRecords(fh)
		if err != nil {
			logger.L.Warn("Failed to inspect uploaded file", "filename", fh.Filename, "error", err)
			utils.SendJSONError(w, fmt.Sprintf("Failed to read uploaded file %s", fh.Filename), http.StatusBadRequest)
			return
		}
		uploads = append(uploads, services.UploadedFile{
			Filename:    fh.Filename,
			Size:        fh.Size,
			RecordCount: recordCount,
		})
	}

	saved, err := h.consolidationService.RegisterUploads(uploads, environment)
	if err != nil {
		if errors.Is(err, validation.ErrValidationFailed) {
			utils.SendJSONError(w, strings.TrimPrefix(err.Error(), validation.ErrValidationFailed.Error()+": "), http.StatusBadRequest)
			return
		}
		logger.L.Error("File upload failed", "error", err)
		utils.SendJSONError(w, "File upload failed", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Files uploaded successfully",
		"files":   saved,
	})
}

// HandleGetFileUploads serves GET /api/files/uploads.
func (h *ConsolidationHandler) HandleGetFileUploads(w http.ResponseWriter, r *http.Request) {
	files, err := h.consolidationService.GetFileUploads()
	if err != nil {
		logger.L.Error("Error fetching file uploads", "error", err)
		utils.SendJSONError(w, "Failed to get uploaded files", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, files)
}

// HandleCreateConsolidation serves POST /api/consolidation/create.
func (h *ConsolidationHandler) HandleCreateConsolidation(w http.ResponseWriter, r *http.Request) {
	datasets, err := h.consolidationService.CreateConsolidation()
	if err != nil {
		logger.L.Error("Consolidation failed", "error", err)
		utils.SendJSONError(w, "Consolidation failed", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Consolidation completed",
		"datasets": datasets,
	})
}

// HandleGetDatasets serves GET /api/consolidation/datasets.
func (h *ConsolidationHandler) HandleGetDatasets(w http.ResponseWriter, r *http.Request) {
	datasets, err := h.consolidationService.GetDatasets()
	if err != nil {
		logger.L.Error("Error fetching consolidated datasets", "error", err)
		utils.SendJSONError(w, "Failed to get consolidated datasets", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, datasets)
}

// countUploadedRecords counts data rows in an uploaded CSV (lines minus the
// header). Non-CSV files report zero; their contents are not inspected.
func countUploadedRecords(fh *multipart.FileHeader) (int64, error) {
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".csv") {
		return 0, nil
	}

	file, err := fh.Open()
	if err != nil {
		return 0, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return 0, err
	}

	var lines int64
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if strings.TrimSpace(line) != "" {
			lines++
		}
	}
	if lines > 0 {
		lines-- // header row
	}
	return lines, nil
}
