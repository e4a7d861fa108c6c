package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/intelleges/iaos-website-sub000/internal/infra/http/middleware"
	"github.com/intelleges/iaos-website-sub000/internal/usecase"
)

type DownloadHandler struct {
	UseCase *usecase.DownloadUseCase
}

func NewDownloadHandler(uc *usecase.DownloadUseCase) *DownloadHandler {
	return &DownloadHandler{UseCase: uc}
}

func (h *DownloadHandler) CheckLimit(w http.ResponseWriter, r *http.Request) {
	var input usecase.CheckLimitInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Message: "Invalid JSON"})
		return
	}

	output, err := h.UseCase.CheckLimit(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

func (h *DownloadHandler) RecordDownload(w http.ResponseWriter, r *http.Request) {
	var input usecase.RecordDownloadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Message: "Invalid JSON"})
		return
	}

	output, err := h.UseCase.RecordDownload(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordDownload(input.DocumentType)
	writeJSON(w, http.StatusOK, output)
}
