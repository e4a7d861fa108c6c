package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/intelleges/iaos-website-sub000/internal/usecase"
)

type SuppressionHandler struct {
	UseCase *usecase.SuppressionUseCase
}

func NewSuppressionHandler(uc *usecase.SuppressionUseCase) *SuppressionHandler {
	return &SuppressionHandler{UseCase: uc}
}

type suppressionRequest struct {
	Email  string `json:"email"`
	Reason string `json:"reason,omitempty"`
}

func (h *SuppressionHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req suppressionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Message: "Invalid JSON"})
		return
	}

	status, err := h.UseCase.CheckEmailSuppression(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

func (h *SuppressionHandler) Suppress(w http.ResponseWriter, r *http.Request) {
	var req suppressionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Message: "Invalid JSON"})
		return
	}

	output, err := h.UseCase.SuppressEmail(r.Context(), req.Email, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

func (h *SuppressionHandler) Unsuppress(w http.ResponseWriter, r *http.Request) {
	var req suppressionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Message: "Invalid JSON"})
		return
	}

	output, err := h.UseCase.UnsuppressEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}
