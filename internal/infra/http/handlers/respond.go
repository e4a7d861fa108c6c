package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/intelleges/iaos-website-sub000/internal/usecase"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps the usecase error taxonomy onto HTTP: business rules are
// 422 (with a code the UI can branch on), infrastructure is 500.
func writeError(w http.ResponseWriter, err error) {
	if de, ok := err.(*usecase.DomainError); ok {
		status := http.StatusUnprocessableEntity
		if de.Code == "VALIDATION_ERROR" {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, errorResponse{Success: false, Code: de.Code, Message: de.Message})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Success: false, Message: "internal error"})
}
