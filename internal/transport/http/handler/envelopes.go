package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/email-otp-api/internal/domain"
)

// Envelope is the response wrapper for all non-health endpoints.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Success: false, Message: message})
}

// httpError maps domain sentinels to status codes and user-facing messages.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeFailure(w, http.StatusBadRequest, "Invalid email format")
	case errors.Is(err, domain.ErrCodeMismatch):
		writeFailure(w, http.StatusBadRequest, "Invalid verification code")
	case errors.Is(err, domain.ErrNotFound):
		writeFailure(w, http.StatusNotFound, "Code not found or expired")
	case errors.Is(err, domain.ErrDeliveryFailed):
		writeFailure(w, http.StatusInternalServerError, "Failed to send verification email")
	default:
		writeFailure(w, http.StatusInternalServerError, "Internal server error")
	}
}
