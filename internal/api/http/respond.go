package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"casahub-backend/internal/logger"
	"casahub-backend/internal/service"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError maps service errors onto the API's error contract.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid_credentials", Message: "email or password is incorrect"})
	case errors.Is(err, service.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden", Message: "you do not have permission to perform this action"})
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found", Message: "the requested resource does not exist"})
	case errors.Is(err, service.ErrInvalidTransition):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "invalid_transition", Message: err.Error()})
	case errors.Is(err, service.ErrMissingReason):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing_reason", Message: err.Error()})
	default:
		logger.Error("Unhandled service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal", Message: "an internal error occurred"})
	}
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeBadRequest(w, "request body is not valid JSON")
		return false
	}
	return true
}
