package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wonny/fundscope/internal/contracts"
)

// respondJSON encodes before writing the header so an encode failure still reaches the client as a 500
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(map[string]string{"error": "encode response: " + err.Error()})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// statusFor maps engine errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, contracts.ErrFundNotFound):
		return http.StatusNotFound
	case errors.Is(err, contracts.ErrInvalidRange),
		errors.Is(err, contracts.ErrEmptyRange),
		errors.Is(err, contracts.ErrUnknownPreset),
		errors.Is(err, contracts.ErrInvalidSeries):
		return http.StatusBadRequest
	case errors.Is(err, contracts.ErrInsufficientData),
		errors.Is(err, contracts.ErrNonFinite):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Health returns server health status
// GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"service": "fundscope-api",
	})
}
