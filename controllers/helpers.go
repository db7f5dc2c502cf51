package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"foodexpress/apperr"

	"github.com/sirupsen/logrus"
)

const invalidInputMessage = "Invalid input"

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// respondWithError maps the error taxonomy onto HTTP statuses. Unexpected errors
// become a generic 500 with the diagnostic detail alongside, never swallowed.
func respondWithError(w http.ResponseWriter, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		respondWithJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
	case errors.Is(err, apperr.ErrConflict):
		respondWithJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
	case errors.Is(err, apperr.ErrInvalidCredentials):
		respondWithJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid credentials"})
	case errors.Is(err, apperr.ErrNotFound):
		respondWithJSON(w, http.StatusNotFound, map[string]string{"message": err.Error()})
	default:
		logger.WithError(err).Error("Internal server error")
		respondWithJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Server error",
			"error":   err.Error(),
		})
	}
}

// HealthCheck reports that the API is up.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "FoodExpress API is running"})
}
