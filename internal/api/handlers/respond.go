package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/JastejS28/intel3/pkg/errors"
)

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps the error taxonomy onto HTTP statuses. The failure
// kind rides along in the body so the kiosk can choose its retry guidance.
func respondWithAppError(w http.ResponseWriter, err error) {
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Type {
	case apperrors.ErrorTypeMissingVitals, apperrors.ErrorTypeValidation:
		status = http.StatusBadRequest
	case apperrors.ErrorTypeNotFound:
		status = http.StatusNotFound
	case apperrors.ErrorTypeConflict:
		status = http.StatusConflict
	case apperrors.ErrorTypeScoringUnavailable,
		apperrors.ErrorTypeRegistrationUnavailable,
		apperrors.ErrorTypeExternal:
		status = http.StatusBadGateway
	}

	respondWithJSON(w, status, map[string]string{
		"error": appErr.Message,
		"kind":  string(appErr.Type),
	})
}
