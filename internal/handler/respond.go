package handler

import (
	"encoding/json"
	"net/http"
	"time"

	apperrors "bazaar-be/pkg/errors"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError maps any service error to the JSON error envelope, wrapping
// unknown errors as internal
func respondError(w http.ResponseWriter, err error) {
	appErr := apperrors.FromError(err)

	response := &apperrors.ErrorResponse{}
	response.Error.Type = appErr.Type
	response.Error.Message = appErr.Message
	response.Error.Details = appErr.Details
	response.Error.Timestamp = time.Now().UTC().Format(time.RFC3339)

	respondJSON(w, appErr.StatusCode, response)
}

func respondInvalidBody(w http.ResponseWriter) {
	respondError(w, apperrors.NewInvalidInputError("Invalid request body", nil))
}
