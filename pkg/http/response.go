package http

import (
	"encoding/json"
	"net/http"

	apperrors "hotelms/pkg/errors"
)

// MessageResponse is the body of confirmations that carry no entity.
type MessageResponse struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes err as {message}. Anything that is not an AppError is
// reported as a generic server error.
func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)
	status := appErr.StatusCode()
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return WriteJSON(w, status, appErr.Response())
}

func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, data)
}

func WriteCreated(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusCreated, data)
}

func WriteMessage(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusOK, MessageResponse{Message: message})
}
