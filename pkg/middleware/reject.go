package middleware

import (
	"encoding/json"
	"net/http"

	apperrors "hotelms/pkg/errors"
	"hotelms/pkg/logger"
)

// writeRejection answers a request the middleware refuses to pass on, in the
// same {message} shape handlers use.
func writeRejection(w http.ResponseWriter, log *logger.Logger, handler string, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(apperrors.ErrorResponse{Message: message}); err != nil {
		log.Error("failed to write rejection response", "handler", handler, "operation", "writeRejection", "error", err)
	}
}
