package middleware

import (
	"net/http"
	"runtime/debug"

	apperrors "hotelms/pkg/errors"
	"hotelms/pkg/logger"
)

func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}

					log.Error("Panic recovered",
						"request_id", RequestIDFromContext(r.Context()),
						"error", err,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)

					writeRejection(w, log, "Recovery", http.StatusInternalServerError, apperrors.ServerErrorMessage)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
