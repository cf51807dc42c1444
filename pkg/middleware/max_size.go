package middleware

import (
	"net/http"

	"hotelms/pkg/logger"
)

// MaxRequestSize caps request bodies at limit bytes. Readers past the cap get
// an *http.MaxBytesError which the JSON decoder turns into a 400.
func MaxRequestSize(limit int64, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit > 0 && r.Body != nil {
				if r.ContentLength > limit {
					writeRejection(w, log, "MaxRequestSize", http.StatusBadRequest, "Request body too large")
					return
				}
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
