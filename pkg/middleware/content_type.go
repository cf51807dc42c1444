package middleware

import (
	"net/http"
	"strings"

	"hotelms/pkg/logger"
)

const contentTypeMessage = "Content-Type must be application/json"

// ContentTypeValidation rejects write requests that carry a body in anything
// other than JSON. Body-less PUTs (check-in, check-out) pass through.
func ContentTypeValidation(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if requiresContentType(r) {
				contentType := extractContentType(r.Header.Get("Content-Type"))

				if contentType != "application/json" {
					log.Warn("Invalid Content-Type header",
						"request_id", RequestIDFromContext(r.Context()),
						"content_type", contentType,
						"path", r.URL.Path,
						"method", r.Method,
					)
					writeRejection(w, log, "ContentTypeValidation", http.StatusBadRequest, contentTypeMessage)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func requiresContentType(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
	default:
		return false
	}
	return r.ContentLength > 0 || (r.ContentLength < 0 && r.Header.Get("Content-Type") != "")
}

func extractContentType(header string) string {
	if header == "" {
		return ""
	}

	parts := strings.Split(header, ";")
	return strings.ToLower(strings.TrimSpace(parts[0]))
}
