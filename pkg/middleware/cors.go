package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows the browser front end to call the API. An origin list of "*"
// allows every origin.
func CORS(origins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         600,
	}
	if len(origins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	return cors.New(opts).Handler
}
