package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORSMiddleware allows GET requests from any origin.
func CORSMiddleware(next http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}).Handler(next)
}
