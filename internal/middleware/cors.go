package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows every origin, method and header, credentials included.
func CORS(next http.Handler) http.Handler {
	return corsHandler(next)
}

var corsHandler = cors.Handler(cors.Options{
	AllowOriginFunc: func(r *http.Request, origin string) bool {
		return true
	},
	AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
	AllowedHeaders:   []string{"*"},
	ExposedHeaders:   []string{"X-Request-Id"},
	AllowCredentials: true,
	MaxAge:           600,
})
