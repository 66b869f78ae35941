package middleware

import (
	"net/http"
)

// DefaultMaxBodySize caps request bodies at 1MB. No endpoint accepts
// uploads, so anything bigger is abuse.
const DefaultMaxBodySize int64 = 1 << 20

// RequestSize wraps the request body with http.MaxBytesReader so oversized
// payloads fail with 413 at read time instead of being buffered.
func RequestSize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
