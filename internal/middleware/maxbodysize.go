package middleware

import (
	"net/http"
)

// NewMaxBodySizeHandler caps request bodies at limit bytes.
//
// A declared Content-Length over the limit is answered with 413 before the
// next handler runs. Other bodies are wrapped in http.MaxBytesReader, so the
// decoder downstream sees *http.MaxBytesError once it reads past the limit.
// Methods that carry no body pass through untouched.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}
			if r.ContentLength > limit {
				writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large")
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
