package middleware

import (
	"net/http"

	"github.com/media-confidence/aifaq/internal/api"
)

// MaxBodyBytes caps request bodies at limit bytes; limit <= 0 disables it.
// A declared Content-Length over the cap is rejected with 413 up front.
// Chunked bodies are cut off by http.MaxBytesReader and surface as 413
// through api.DecodeJSON.
func MaxBodyBytes(limit int64) func(http.Handler) http.Handler {
	if limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}
			if r.ContentLength > limit {
				api.Error(w, http.StatusRequestEntityTooLarge, api.BodyTooLargeMessage)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
