package middleware

import (
	"net/http"

	apperrors "pillziy/pkg/errors"
	httputil "pillziy/pkg/http"
)

// MaxRequestSize caps request bodies. Declared oversize bodies are refused up
// front; the rest are cut off by http.MaxBytesReader while decoding.
func MaxRequestSize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				_ = httputil.WriteError(w, apperrors.New(apperrors.CodeBadRequest,
					"Request body too large", http.StatusRequestEntityTooLarge))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
