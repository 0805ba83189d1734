package middleware

import (
	"net/http"

	"github.com/kbukum/speechkit/util"
)

const defaultMaxBodySize = 10 * 1024 * 1024

// BodySizeLimit caps request bodies at maxSize ("10MB", "512KB", "1GB").
func BodySizeLimit(maxSize string) Middleware {
	size := util.ParseSize(maxSize, defaultMaxBodySize)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, size)
			}
			next.ServeHTTP(w, r)
		})
	}
}
