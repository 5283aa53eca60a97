// Package requesttime pins a single "now" per HTTP request.
package requesttime

import (
	"net/http"
	"time"

	"recordcheck/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request
// and stores it in the context. Background executions do not inherit it.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
