// Package requesttime provides middleware for request-scoped time.
// All operations within a single HTTP request use the same "now" timestamp,
// so a created document's date_registered and last_updated agree and audit
// events carry the same instant as the write they describe.
package requesttime

import (
	"net/http"

	"custody/pkg/hktime"
	"custody/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request
// and stores it in the context for consistent time references throughout the request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), hktime.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
