package testutil

import (
	"net/http"
	"time"

	"custody/pkg/requestcontext"
)

// WithOfficer adds the acting officer id to the request context.
// This simulates what the metadata middleware does for the X-Officer-ID header.
func WithOfficer(req *http.Request, officerID string) *http.Request {
	return req.WithContext(requestcontext.WithOfficerID(req.Context(), officerID))
}

// WithRequestTime pins the request-scoped clock.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}
