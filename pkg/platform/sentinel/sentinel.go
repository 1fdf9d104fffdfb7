package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Document stores return these
// (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about documents, not validation failures:
// - ErrNotFound: no document matched the filter
// - ErrAlreadyUsed: the primary key is already taken
// - ErrUnavailable: the backing store could not be reached
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrAlreadyUsed = errors.New("already used")
	ErrUnavailable = errors.New("unavailable")
)
