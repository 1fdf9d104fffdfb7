// Package audit records the custody trail: who created, changed or removed a
// record and every officer login attempt. Delivery is best effort and never
// fails the business operation that produced the event.
package audit

import (
	"context"
	"time"
)

// Action names a custody event.
type Action string

const (
	ActionRecordCreated   Action = "record_created"
	ActionRecordUpdated   Action = "record_updated"
	ActionRecordDeleted   Action = "record_deleted"
	ActionOfficerSignedUp Action = "officer_signed_up"
	ActionLoginSucceeded  Action = "login_succeeded"
	ActionLoginFailed     Action = "login_failed"
	ActionLoginLocked     Action = "login_locked"
)

// Event is emitted from services after a write or a credential check.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Resource  string    `json:"resource"`
	Action    Action    `json:"action"`
	// EntityID is the 24-hex id of the affected record, or the officer_id for
	// login events where no record may exist.
	EntityID string `json:"entity_id"`
	// ActorID is the officer performing the action when known.
	ActorID   string `json:"actor_id,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	ClientIP  string `json:"client_ip,omitempty"`
}

// Store persists events.
type Store interface {
	Append(ctx context.Context, events ...Event) error
}
