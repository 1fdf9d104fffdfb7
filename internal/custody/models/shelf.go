package models

import (
	"time"

	"custody/pkg/domain"
	dErrors "custody/pkg/domain-errors"
)

// Shelf holds boxes. Capacity is informational and not checked against stored boxes.
type Shelf struct {
	ID            domain.EntityID `json:"id" bson:"_id,omitempty"`
	Capacity      int             `json:"capacity" bson:"capacity"`
	ShelfName     string          `json:"shelf_name" bson:"shelf_name"`
	LastUpdated   time.Time       `json:"last_updated" bson:"last_updated"`
	LastUpdatedBy domain.EntityID `json:"last_updated_by" bson:"last_updated_by"`
}

func (s Shelf) Validate() error {
	if s.Capacity <= 0 {
		return dErrors.New(dErrors.CodeValidation, "capacity must be greater than 0")
	}
	return firstError(
		requireText("shelf_name", s.ShelfName),
		requireID("last_updated_by", s.LastUpdatedBy),
	)
}

// BusinessKey is empty: shelf ids are assigned by the store.
func (s Shelf) BusinessKey() string { return "" }

func (s Shelf) RecordID() domain.EntityID { return s.ID }

func (s Shelf) Prepare(id domain.EntityID, now time.Time) Shelf {
	s.ID = id
	if s.LastUpdated.IsZero() {
		s.LastUpdated = now
	}
	return s
}

// ShelfUpdate is a partial update; nil fields are left unchanged.
type ShelfUpdate struct {
	Capacity      *int             `json:"capacity,omitempty" bson:"capacity,omitempty"`
	ShelfName     *string          `json:"shelf_name,omitempty" bson:"shelf_name,omitempty"`
	LastUpdated   *time.Time       `json:"last_updated,omitempty" bson:"last_updated,omitempty"`
	LastUpdatedBy *domain.EntityID `json:"last_updated_by,omitempty" bson:"last_updated_by,omitempty"`
}

func (u ShelfUpdate) Validate() error {
	if u.Capacity != nil && *u.Capacity <= 0 {
		return dErrors.New(dErrors.CodeValidation, "capacity must be greater than 0")
	}
	return firstError(
		optionalText("shelf_name", u.ShelfName),
		optionalID("last_updated_by", u.LastUpdatedBy),
	)
}

func (u ShelfUpdate) IsEmpty() bool {
	return u == ShelfUpdate{}
}

func (u ShelfUpdate) Touch(now time.Time) ShelfUpdate {
	if u.LastUpdated == nil {
		u.LastUpdated = &now
	}
	return u
}

// ShelfCollection is the list response for shelves.
type ShelfCollection struct {
	Shelves []Shelf `json:"shelves"`
}
