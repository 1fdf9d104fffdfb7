package models

import (
	"time"

	"custody/pkg/domain"
)

// Box sits on a shelf and holds bags.
type Box struct {
	ID               domain.EntityID `json:"id" bson:"_id,omitempty"`
	ShelfID          domain.EntityID `json:"shelf_id" bson:"shelf_id"`
	LastDateAccessed *time.Time      `json:"last_date_accessed" bson:"last_date_accessed"`
	LastUpdated      time.Time       `json:"last_updated" bson:"last_updated"`
	LastUpdatedBy    domain.EntityID `json:"last_updated_by" bson:"last_updated_by"`
}

func (b Box) Validate() error {
	return firstError(
		requireID("shelf_id", b.ShelfID),
		requireID("last_updated_by", b.LastUpdatedBy),
	)
}

// BusinessKey is empty: box ids are assigned by the store.
func (b Box) BusinessKey() string { return "" }

func (b Box) RecordID() domain.EntityID { return b.ID }

func (b Box) Prepare(id domain.EntityID, now time.Time) Box {
	b.ID = id
	if b.LastUpdated.IsZero() {
		b.LastUpdated = now
	}
	return b
}

// BoxUpdate is a partial update; nil fields are left unchanged.
type BoxUpdate struct {
	LastDateAccessed *time.Time       `json:"last_date_accessed,omitempty" bson:"last_date_accessed,omitempty"`
	ShelfID          *domain.EntityID `json:"shelf_id,omitempty" bson:"shelf_id,omitempty"`
	LastUpdated      *time.Time       `json:"last_updated,omitempty" bson:"last_updated,omitempty"`
	LastUpdatedBy    *domain.EntityID `json:"last_updated_by,omitempty" bson:"last_updated_by,omitempty"`
}

func (u BoxUpdate) Validate() error {
	return firstError(
		optionalID("shelf_id", u.ShelfID),
		optionalID("last_updated_by", u.LastUpdatedBy),
	)
}

func (u BoxUpdate) IsEmpty() bool {
	return u == BoxUpdate{}
}

func (u BoxUpdate) Touch(now time.Time) BoxUpdate {
	if u.LastUpdated == nil {
		u.LastUpdated = &now
	}
	return u
}

// BoxCollection is the list response for boxes.
type BoxCollection struct {
	Boxes []Box `json:"boxes"`
}
