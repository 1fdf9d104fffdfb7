package models

import (
	"time"

	"custody/pkg/domain"
)

// Prisoner owns bags and is assigned to a custodian officer. The id is derived
// from id_number at creation and does not change if id_number is later edited.
type Prisoner struct {
	ID            domain.EntityID `json:"id" bson:"_id,omitempty"`
	IDNumber      string          `json:"id_number" bson:"id_number"`
	FirstName     string          `json:"first_name" bson:"first_name"`
	LastName      string          `json:"last_name" bson:"last_name"`
	Gender        string          `json:"gender" bson:"gender"`
	LastUpdated   time.Time       `json:"last_updated" bson:"last_updated"`
	LastUpdatedBy domain.EntityID `json:"last_updated_by" bson:"last_updated_by"`
	OfficerID     domain.EntityID `json:"officer_id" bson:"officer_id"`
}

func (p Prisoner) Validate() error {
	return firstError(
		requireText("id_number", p.IDNumber),
		requireText("first_name", p.FirstName),
		requireText("last_name", p.LastName),
		requireText("gender", p.Gender),
		requireID("last_updated_by", p.LastUpdatedBy),
		requireID("officer_id", p.OfficerID),
	)
}

func (p Prisoner) BusinessKey() string { return p.IDNumber }

func (p Prisoner) RecordID() domain.EntityID { return p.ID }

func (p Prisoner) Prepare(id domain.EntityID, now time.Time) Prisoner {
	p.ID = id
	if p.LastUpdated.IsZero() {
		p.LastUpdated = now
	}
	return p
}

// PrisonerUpdate is a partial update; nil fields are left unchanged.
type PrisonerUpdate struct {
	IDNumber      *string          `json:"id_number,omitempty" bson:"id_number,omitempty"`
	FirstName     *string          `json:"first_name,omitempty" bson:"first_name,omitempty"`
	LastName      *string          `json:"last_name,omitempty" bson:"last_name,omitempty"`
	Gender        *string          `json:"gender,omitempty" bson:"gender,omitempty"`
	LastUpdated   *time.Time       `json:"last_updated,omitempty" bson:"last_updated,omitempty"`
	LastUpdatedBy *domain.EntityID `json:"last_updated_by,omitempty" bson:"last_updated_by,omitempty"`
	OfficerID     *domain.EntityID `json:"officer_id,omitempty" bson:"officer_id,omitempty"`
}

func (u PrisonerUpdate) Validate() error {
	return firstError(
		optionalText("id_number", u.IDNumber),
		optionalText("first_name", u.FirstName),
		optionalText("last_name", u.LastName),
		optionalText("gender", u.Gender),
		optionalID("last_updated_by", u.LastUpdatedBy),
		optionalID("officer_id", u.OfficerID),
	)
}

func (u PrisonerUpdate) IsEmpty() bool {
	return u == PrisonerUpdate{}
}

func (u PrisonerUpdate) Touch(now time.Time) PrisonerUpdate {
	if u.LastUpdated == nil {
		u.LastUpdated = &now
	}
	return u
}

// PrisonerCollection is the list response for prisoners.
type PrisonerCollection struct {
	Prisoners []Prisoner `json:"prisoners"`
}
