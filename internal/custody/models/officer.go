package models

import (
	"time"

	"custody/pkg/domain"
)

// Officer manages the custody chain. The id is derived from officer_id.
//
// Password is stored and returned in plaintext. This is a known weakness of the
// record format and is not remediated here.
type Officer struct {
	ID          domain.EntityID `json:"id" bson:"_id,omitempty"`
	OfficerID   string          `json:"officer_id" bson:"officer_id"`
	Password    string          `json:"password" bson:"password"`
	FirstName   string          `json:"first_name" bson:"first_name"`
	LastName    string          `json:"last_name" bson:"last_name"`
	OfficerRank string          `json:"officer_rank" bson:"officer_rank"`
}

func (o Officer) Validate() error {
	return firstError(
		requireText("officer_id", o.OfficerID),
		requireText("password", o.Password),
		requireText("first_name", o.FirstName),
		requireText("last_name", o.LastName),
		requireText("officer_rank", o.OfficerRank),
	)
}

func (o Officer) BusinessKey() string { return o.OfficerID }

func (o Officer) RecordID() domain.EntityID { return o.ID }

func (o Officer) Prepare(id domain.EntityID, _ time.Time) Officer {
	o.ID = id
	return o
}

// OfficerUpdate is a partial update; nil fields are left unchanged.
// officer_id and password cannot be changed through it.
type OfficerUpdate struct {
	FirstName   *string `json:"first_name,omitempty" bson:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty" bson:"last_name,omitempty"`
	OfficerRank *string `json:"officer_rank,omitempty" bson:"officer_rank,omitempty"`
}

func (u OfficerUpdate) Validate() error {
	return firstError(
		optionalText("first_name", u.FirstName),
		optionalText("last_name", u.LastName),
		optionalText("officer_rank", u.OfficerRank),
	)
}

func (u OfficerUpdate) IsEmpty() bool {
	return u == OfficerUpdate{}
}

// Touch is a no-op: officers carry no last_updated field.
func (u OfficerUpdate) Touch(time.Time) OfficerUpdate {
	return u
}

// OfficerCollection is the list response for officers.
type OfficerCollection struct {
	Officers []Officer `json:"officers"`
}
