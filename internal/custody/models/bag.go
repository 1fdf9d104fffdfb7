package models

import (
	"time"

	"custody/pkg/domain"
)

// Bag is an RFID-tagged bag of a prisoner's belongings. Its id is derived from
// rfid_epc at creation and does not change if the tag is later rewritten.
type Bag struct {
	ID             domain.EntityID `json:"id" bson:"_id,omitempty"`
	RFIDEPC        string          `json:"rfid_epc" bson:"rfid_epc"`
	BoxID          domain.EntityID `json:"box_id" bson:"box_id"`
	DateRegistered time.Time       `json:"date_registered" bson:"date_registered"`
	Items          []string        `json:"items" bson:"items"`
	OfficerID      string          `json:"officer_id" bson:"officer_id"`
	PrisonerID     domain.EntityID `json:"prisoner_id" bson:"prisoner_id"`
	LastUpdated    time.Time       `json:"last_updated" bson:"last_updated"`
	LastUpdatedBy  string          `json:"last_updated_by" bson:"last_updated_by"`
}

func (b Bag) Validate() error {
	return firstError(
		requireText("rfid_epc", b.RFIDEPC),
		requireID("box_id", b.BoxID),
		requireText("officer_id", b.OfficerID),
		requireID("prisoner_id", b.PrisonerID),
		requireText("last_updated_by", b.LastUpdatedBy),
	)
}

func (b Bag) BusinessKey() string { return b.RFIDEPC }

func (b Bag) RecordID() domain.EntityID { return b.ID }

func (b Bag) Prepare(id domain.EntityID, now time.Time) Bag {
	b.ID = id
	if b.DateRegistered.IsZero() {
		b.DateRegistered = now
	}
	if b.LastUpdated.IsZero() {
		b.LastUpdated = now
	}
	if b.Items == nil {
		b.Items = []string{}
	}
	return b
}

// BagUpdate is a partial update; nil fields are left unchanged.
type BagUpdate struct {
	RFIDEPC        *string          `json:"rfid_epc,omitempty" bson:"rfid_epc,omitempty"`
	BoxID          *domain.EntityID `json:"box_id,omitempty" bson:"box_id,omitempty"`
	DateRegistered *time.Time       `json:"date_registered,omitempty" bson:"date_registered,omitempty"`
	Items          *[]string        `json:"items,omitempty" bson:"items,omitempty"`
	OfficerID      *string          `json:"officer_id,omitempty" bson:"officer_id,omitempty"`
	PrisonerID     *domain.EntityID `json:"prisoner_id,omitempty" bson:"prisoner_id,omitempty"`
	LastUpdated    *time.Time       `json:"last_updated,omitempty" bson:"last_updated,omitempty"`
	LastUpdatedBy  *string          `json:"last_updated_by,omitempty" bson:"last_updated_by,omitempty"`
}

func (u BagUpdate) Validate() error {
	return firstError(
		optionalText("rfid_epc", u.RFIDEPC),
		optionalID("box_id", u.BoxID),
		optionalText("officer_id", u.OfficerID),
		optionalID("prisoner_id", u.PrisonerID),
		optionalText("last_updated_by", u.LastUpdatedBy),
	)
}

func (u BagUpdate) IsEmpty() bool {
	return u == BagUpdate{}
}

func (u BagUpdate) Touch(now time.Time) BagUpdate {
	if u.LastUpdated == nil {
		u.LastUpdated = &now
	}
	return u
}

// BagCollection is the list response for bags.
type BagCollection struct {
	Bags []Bag `json:"bags"`
}
