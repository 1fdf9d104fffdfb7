// Package models holds the custody entities and their partial-update and
// collection shapes. Field names are the JSON and document contract.
package models

import (
	"strings"

	"custody/pkg/domain"
	dErrors "custody/pkg/domain-errors"
)

// ListLimit caps every collection response.
const ListLimit = 1000

func requireText(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return dErrors.New(dErrors.CodeValidation, field+" is required")
	}
	return nil
}

func requireID(field string, id domain.EntityID) error {
	if id.IsZero() {
		return dErrors.New(dErrors.CodeValidation, field+" is required")
	}
	return nil
}

func optionalText(field string, v *string) error {
	if v == nil {
		return nil
	}
	if strings.TrimSpace(*v) == "" {
		return dErrors.New(dErrors.CodeValidation, field+" must not be empty")
	}
	return nil
}

func optionalID(field string, id *domain.EntityID) error {
	if id == nil {
		return nil
	}
	if id.IsZero() {
		return dErrors.New(dErrors.CodeValidation, field+" must not be empty")
	}
	return nil
}

// firstError returns the first non-nil error.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
