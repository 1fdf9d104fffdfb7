package domain

import dErrors "custody/pkg/domain-errors"

// Resource names a custody collection. It doubles as the collection name in the
// document store and the route prefix of the HTTP API.
//
// Usage: construct via ParseResource at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type Resource string

const (
	ResourceShelves   Resource = "shelves"
	ResourceBoxes     Resource = "boxes"
	ResourceBags      Resource = "bags"
	ResourceOfficers  Resource = "officers"
	ResourcePrisoners Resource = "prisoners"
)

// resourceKinds is the single source of truth for valid resources and the
// singular name used in messages ("Shelf 1 not found").
var resourceKinds = map[Resource]string{
	ResourceShelves:   "Shelf",
	ResourceBoxes:     "Box",
	ResourceBags:      "Bag",
	ResourceOfficers:  "Officer",
	ResourcePrisoners: "Prisoner",
}

// Resources lists every custody collection in a stable order.
func Resources() []Resource {
	return []Resource{ResourceShelves, ResourceBoxes, ResourceBags, ResourceOfficers, ResourcePrisoners}
}

// ParseResource constructs a Resource from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseResource(s string) (Resource, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "resource cannot be empty")
	}
	r := Resource(s)
	if !r.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid resource")
	}
	return r, nil
}

// IsValid checks if the resource is one of the supported collections.
func (r Resource) IsValid() bool {
	_, ok := resourceKinds[r]
	return ok
}

// Kind returns the singular display name, e.g. "Bag".
func (r Resource) Kind() string {
	if kind, ok := resourceKinds[r]; ok {
		return kind
	}
	return string(r)
}

func (r Resource) String() string {
	return string(r)
}
