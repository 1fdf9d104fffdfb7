package domain

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"

	dErrors "custody/pkg/domain-errors"
)

// EntityIDLength is the width of an EntityID in hex characters.
const EntityIDLength = 24

// MaxBusinessKeyBytes is the longest business key DeriveID accepts.
const MaxBusinessKeyBytes = EntityIDLength / 2

// EntityID is the 24-hex-character primary key of every custody document.
// It is stored as a BSON ObjectID under _id and exposed as a hex string in JSON.
type EntityID primitive.ObjectID

// NilEntityID is the all-zero id; documents carrying it get a store-assigned id.
var NilEntityID EntityID

// NewEntityID returns a fresh store-style id.
func NewEntityID() EntityID {
	return EntityID(primitive.NewObjectID())
}

// ParseEntityID parses a 24-hex-character string.
func ParseEntityID(s string) (EntityID, error) {
	if len(s) != EntityIDLength {
		return NilEntityID, dErrors.New(dErrors.CodeInvalidInput, "invalid identifier: must be 24 hex characters")
	}
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return NilEntityID, dErrors.New(dErrors.CodeInvalidInput, "invalid identifier: must be 24 hex characters")
	}
	return EntityID(oid), nil
}

// DeriveID maps a business key (RFID EPC, officer id, prisoner id number) to an
// EntityID: the UTF-8 bytes are hex-encoded in lowercase and left-padded with '0'
// to 24 characters.
//
// Keys longer than MaxBusinessKeyBytes are rejected rather than truncated. Keys that
// differ only by leading NUL bytes map to the same id; collisions are not detected.
func DeriveID(businessKey string) (EntityID, error) {
	if businessKey == "" {
		return NilEntityID, dErrors.New(dErrors.CodeInvalidInput, "business key is required")
	}
	encoded := hex.EncodeToString([]byte(businessKey))
	if len(encoded) > EntityIDLength {
		return NilEntityID, dErrors.New(dErrors.CodeInvalidInput, "business key must be at most 12 bytes")
	}
	padded := strings.Repeat("0", EntityIDLength-len(encoded)) + encoded
	oid, err := primitive.ObjectIDFromHex(padded)
	if err != nil {
		return NilEntityID, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid business key")
	}
	return EntityID(oid), nil
}

// Hex returns the lowercase 24-character representation.
func (id EntityID) Hex() string {
	return primitive.ObjectID(id).Hex()
}

func (id EntityID) String() string {
	return id.Hex()
}

// IsZero reports whether the id is unset. The bson encoder uses it for omitempty.
func (id EntityID) IsZero() bool {
	return primitive.ObjectID(id).IsZero()
}

func (id EntityID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.Hex())
}

func (id *EntityID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid identifier: must be a string")
	}
	parsed, err := ParseEntityID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id EntityID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(primitive.ObjectID(id))
}

func (id *EntityID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var oid primitive.ObjectID
	if err := (bson.RawValue{Type: t, Value: data}).Unmarshal(&oid); err != nil {
		return err
	}
	*id = EntityID(oid)
	return nil
}
