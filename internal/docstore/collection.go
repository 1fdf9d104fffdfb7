// Package docstore is the document persistence layer: a small collection
// interface with an in-memory implementation and a MongoDB implementation.
//
// Documents cross the interface as bson.Raw so both backends share one
// encoding. Callers decode with Decode, which renders stored DateTimes in the
// fixed storage zone.
package docstore

import (
	"context"
	"reflect"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"custody/pkg/domain"
	"custody/pkg/hktime"
)

// IDField is the primary key field of every document.
const IDField = "_id"

// Filter selects documents by field equality. An empty filter matches everything.
type Filter map[string]any

// ByID is the filter for a single primary key.
func ByID(id domain.EntityID) Filter {
	return Filter{IDField: id}
}

// Collection is a named set of documents.
type Collection interface {
	Name() string
	// InsertOne stores doc. A missing or zero _id is assigned by the store.
	// A duplicate _id returns sentinel.ErrAlreadyUsed.
	InsertOne(ctx context.Context, doc any) (domain.EntityID, error)
	// FindOne returns the first matching document or sentinel.ErrNotFound.
	FindOne(ctx context.Context, filter Filter) (bson.Raw, error)
	// Find returns matching documents in natural order. limit <= 0 means no limit.
	Find(ctx context.Context, filter Filter, limit int64) ([]bson.Raw, error)
	// FindOneAndSet applies a field-level $set to the first match and returns the
	// document after the update. An empty set is a plain read.
	FindOneAndSet(ctx context.Context, filter Filter, set bson.D) (bson.Raw, error)
	// DeleteOne removes the first match or returns sentinel.ErrNotFound.
	DeleteOne(ctx context.Context, filter Filter) error
	// EnsureIndex creates a non-unique ascending index on field.
	EnsureIndex(ctx context.Context, field string) error
}

// Database hands out collections and reports backend health.
type Database interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
}

var registry = newRegistry()

func newRegistry() *bsoncodec.Registry {
	reg := bson.NewRegistry()
	reg.RegisterTypeDecoder(reflect.TypeOf(time.Time{}), bsoncodec.ValueDecoderFunc(decodeTime))
	return reg
}

// decodeTime reads a BSON DateTime into the storage zone.
func decodeTime(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	switch vr.Type() {
	case bsontype.Null:
		val.Set(reflect.ValueOf(time.Time{}))
		return vr.ReadNull()
	case bsontype.DateTime:
		ms, err := vr.ReadDateTime()
		if err != nil {
			return err
		}
		val.Set(reflect.ValueOf(time.UnixMilli(ms).In(hktime.Zone)))
		return nil
	default:
		return bsoncodec.ValueDecoderError{Name: "decodeTime", Types: []reflect.Type{reflect.TypeOf(time.Time{})}, Received: val}
	}
}

// Decode unmarshals a stored document into out.
func Decode(raw bson.Raw, out any) error {
	dec, err := bson.NewDecoder(bsonrw.NewBSONDocumentReader(raw))
	if err != nil {
		return err
	}
	if err := dec.SetRegistry(registry); err != nil {
		return err
	}
	return dec.Decode(out)
}

// Fields encodes a patch struct into the ordered list of fields to $set.
// Fields tagged omitempty and left nil are skipped.
func Fields(patch any) (bson.D, error) {
	data, err := bson.Marshal(patch)
	if err != nil {
		return nil, err
	}
	var fields bson.D
	if err := bson.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// withID encodes doc and guarantees it carries a non-zero ObjectID _id first.
func withID(doc any) (bson.Raw, domain.EntityID, error) {
	data, err := bson.Marshal(doc)
	if err != nil {
		return nil, domain.NilEntityID, err
	}
	var fields bson.D
	if err := bson.Unmarshal(data, &fields); err != nil {
		return nil, domain.NilEntityID, err
	}

	out := make(bson.D, 0, len(fields)+1)
	var oid primitive.ObjectID
	for _, f := range fields {
		if f.Key != IDField {
			out = append(out, f)
			continue
		}
		if id, ok := f.Value.(primitive.ObjectID); ok {
			oid = id
		}
	}
	if oid.IsZero() {
		oid = primitive.NewObjectID()
	}
	out = append(bson.D{{Key: IDField, Value: oid}}, out...)

	raw, err := bson.Marshal(out)
	if err != nil {
		return nil, domain.NilEntityID, err
	}
	return raw, domain.EntityID(oid), nil
}
