// Package store persists custody records in document collections.
package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"custody/internal/custody/models"
	"custody/internal/docstore"
	"custody/pkg/domain"
)

// Collection names.
const (
	Shelves   = "shelves"
	Boxes     = "boxes"
	Bags      = "bags"
	Officers  = "officers"
	Prisoners = "prisoners"
)

// Indexes are the non-unique indexes backing relationship and business-key lookups.
// Business key uniqueness is carried by the derived _id.
var Indexes = map[string][]string{
	Bags:      {"box_id", "prisoner_id"},
	Boxes:     {"shelf_id"},
	Prisoners: {"officer_id", "id_number"},
	Officers:  {"officer_id"},
}

// Repository stores one record type in one collection. It returns
// sentinel.ErrNotFound and sentinel.ErrAlreadyUsed (possibly wrapped) and leaves
// their translation to the caller.
type Repository[T any] struct {
	coll docstore.Collection
}

// New binds a repository to a collection.
func New[T any](coll docstore.Collection) *Repository[T] {
	return &Repository[T]{coll: coll}
}

// Collection reports the backing collection name.
func (r *Repository[T]) Collection() string {
	return r.coll.Name()
}

// Create inserts record and reads it back by its (given or assigned) id.
func (r *Repository[T]) Create(ctx context.Context, record T) (*T, error) {
	id, err := r.coll.InsertOne(ctx, record)
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *Repository[T]) FindByID(ctx context.Context, id domain.EntityID) (*T, error) {
	return r.FindOne(ctx, docstore.ByID(id))
}

func (r *Repository[T]) FindOne(ctx context.Context, filter docstore.Filter) (*T, error) {
	raw, err := r.coll.FindOne(ctx, filter)
	if err != nil {
		return nil, err
	}
	return r.decode(raw)
}

// List returns records in natural order, at most limit (capped at models.ListLimit).
func (r *Repository[T]) List(ctx context.Context, limit int) ([]T, error) {
	return r.ListBy(ctx, nil, limit)
}

func (r *Repository[T]) ListBy(ctx context.Context, filter docstore.Filter, limit int) ([]T, error) {
	docs, err := r.coll.Find(ctx, filter, int64(clampLimit(limit)))
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, raw := range docs {
		rec, err := r.decode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, nil
}

// Update applies the non-nil fields of patch to the record with the given id and
// returns the result. An empty patch reads the current record.
func (r *Repository[T]) Update(ctx context.Context, id domain.EntityID, patch any) (*T, error) {
	return r.UpdateOne(ctx, docstore.ByID(id), patch)
}

func (r *Repository[T]) UpdateOne(ctx context.Context, filter docstore.Filter, patch any) (*T, error) {
	set, err := docstore.Fields(patch)
	if err != nil {
		return nil, fmt.Errorf("encode %s patch: %w", r.coll.Name(), err)
	}
	set = withoutID(set)
	raw, err := r.coll.FindOneAndSet(ctx, filter, set)
	if err != nil {
		return nil, err
	}
	return r.decode(raw)
}

func (r *Repository[T]) Delete(ctx context.Context, id domain.EntityID) error {
	return r.DeleteOne(ctx, docstore.ByID(id))
}

func (r *Repository[T]) DeleteOne(ctx context.Context, filter docstore.Filter) error {
	return r.coll.DeleteOne(ctx, filter)
}

func (r *Repository[T]) decode(raw bson.Raw) (*T, error) {
	var rec T
	if err := docstore.Decode(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode %s document: %w", r.coll.Name(), err)
	}
	return &rec, nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > models.ListLimit {
		return models.ListLimit
	}
	return limit
}

// withoutID drops any _id so an update can never change the primary key.
func withoutID(set bson.D) bson.D {
	out := set[:0]
	for _, f := range set {
		if f.Key != docstore.IDField {
			out = append(out, f)
		}
	}
	return out
}
