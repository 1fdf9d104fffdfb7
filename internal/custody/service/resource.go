package service

import (
	"context"
	"errors"
	"fmt"

	"custody/internal/custody/models"
	"custody/internal/docstore"
	"custody/pkg/domain"
	dErrors "custody/pkg/domain-errors"
	"custody/pkg/platform/audit"
	"custody/pkg/platform/sentinel"
	"custody/pkg/requestcontext"
)

// Resource implements the record operations shared by every custody collection.
type Resource[T Record[T], U Patch[U]] struct {
	resource domain.Resource
	repo     Repository[T]
	options
}

// NewResource binds a service to one collection.
func NewResource[T Record[T], U Patch[U]](resource domain.Resource, repo Repository[T], opts ...Option) *Resource[T, U] {
	return &Resource[T, U]{
		resource: resource,
		repo:     repo,
		options:  newOptions(opts),
	}
}

// Kind is the singular name used in messages.
func (s *Resource[T, U]) Kind() string {
	return s.resource.Kind()
}

// Create validates rec, derives its id when it has a business key and stores it.
// Any id supplied by the caller is ignored.
func (s *Resource[T, U]) Create(ctx context.Context, rec T) (*T, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	id := domain.NilEntityID
	if key := rec.BusinessKey(); key != "" {
		derived, err := domain.DeriveID(key)
		if err != nil {
			return nil, err
		}
		id = derived
	}

	created, err := s.repo.Create(ctx, rec.Prepare(id, requestcontext.Now(ctx)))
	if err != nil {
		return nil, s.translate(err, id.Hex(), "create")
	}

	recordID := (*created).RecordID().Hex()
	s.emit(ctx, s.resource, audit.ActionRecordCreated, recordID)
	if s.metrics != nil {
		s.metrics.IncrementCreated(s.resource.String())
	}
	s.logger.InfoContext(ctx, "record created",
		"resource", s.resource.String(),
		"id", recordID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return created, nil
}

func (s *Resource[T, U]) Get(ctx context.Context, id domain.EntityID) (*T, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(err, id.Hex(), "load")
	}
	return rec, nil
}

// GetBy looks a record up by a business key field, e.g. prisoners by id_number.
func (s *Resource[T, U]) GetBy(ctx context.Context, field string, value any) (*T, error) {
	rec, err := s.repo.FindOne(ctx, docstore.Filter{field: value})
	if err != nil {
		return nil, s.translate(err, fmt.Sprint(value), "load")
	}
	return rec, nil
}

// List returns up to models.ListLimit records in store order.
func (s *Resource[T, U]) List(ctx context.Context) ([]T, error) {
	recs, err := s.repo.List(ctx, models.ListLimit)
	if err != nil {
		return nil, s.translate(err, "", "list")
	}
	return recs, nil
}

// ListBy returns records whose field equals value, e.g. bags by box_id.
func (s *Resource[T, U]) ListBy(ctx context.Context, field string, value any) ([]T, error) {
	recs, err := s.repo.ListBy(ctx, docstore.Filter{field: value}, models.ListLimit)
	if err != nil {
		return nil, s.translate(err, "", "list")
	}
	return recs, nil
}

// Update applies the supplied fields of patch. A non-empty patch refreshes
// last_updated unless the patch sets it; an empty patch returns the record as is.
func (s *Resource[T, U]) Update(ctx context.Context, id domain.EntityID, patch U) (*T, error) {
	return s.update(ctx, docstore.ByID(id), id.Hex(), patch)
}

// UpdateBy is Update addressed by a business key field.
func (s *Resource[T, U]) UpdateBy(ctx context.Context, field string, value any, patch U) (*T, error) {
	return s.update(ctx, docstore.Filter{field: value}, fmt.Sprint(value), patch)
}

func (s *Resource[T, U]) update(ctx context.Context, filter docstore.Filter, ref string, patch U) (*T, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		rec, err := s.repo.FindOne(ctx, filter)
		if err != nil {
			return nil, s.translate(err, ref, "load")
		}
		return rec, nil
	}

	updated, err := s.repo.UpdateOne(ctx, filter, patch.Touch(requestcontext.Now(ctx)))
	if err != nil {
		return nil, s.translate(err, ref, "update")
	}

	s.emit(ctx, s.resource, audit.ActionRecordUpdated, (*updated).RecordID().Hex())
	if s.metrics != nil {
		s.metrics.IncrementUpdated(s.resource.String())
	}
	return updated, nil
}

func (s *Resource[T, U]) Delete(ctx context.Context, id domain.EntityID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.translate(err, id.Hex(), "delete")
	}
	s.deleted(ctx, id.Hex())
	return nil
}

// DeleteBy is Delete addressed by a business key field.
func (s *Resource[T, U]) DeleteBy(ctx context.Context, field string, value any) error {
	ref := fmt.Sprint(value)
	if err := s.repo.DeleteOne(ctx, docstore.Filter{field: value}); err != nil {
		return s.translate(err, ref, "delete")
	}
	s.deleted(ctx, ref)
	return nil
}

func (s *Resource[T, U]) deleted(ctx context.Context, ref string) {
	s.emit(ctx, s.resource, audit.ActionRecordDeleted, ref)
	if s.metrics != nil {
		s.metrics.IncrementDeleted(s.resource.String())
	}
}

// translate maps store sentinels to domain errors; ref names the record in messages.
func (s *Resource[T, U]) translate(err error, ref, op string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("%s %s not found", s.Kind(), ref))
	case errors.Is(err, sentinel.ErrAlreadyUsed):
		return dErrors.New(dErrors.CodeConflict, fmt.Sprintf("%s %s already exists", s.Kind(), ref))
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("failed to %s %s", op, s.resource))
	}
}
