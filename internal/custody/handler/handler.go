// Package handler exposes the custody resources over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"custody/pkg/domain"
	dErrors "custody/pkg/domain-errors"
	"custody/pkg/platform/httputil"
	"custody/pkg/requestcontext"
)

// Service is the record service behind one resource.
type Service[T any, U any] interface {
	Create(ctx context.Context, rec T) (*T, error)
	Get(ctx context.Context, id domain.EntityID) (*T, error)
	GetBy(ctx context.Context, field string, value any) (*T, error)
	List(ctx context.Context) ([]T, error)
	ListBy(ctx context.Context, field string, value any) ([]T, error)
	Update(ctx context.Context, id domain.EntityID, patch U) (*T, error)
	Delete(ctx context.Context, id domain.EntityID) error
}

// relation is a sub-route that filters the collection by one field.
type relation struct {
	segment string
	field   string
}

// Handler serves /{resource}/ for one record type.
type Handler[T any, U any] struct {
	resource   domain.Resource
	service    Service[T, U]
	logger     *slog.Logger
	collection func([]T) any
	listBy     []relation
	lookups    []relation
}

type Option[T any, U any] func(*Handler[T, U])

// WithListBy adds GET /{resource}/{segment}/{id} listing records whose field
// references the given id, e.g. /bags/box/{box_id}.
func WithListBy[T any, U any](segment, field string) Option[T, U] {
	return func(h *Handler[T, U]) {
		h.listBy = append(h.listBy, relation{segment: segment, field: field})
	}
}

// WithLookup adds GET /{resource}/{segment}/{value} returning the single record
// whose business key field equals value, e.g. /prisoners/id-number/{id_number}.
func WithLookup[T any, U any](segment, field string) Option[T, U] {
	return func(h *Handler[T, U]) {
		h.lookups = append(h.lookups, relation{segment: segment, field: field})
	}
}

// New creates a handler. collection wraps list results in the named response shape.
func New[T any, U any](
	resource domain.Resource,
	service Service[T, U],
	logger *slog.Logger,
	collection func([]T) any,
	opts ...Option[T, U],
) *Handler[T, U] {
	h := &Handler[T, U]{
		resource:   resource,
		service:    service,
		logger:     logger,
		collection: collection,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the resource routes on r.
func (h *Handler[T, U]) Register(r chi.Router) {
	r.Route("/"+h.resource.String(), func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		for _, rel := range h.listBy {
			r.Get("/"+rel.segment+"/{value}", h.handleListBy(rel.field))
		}
		for _, rel := range h.lookups {
			r.Get("/"+rel.segment+"/{value}", h.handleLookup(rel.field))
		}
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler[T, U]) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	rec, ok := httputil.Decode[T](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	created, err := h.service.Create(ctx, *rec)
	if err != nil {
		writeError(ctx, w, h.logger, err, "failed to create record", h.resource)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler[T, U]) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	recs, err := h.service.List(ctx)
	if err != nil {
		writeError(ctx, w, h.logger, err, "failed to list records", h.resource)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.collection(recs))
}

func (h *Handler[T, U]) handleListBy(field string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := domain.ParseEntityID(chi.URLParam(r, "value"))
		if err != nil {
			writeError(ctx, w, h.logger, err, "invalid "+field, h.resource)
			return
		}
		recs, err := h.service.ListBy(ctx, field, id)
		if err != nil {
			writeError(ctx, w, h.logger, err, "failed to list records", h.resource)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, h.collection(recs))
	}
}

func (h *Handler[T, U]) handleLookup(field string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		rec, err := h.service.GetBy(ctx, field, chi.URLParam(r, "value"))
		if err != nil {
			writeError(ctx, w, h.logger, err, "failed to get record", h.resource)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, rec)
	}
}

func (h *Handler[T, U]) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	rec, err := h.service.Get(ctx, id)
	if err != nil {
		writeError(ctx, w, h.logger, err, "failed to get record", h.resource)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler[T, U]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	patch, ok := httputil.Decode[U](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	updated, err := h.service.Update(ctx, id, *patch)
	if err != nil {
		writeError(ctx, w, h.logger, err, "failed to update record", h.resource)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler[T, U]) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(ctx, id); err != nil {
		writeError(ctx, w, h.logger, err, "failed to delete record", h.resource)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler[T, U]) pathID(w http.ResponseWriter, r *http.Request) (domain.EntityID, bool) {
	id, err := domain.ParseEntityID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(r.Context(), w, h.logger, err, "invalid record id", h.resource)
		return domain.NilEntityID, false
	}
	return id, true
}

// writeError logs client errors as warnings and everything else as errors, then
// writes the mapped response.
func writeError(ctx context.Context, w http.ResponseWriter, logger *slog.Logger, err error, msg string, resource domain.Resource) {
	attrs := []any{
		"resource", resource.String(),
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	}
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		logger.ErrorContext(ctx, msg, attrs...)
	} else {
		logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}
