package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"custody/internal/custody/models"
	"custody/pkg/domain"
	"custody/pkg/platform/httputil"
	"custody/pkg/requestcontext"
)

// OfficerService manages officers by officer_id.
type OfficerService interface {
	Create(ctx context.Context, officer models.Officer) (*models.Officer, error)
	Signup(ctx context.Context, req models.SignupRequest) (*models.Officer, error)
	Login(ctx context.Context, officerID, password string) error
	List(ctx context.Context) ([]models.Officer, error)
	GetByOfficerID(ctx context.Context, officerID string) (*models.Officer, error)
	UpdateByOfficerID(ctx context.Context, officerID string, patch models.OfficerUpdate) (*models.Officer, error)
	DeleteByOfficerID(ctx context.Context, officerID string) error
}

// Officers serves /officers/.
type Officers struct {
	service OfficerService
	logger  *slog.Logger
}

func NewOfficers(service OfficerService, logger *slog.Logger) *Officers {
	return &Officers{service: service, logger: logger}
}

func (h *Officers) Register(r chi.Router) {
	r.Route("/"+domain.ResourceOfficers.String(), func(r chi.Router) {
		r.Post("/signup", h.handleSignup)
		r.Post("/login", h.handleLogin)
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Get("/{officer_id}", h.handleGet)
		r.Put("/{officer_id}", h.handleUpdate)
		r.Delete("/{officer_id}", h.handleDelete)
	})
}

func (h *Officers) handleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.SignupRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	officer, err := h.service.Signup(ctx, *req)
	if err != nil {
		h.writeError(ctx, w, err, "officer signup failed")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, officer)
}

func (h *Officers) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := h.service.Login(ctx, req.OfficerID, req.Password); err != nil {
		h.writeError(ctx, w, err, "officer login failed")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.LoginResponse{OfficerID: req.OfficerID})
}

func (h *Officers) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	officer, ok := httputil.Decode[models.Officer](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	created, err := h.service.Create(ctx, *officer)
	if err != nil {
		h.writeError(ctx, w, err, "failed to create officer")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, created)
}

func (h *Officers) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	officers, err := h.service.List(ctx)
	if err != nil {
		h.writeError(ctx, w, err, "failed to list officers")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.OfficerCollection{Officers: officers})
}

func (h *Officers) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	officer, err := h.service.GetByOfficerID(ctx, chi.URLParam(r, "officer_id"))
	if err != nil {
		h.writeError(ctx, w, err, "failed to get officer")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, officer)
}

func (h *Officers) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	patch, ok := httputil.Decode[models.OfficerUpdate](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	officer, err := h.service.UpdateByOfficerID(ctx, chi.URLParam(r, "officer_id"), *patch)
	if err != nil {
		h.writeError(ctx, w, err, "failed to update officer")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, officer)
}

func (h *Officers) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.DeleteByOfficerID(ctx, chi.URLParam(r, "officer_id")); err != nil {
		h.writeError(ctx, w, err, "failed to delete officer")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Officers) writeError(ctx context.Context, w http.ResponseWriter, err error, msg string) {
	writeError(ctx, w, h.logger, err, msg, domain.ResourceOfficers)
}
