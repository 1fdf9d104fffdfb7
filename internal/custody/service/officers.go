package service

import (
	"context"
	"errors"

	"custody/internal/custody/metrics"
	"custody/internal/custody/models"
	"custody/internal/docstore"
	"custody/pkg/domain"
	dErrors "custody/pkg/domain-errors"
	"custody/pkg/platform/audit"
	"custody/pkg/platform/sentinel"
	"custody/pkg/requestcontext"
)

const officerIDField = "officer_id"

var errInvalidCredentials = dErrors.New(dErrors.CodeUnauthorized, "Invalid officer ID or password")

// Officers manages officer records, which are addressed by officer_id rather
// than by their derived id.
type Officers struct {
	*Resource[models.Officer, models.OfficerUpdate]
}

func NewOfficers(repo Repository[models.Officer], opts ...Option) *Officers {
	return &Officers{
		Resource: NewResource[models.Officer, models.OfficerUpdate](domain.ResourceOfficers, repo, opts...),
	}
}

// Signup registers an officer. The id is derived from officer_id, so a second
// signup with the same officer_id is a conflict.
func (s *Officers) Signup(ctx context.Context, req models.SignupRequest) (*models.Officer, error) {
	officer, err := s.Create(ctx, req.Officer())
	if err != nil {
		return nil, err
	}
	s.emit(ctx, domain.ResourceOfficers, audit.ActionOfficerSignedUp, officer.ID.Hex())
	return officer, nil
}

// Login checks officerID and password against the stored record. Plaintext
// comparison happens in the store query.
func (s *Officers) Login(ctx context.Context, officerID, password string) error {
	if s.lockout != nil {
		if err := s.lockout.Check(ctx, officerID); err != nil {
			if dErrors.HasCode(err, dErrors.CodeTooManyRequests) {
				s.loginOutcome(ctx, officerID, audit.ActionLoginLocked, metrics.LoginLocked)
			}
			return err
		}
	}

	_, err := s.repo.FindOne(ctx, docstore.Filter{
		officerIDField: officerID,
		"password":     password,
	})
	if errors.Is(err, sentinel.ErrNotFound) {
		return s.loginFailed(ctx, officerID)
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check officer credentials")
	}

	if s.lockout != nil {
		if err := s.lockout.Clear(ctx, officerID); err != nil {
			s.logger.WarnContext(ctx, "failed to clear login failures",
				"officer_id", officerID,
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
		}
	}
	s.loginOutcome(ctx, officerID, audit.ActionLoginSucceeded, metrics.LoginSucceeded)
	return nil
}

func (s *Officers) loginFailed(ctx context.Context, officerID string) error {
	s.loginOutcome(ctx, officerID, audit.ActionLoginFailed, metrics.LoginFailed)
	if s.lockout == nil {
		return errInvalidCredentials
	}
	locked, err := s.lockout.RecordFailure(ctx, officerID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to record login failure",
			"officer_id", officerID,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	if locked {
		s.emit(ctx, domain.ResourceOfficers, audit.ActionLoginLocked, officerID)
	}
	return errInvalidCredentials
}

func (s *Officers) loginOutcome(ctx context.Context, officerID string, action audit.Action, outcome string) {
	s.emit(ctx, domain.ResourceOfficers, action, officerID)
	if s.metrics != nil {
		s.metrics.IncrementLogin(outcome)
	}
}

func (s *Officers) GetByOfficerID(ctx context.Context, officerID string) (*models.Officer, error) {
	return s.GetBy(ctx, officerIDField, officerID)
}

func (s *Officers) UpdateByOfficerID(ctx context.Context, officerID string, patch models.OfficerUpdate) (*models.Officer, error) {
	return s.UpdateBy(ctx, officerIDField, officerID, patch)
}

func (s *Officers) DeleteByOfficerID(ctx context.Context, officerID string) error {
	return s.DeleteBy(ctx, officerIDField, officerID)
}
