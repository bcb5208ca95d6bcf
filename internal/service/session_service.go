package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/mentorhub-api/internal/models"
	appErrors "github.com/noah-isme/mentorhub-api/pkg/errors"
)

type sessionRepository interface {
	Create(ctx context.Context, session *models.LiveSession) error
	ListUpcomingByMentor(ctx context.Context, mentorID string, after time.Time) ([]models.LiveSession, error)
}

// CreateSessionRequest is the payload for scheduling a live session.
// Timestamps are RFC 3339. Overlap with the mentor's existing sessions is
// not checked.
type CreateSessionRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	StartTime   string `json:"startTime" validate:"required"`
	EndTime     string `json:"endTime" validate:"required"`
}

// SessionService orchestrates live-session scheduling and lookup.
type SessionService struct {
	repo      sessionRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewSessionService constructs a SessionService.
func NewSessionService(repo sessionRepository, validate *validator.Validate, logger *zap.Logger) *SessionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{repo: repo, validator: validate, logger: logger, now: time.Now}
}

// Create schedules a live session owned by the mentor.
func (s *SessionService) Create(ctx context.Context, mentorID string, req CreateSessionRequest) (*models.LiveSession, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrMissingFields.Code, appErrors.ErrMissingFields.Status, appErrors.ErrMissingFields.Message)
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "startTime must be RFC 3339")
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endTime must be RFC 3339")
	}
	if !end.After(start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endTime must be after startTime")
	}

	description := req.Description
	session := &models.LiveSession{
		MentorID:    mentorID,
		Title:       req.Title,
		Description: &description,
		StartTime:   start.UTC(),
		EndTime:     end.UTC(),
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session")
	}
	return session, nil
}

// Upcoming returns the mentor's sessions that have not started yet,
// ascending by start time.
func (s *SessionService) Upcoming(ctx context.Context, mentorID string) ([]models.LiveSession, error) {
	sessions, err := s.repo.ListUpcomingByMentor(ctx, mentorID, s.now().UTC())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sessions")
	}
	return sessions, nil
}
