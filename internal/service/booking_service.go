package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/mentorhub-api/internal/models"
	appErrors "github.com/noah-isme/mentorhub-api/pkg/errors"
)

type bookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	ListByMentor(ctx context.Context, mentorID string) ([]models.MentorBooking, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error
}

type bookingMentorRepository interface {
	FindByID(ctx context.Context, id string) (*models.Mentor, error)
}

// BookingService orchestrates the one-to-one reservation flow.
type BookingService struct {
	repo      bookingRepository
	mentors   bookingMentorRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBookingService constructs a BookingService.
func NewBookingService(repo bookingRepository, mentors bookingMentorRepository, validate *validator.Validate, logger *zap.Logger) *BookingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{repo: repo, mentors: mentors, validator: validate, logger: logger}
}

// Create writes a PENDING booking linking the student and mentor. The
// mentor's calendar is not consulted; double booking is accepted.
func (s *BookingService) Create(ctx context.Context, studentID, mentorID string, sessionDate time.Time) (*models.Booking, error) {
	if _, err := s.mentors.FindByID(ctx, mentorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Mentor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load mentor")
	}

	booking := &models.Booking{
		StudentID:   studentID,
		MentorID:    mentorID,
		SessionDate: sessionDate.UTC(),
		Status:      models.BookingPending,
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create booking")
	}
	return booking, nil
}

// ListForMentor returns the mentor's bookings with student contact details.
func (s *BookingService) ListForMentor(ctx context.Context, mentorID string) ([]models.MentorBooking, error) {
	bookings, err := s.repo.ListByMentor(ctx, mentorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list bookings")
	}
	return bookings, nil
}

// Acknowledge applies the mentor's verdict to a booking's status. The
// legacy backend read the row back without updating it; this service
// implements the evident intent and guards the transition.
func (s *BookingService) Acknowledge(ctx context.Context, mentorID, bookingID string, verdict models.BookingStatus) (*models.Booking, error) {
	if !verdict.Valid() {
		return nil, appErrors.ErrInvalidVerdict
	}

	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Booking not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load booking")
	}

	if booking.MentorID != mentorID {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "booking belongs to another mentor")
	}
	if !booking.Status.CanTransitionTo(verdict) {
		return nil, appErrors.Clone(appErrors.ErrInvalidVerdict, "booking cannot move to "+string(verdict))
	}

	if err := s.repo.UpdateStatus(ctx, bookingID, verdict); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update booking")
	}

	booking.Status = verdict
	return booking, nil
}
