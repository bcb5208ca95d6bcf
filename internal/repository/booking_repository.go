package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/mentorhub-api/internal/models"
)

// BookingRepository manages persistence for one-to-one bookings.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository constructs a BookingRepository.
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts a new booking record. No slot-conflict check is performed;
// availability is out of scope for this service.
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	if booking.Status == "" {
		booking.Status = models.BookingPending
	}
	now := time.Now().UTC()
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}
	booking.UpdatedAt = now

	const query = `INSERT INTO bookings (id, student_id, mentor_id, session_id, session_date, status, created_at, updated_at)
		VALUES (:id, :student_id, :mentor_id, :session_id, :session_date, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, booking); err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

// FindByID fetches a booking by ID.
func (r *BookingRepository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	const query = `SELECT id, student_id, mentor_id, session_id, session_date, status, created_at, updated_at
		FROM bookings WHERE id = $1`
	var booking models.Booking
	if err := r.db.GetContext(ctx, &booking, query, id); err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListByMentor returns the mentor's bookings joined with each student's
// name and email, newest first.
func (r *BookingRepository) ListByMentor(ctx context.Context, mentorID string) ([]models.MentorBooking, error) {
	const query = `SELECT b.id, b.student_id, b.mentor_id, b.session_id, b.session_date, b.status, b.created_at, b.updated_at,
			u.name AS student_name, u.email AS student_email
		FROM bookings b
		JOIN users u ON u.id = b.student_id
		WHERE b.mentor_id = $1
		ORDER BY b.created_at DESC`
	var bookings []models.MentorBooking
	if err := r.db.SelectContext(ctx, &bookings, query, mentorID); err != nil {
		return nil, fmt.Errorf("list mentor bookings: %w", err)
	}
	return bookings, nil
}

// UpdateStatus sets a booking's status.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error {
	const query = `UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC()); err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	return nil
}
