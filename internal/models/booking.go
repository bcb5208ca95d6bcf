package models

import "time"

// BookingStatus enumerates the booking state machine:
// PENDING -> CONFIRMED | CANCELLED, CONFIRMED -> COMPLETED | CANCELLED.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Valid reports whether the value is a known status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the acknowledge flow may move a booking
// from s to next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingConfirmed || next == BookingCancelled
	case BookingConfirmed:
		return next == BookingCompleted || next == BookingCancelled
	}
	return false
}

// Booking is a student's reservation of a one-to-one slot with a mentor.
// SessionID is carried for the schema's sake but never linked by the
// application.
type Booking struct {
	ID          string        `db:"id" json:"id"`
	StudentID   string        `db:"student_id" json:"student_id"`
	MentorID    string        `db:"mentor_id" json:"mentor_id"`
	SessionID   *string       `db:"session_id" json:"session_id,omitempty"`
	SessionDate time.Time     `db:"session_date" json:"session_date"`
	Status      BookingStatus `db:"status" json:"status"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}

// MentorBooking is a booking row joined with the booking student's
// contact details, as shown on the mentor dashboard.
type MentorBooking struct {
	Booking
	StudentName  string `db:"student_name" json:"student_name"`
	StudentEmail string `db:"student_email" json:"student_email"`
}
