package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/mentorhub-api/internal/models"
)

// SessionRepository manages persistence for live sessions.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository constructs a SessionRepository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new live session record.
func (r *SessionRepository) Create(ctx context.Context, session *models.LiveSession) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO live_sessions (id, mentor_id, title, description, start_time, end_time, is_live, video_url, created_at)
		VALUES (:id, :mentor_id, :title, :description, :start_time, :end_time, :is_live, :video_url, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("create live session: %w", err)
	}
	return nil
}

// ListUpcomingByMentor returns the mentor's sessions starting at or after
// the given instant, ascending by start time.
func (r *SessionRepository) ListUpcomingByMentor(ctx context.Context, mentorID string, after time.Time) ([]models.LiveSession, error) {
	const query = `SELECT id, mentor_id, title, description, start_time, end_time, is_live, video_url, created_at
		FROM live_sessions WHERE mentor_id = $1 AND start_time >= $2 ORDER BY start_time ASC`
	var sessions []models.LiveSession
	if err := r.db.SelectContext(ctx, &sessions, query, mentorID, after); err != nil {
		return nil, fmt.Errorf("list upcoming sessions: %w", err)
	}
	return sessions, nil
}
