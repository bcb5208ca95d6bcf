package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mentorhub-api/internal/models"
)

func TestSessionRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectExec("INSERT INTO live_sessions").
		WithArgs(sqlmock.AnyArg(), "m1", "Intro to Options", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	session := &models.LiveSession{
		MentorID:  "m1",
		Title:     "Intro to Options",
		StartTime: time.Now().Add(time.Hour),
		EndTime:   time.Now().Add(2 * time.Hour),
	}
	require.NoError(t, repo.Create(context.Background(), session))
	assert.NotEmpty(t, session.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryListUpcomingByMentor(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "mentor_id", "title", "description", "start_time", "end_time", "is_live", "video_url", "created_at"}).
		AddRow("ls1", "m1", "Session", nil, now.Add(time.Hour), now.Add(2*time.Hour), false, nil, now)
	mock.ExpectQuery("FROM live_sessions WHERE mentor_id = \\$1 AND start_time >= \\$2 ORDER BY start_time ASC").
		WithArgs("m1", now).
		WillReturnRows(rows)

	sessions, err := repo.ListUpcomingByMentor(context.Background(), "m1", now)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "ls1", sessions[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
