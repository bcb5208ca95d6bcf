package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mentorhub-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func mentorRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "bio", "intro_video", "sebi_id", "created_at", "updated_at"})
}

func TestMentorRepositoryFindByEmail(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMentorRepository(db)

	mock.ExpectQuery("SELECT id, name, email, password_hash, bio, intro_video, sebi_id, created_at, updated_at FROM mentors WHERE LOWER\\(email\\) = LOWER\\(\\$1\\)").
		WithArgs("ann@x.com").
		WillReturnRows(mentorRows().AddRow("m1", "Ann", "ann@x.com", "hash", nil, nil, nil, time.Now(), time.Now()))

	mentor, err := repo.FindByEmail(context.Background(), "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, "m1", mentor.ID)
	assert.Nil(t, mentor.Bio)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMentorRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMentorRepository(db)

	mock.ExpectExec("INSERT INTO mentors").
		WithArgs(sqlmock.AnyArg(), "Ann", "ann@x.com", "hash", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mentor := &models.Mentor{Name: "Ann", Email: "ann@x.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(context.Background(), mentor))
	assert.NotEmpty(t, mentor.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMentorRepositoryUpdateProfileTransaction(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMentorRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE mentors SET bio").
		WithArgs("m1", "hi", "S1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM mentor_expertise").
		WithArgs("m1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO mentor_expertise").
		WithArgs("m1", "tag-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateProfile(context.Background(), "m1", "hi", "S1", []string{"tag-1"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMentorRepositoryUpdateProfileRollsBackOnError(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMentorRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE mentors SET bio").
		WithArgs("m1", "hi", "S1", sqlmock.AnyArg()).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.UpdateProfile(context.Background(), "m1", "hi", "S1", []string{"tag-1"})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMentorRepositoryListOnboarded(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMentorRepository(db)

	bio, sebi := "hi", "S1"
	mock.ExpectQuery("SELECT id, name, email, password_hash, bio, intro_video, sebi_id, created_at, updated_at FROM mentors WHERE bio IS NOT NULL AND sebi_id IS NOT NULL").
		WillReturnRows(mentorRows().AddRow("m1", "Ann", "ann@x.com", "hash", bio, nil, sebi, time.Now(), time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT me.mentor_id, t.id, t.name FROM mentor_expertise me")).
		WithArgs("m1").
		WillReturnRows(sqlmock.NewRows([]string{"mentor_id", "id", "name"}).AddRow("m1", "tag-1", "Stocks"))

	mentors, err := repo.ListOnboarded(context.Background())
	require.NoError(t, err)
	require.Len(t, mentors, 1)
	require.Len(t, mentors[0].Expertises, 1)
	assert.Equal(t, "Stocks", mentors[0].Expertises[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMentorRepositoryListOnboardedByTags(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMentorRepository(db)

	bio, sebi := "hi", "S1"
	mock.ExpectQuery("SELECT DISTINCT m.id, m.name, m.email").
		WithArgs("Stocks", "Options").
		WillReturnRows(mentorRows().AddRow("m1", "Ann", "ann@x.com", "hash", bio, nil, sebi, time.Now(), time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT me.mentor_id, t.id, t.name FROM mentor_expertise me")).
		WithArgs("m1").
		WillReturnRows(sqlmock.NewRows([]string{"mentor_id", "id", "name"}).AddRow("m1", "tag-1", "Stocks"))

	mentors, err := repo.ListOnboardedByTags(context.Background(), []string{"Stocks", "Options"})
	require.NoError(t, err)
	require.Len(t, mentors, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
