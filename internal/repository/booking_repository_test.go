package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mentorhub-api/internal/models"
)

func TestBookingRepositoryCreateDefaultsStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(sqlmock.AnyArg(), "s1", "m1", sqlmock.AnyArg(), sqlmock.AnyArg(), string(models.BookingPending), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	booking := &models.Booking{StudentID: "s1", MentorID: "m1", SessionDate: time.Now()}
	require.NoError(t, repo.Create(context.Background(), booking))
	assert.Equal(t, models.BookingPending, booking.Status)
	assert.NotEmpty(t, booking.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryListByMentor(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	rows := sqlmock.NewRows([]string{"id", "student_id", "mentor_id", "session_id", "session_date", "status", "created_at", "updated_at", "student_name", "student_email"}).
		AddRow("b1", "s1", "m1", nil, time.Now(), "PENDING", time.Now(), time.Now(), "Stu", "stu@x.com")
	mock.ExpectQuery(regexp.QuoteMeta("JOIN users u ON u.id = b.student_id")).
		WithArgs("m1").
		WillReturnRows(rows)

	bookings, err := repo.ListByMentor(context.Background(), "m1")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "Stu", bookings[0].StudentName)
	assert.Equal(t, "stu@x.com", bookings[0].StudentEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs("b1", string(models.BookingConfirmed), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), "b1", models.BookingConfirmed))
	assert.NoError(t, mock.ExpectationsWereMet())
}
