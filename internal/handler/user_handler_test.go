package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mentorhub-api/internal/models"
	"github.com/noah-isme/mentorhub-api/internal/service"
)

type stubProfileStore struct {
	items map[string]*models.Mentor
}

func (s *stubProfileStore) FindByIDWithTags(_ context.Context, id string) (*models.Mentor, error) {
	if m, ok := s.items[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

type userHandlerFixture struct {
	handler  *UserHandler
	auth     *service.AuthService
	bookings *stubBookingStore
}

func newUserHandlerFixture() *userHandlerFixture {
	bio := "Derivatives mentor"
	mentors := &stubMentorStore{items: map[string]*models.Mentor{
		"m1": {ID: "m1", Name: "Asha", Email: "asha@x.com", Bio: &bio},
	}}
	users := &stubUserStore{items: map[string]*models.User{
		"s1": {ID: "s1", Name: "Ravi", Email: "ravi@x.com", PasswordHash: "secret12"},
	}}
	bookings := &stubBookingStore{}
	auth := newTestAuthService(mentors, users)

	profiles := service.NewProfileService(&stubProfileStore{items: mentors.items}, &stubSessionStore{}, nil)
	bookingSvc := service.NewBookingService(bookings, mentors, nil, nil)

	return &userHandlerFixture{
		handler:  NewUserHandler(auth, profiles, bookingSvc),
		auth:     auth,
		bookings: bookings,
	}
}

func (f *userHandlerFixture) studentToken(t *testing.T) string {
	t.Helper()
	token, err := f.auth.IssueToken("s1", models.RoleStudent, "ravi@x.com")
	require.NoError(t, err)
	return token
}

func TestUserHandlerMentorProfile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fixture := newUserHandlerFixture()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/user/mentor/m1", nil)
	c.Params = gin.Params{{Key: "id", Value: "m1"}}

	fixture.handler.Mentor(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	mentor, ok := envelope["mentor"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Asha", mentor["name"])
	assert.Equal(t, "Derivatives mentor", mentor["bio"])
}

func TestUserHandlerMentorProfileNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fixture := newUserHandlerFixture()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/user/mentor/ghost", nil)
	c.Params = gin.Params{{Key: "id", Value: "ghost"}}

	fixture.handler.Mentor(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserHandlerCreateBooking(t *testing.T) {
	fixture := newUserHandlerFixture()

	rec, c := postJSON(t, gin.H{
		"token":        fixture.studentToken(t),
		"session_date": "2026-09-05",
	}, "/user/booking/m1")
	c.Params = gin.Params{{Key: "id", Value: "m1"}}

	fixture.handler.CreateBooking(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, fixture.bookings.items, 1)
	booking := fixture.bookings.items["booking-1"]
	assert.Equal(t, "s1", booking.StudentID)
	assert.Equal(t, "m1", booking.MentorID)
	assert.Equal(t, models.BookingPending, booking.Status)
}

func TestUserHandlerCreateBookingBadDate(t *testing.T) {
	fixture := newUserHandlerFixture()

	rec, c := postJSON(t, gin.H{
		"token":        fixture.studentToken(t),
		"session_date": "next tuesday",
	}, "/user/booking/m1")
	c.Params = gin.Params{{Key: "id", Value: "m1"}}

	fixture.handler.CreateBooking(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHandlerCreateBookingMissingDate(t *testing.T) {
	fixture := newUserHandlerFixture()

	rec, c := postJSON(t, gin.H{"token": fixture.studentToken(t)}, "/user/booking/m1")
	c.Params = gin.Params{{Key: "id", Value: "m1"}}

	fixture.handler.CreateBooking(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Send All Fields", decodeEnvelope(t, rec)["msg"])
}

func TestUserHandlerCreateBookingMentorToken(t *testing.T) {
	fixture := newUserHandlerFixture()
	mentorToken, err := fixture.auth.IssueToken("m1", models.RoleMentor, "asha@x.com")
	require.NoError(t, err)

	rec, c := postJSON(t, gin.H{
		"token":        mentorToken,
		"session_date": "2026-09-05",
	}, "/user/booking/m1")
	c.Params = gin.Params{{Key: "id", Value: "m1"}}

	fixture.handler.CreateBooking(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
