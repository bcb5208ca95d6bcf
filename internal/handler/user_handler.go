package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mentorhub-api/internal/middleware"
	"github.com/noah-isme/mentorhub-api/internal/models"
	"github.com/noah-isme/mentorhub-api/internal/service"
	appErrors "github.com/noah-isme/mentorhub-api/pkg/errors"
	"github.com/noah-isme/mentorhub-api/pkg/response"
)

// UserHandler wires the student-facing endpoints.
type UserHandler struct {
	auth     *service.AuthService
	profiles *service.ProfileService
	bookings *service.BookingService
}

// NewUserHandler creates a new handler.
func NewUserHandler(auth *service.AuthService, profiles *service.ProfileService, bookings *service.BookingService) *UserHandler {
	return &UserHandler{auth: auth, profiles: profiles, bookings: bookings}
}

// Mentor handles GET /user/mentor/:id: the public mentor profile with
// expertise tags and upcoming sessions.
func (h *UserHandler) Mentor(c *gin.Context) {
	profile, err := h.profiles.PublicProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Mentor fetched", response.Payload{"mentor": profile})
}

type bookingPayload struct {
	Token       string `json:"token"`
	SessionDate string `json:"session_date"`
}

// CreateBooking handles POST /user/booking/:id where :id is the mentor.
func (h *UserHandler) CreateBooking(c *gin.Context) {
	var payload bookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrMissingFields.Code, http.StatusBadRequest, appErrors.ErrMissingFields.Message))
		return
	}
	if payload.SessionDate == "" {
		response.Error(c, appErrors.ErrMissingFields)
		return
	}

	sessionDate, err := parseSessionDate(payload.SessionDate)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "session_date must be RFC 3339 or YYYY-MM-DD"))
		return
	}

	student, err := h.resolveStudent(c, payload.Token)
	if err != nil {
		response.Error(c, err)
		return
	}

	booking, err := h.bookings.Create(c.Request.Context(), student.ID, c.Param("id"), sessionDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Booking created", response.Payload{"booking": booking})
}

func (h *UserHandler) resolveStudent(c *gin.Context, bodyToken string) (*models.User, error) {
	token := bodyToken
	if token == "" {
		token = middleware.TokenFromRequest(c)
	}
	if token == "" {
		return nil, appErrors.ErrUnauthorized
	}
	return h.auth.ResolveStudent(c.Request.Context(), token)
}

func parseSessionDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
