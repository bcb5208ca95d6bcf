package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mentorhub-api/internal/middleware"
	"github.com/noah-isme/mentorhub-api/internal/models"
	"github.com/noah-isme/mentorhub-api/internal/service"
	appErrors "github.com/noah-isme/mentorhub-api/pkg/errors"
	"github.com/noah-isme/mentorhub-api/pkg/response"
)

// MentorHandler wires the mentor-facing endpoints. The legacy SPA submits
// the token inside POST bodies, so those endpoints resolve it from the
// body with a header fallback instead of using the JWT middleware.
type MentorHandler struct {
	auth     *service.AuthService
	mentors  *service.MentorService
	sessions *service.SessionService
	bookings *service.BookingService
	metrics  *service.MetricsService
}

// NewMentorHandler creates a new handler.
func NewMentorHandler(auth *service.AuthService, mentors *service.MentorService, sessions *service.SessionService, bookings *service.BookingService, metrics *service.MetricsService) *MentorHandler {
	return &MentorHandler{auth: auth, mentors: mentors, sessions: sessions, bookings: bookings, metrics: metrics}
}

type profilePayload struct {
	Token string `json:"token"`
	service.ProfileRequest
}

// Profile handles POST /mentor/profile.
func (h *MentorHandler) Profile(c *gin.Context) {
	var payload profilePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrMissingFields.Code, http.StatusBadRequest, appErrors.ErrMissingFields.Message))
		return
	}

	mentor, err := h.resolveMentor(c, payload.Token)
	if err != nil {
		response.Error(c, err)
		return
	}

	updated, err := h.mentors.UpsertProfile(c.Request.Context(), mentor.ID, payload.ProfileRequest)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile updated", response.Payload{"user": updated})
}

type liveSessionPayload struct {
	Token string `json:"token"`
	service.CreateSessionRequest
}

// CreateLiveSession handles POST /mentor/live-session.
func (h *MentorHandler) CreateLiveSession(c *gin.Context) {
	var payload liveSessionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrMissingFields.Code, http.StatusBadRequest, appErrors.ErrMissingFields.Message))
		return
	}

	mentor, err := h.resolveMentor(c, payload.Token)
	if err != nil {
		response.Error(c, err)
		return
	}

	session, err := h.sessions.Create(c.Request.Context(), mentor.ID, payload.CreateSessionRequest)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Session scheduled", response.Payload{"session": session})
}

// Bookings handles GET /mentor/booking (token in header).
func (h *MentorHandler) Bookings(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	bookings, err := h.bookings.ListForMentor(c.Request.Context(), claims.AccountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bookings fetched", response.Payload{"bookings": bookings})
}

type acknowledgePayload struct {
	Token          string `json:"token"`
	BookingID      string `json:"bookingId"`
	BookingVerdict string `json:"booking_verdict"`
}

// Acknowledge handles POST /mentor/acknowledge.
func (h *MentorHandler) Acknowledge(c *gin.Context) {
	var payload acknowledgePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrMissingFields.Code, http.StatusBadRequest, appErrors.ErrMissingFields.Message))
		return
	}
	if payload.BookingID == "" || payload.BookingVerdict == "" {
		response.Error(c, appErrors.ErrMissingFields)
		return
	}

	mentor, err := h.resolveMentor(c, payload.Token)
	if err != nil {
		response.Error(c, err)
		return
	}

	booking, err := h.bookings.Acknowledge(c.Request.Context(), mentor.ID, payload.BookingID, models.BookingStatus(payload.BookingVerdict))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Booking acknowledged", response.Payload{"booking": booking})
}

// Name handles GET /mentor/name/:token. The token travels as a path
// segment; the legacy SPA calls it this way right after signin.
func (h *MentorHandler) Name(c *gin.Context) {
	mentor, err := h.auth.ResolveMentor(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Mentor fetched", response.Payload{"user": mentor})
}

// Directory handles GET /mentor/all.
func (h *MentorHandler) Directory(c *gin.Context) {
	mentors, cacheHit, err := h.mentors.Directory(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordCacheOperation(cacheHit)

	response.OK(c, "Mentors fetched", response.Payload{"mentors": mentors})
}

// ByTags handles GET /mentor/by-tags/:tags.
func (h *MentorHandler) ByTags(c *gin.Context) {
	mentors, err := h.mentors.FilterByTags(c.Request.Context(), c.Param("tags"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Mentors fetched", response.Payload{"mentors": mentors})
}

// Tags handles GET /mentor/tags.
func (h *MentorHandler) Tags(c *gin.Context) {
	tags, err := h.mentors.Tags(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tags fetched", response.Payload{"tags": tags})
}

// Sessions handles GET /mentor/sessions/:id.
func (h *MentorHandler) Sessions(c *gin.Context) {
	sessions, err := h.sessions.Upcoming(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sessions fetched", response.Payload{"sessions": sessions})
}

// Get handles GET /mentor/:id.
func (h *MentorHandler) Get(c *gin.Context) {
	mentor, err := h.mentors.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Mentor fetched", response.Payload{"mentor": mentor})
}

func (h *MentorHandler) resolveMentor(c *gin.Context, bodyToken string) (*models.Mentor, error) {
	token := bodyToken
	if token == "" {
		token = middleware.TokenFromRequest(c)
	}
	if token == "" {
		return nil, appErrors.ErrUnauthorized
	}
	return h.auth.ResolveMentor(c.Request.Context(), token)
}
