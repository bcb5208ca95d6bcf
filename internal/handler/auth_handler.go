package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mentorhub-api/internal/models"
	"github.com/noah-isme/mentorhub-api/internal/service"
	appErrors "github.com/noah-isme/mentorhub-api/pkg/errors"
	"github.com/noah-isme/mentorhub-api/pkg/response"
)

// AuthHandler wires the signup/signin endpoints for both account types.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// MentorSignup handles POST /auth/mentor/signup.
func (h *AuthHandler) MentorSignup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrMissingFields.Code, http.StatusBadRequest, appErrors.ErrMissingFields.Message))
		return
	}

	token, err := h.service.SignupMentor(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Signup successful", response.Payload{"token": token})
}

// MentorSignin handles POST /auth/mentor/signin.
func (h *AuthHandler) MentorSignin(c *gin.Context) {
	var req models.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrMissingFields.Code, http.StatusBadRequest, appErrors.ErrMissingFields.Message))
		return
	}

	token, err := h.service.SigninMentor(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Signin successful", response.Payload{"token": token})
}

// StudentSignup handles POST /auth/student/signup.
func (h *AuthHandler) StudentSignup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrMissingFields.Code, http.StatusBadRequest, appErrors.ErrMissingFields.Message))
		return
	}

	token, err := h.service.SignupStudent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Signup successful", response.Payload{"token": token})
}

// StudentSignin handles POST /auth/student/signin.
func (h *AuthHandler) StudentSignin(c *gin.Context) {
	var req models.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrMissingFields.Code, http.StatusBadRequest, appErrors.ErrMissingFields.Message))
		return
	}

	token, err := h.service.SigninStudent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Signin successful", response.Payload{"token": token})
}
