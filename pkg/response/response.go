package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/mentorhub-api/pkg/errors"
)

// Payload holds the extra top-level keys merged into the envelope.
type Payload map[string]interface{}

// Every reply uses the flat `{success, msg, ...}` envelope the SPA expects.
// Unlike the legacy API, errors carry their real HTTP status.

// OK sends a success envelope merged with the payload keys.
func OK(c *gin.Context, msg string, payload Payload) {
	JSON(c, http.StatusOK, msg, payload)
}

// Created sends a success envelope with HTTP 201.
func Created(c *gin.Context, msg string, payload Payload) {
	JSON(c, http.StatusCreated, msg, payload)
}

// JSON sends a success envelope with an explicit status.
func JSON(c *gin.Context, status int, msg string, payload Payload) {
	body := gin.H{"success": true, "msg": msg}
	for k, v := range payload {
		body[k] = v
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(status, body)
}

// Error sends a failure envelope, mapping the error to its HTTP status.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, gin.H{"success": false, "msg": appErr.Message, "code": appErr.Code})
}
