package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mentorhub-api/internal/models"
	"github.com/noah-isme/mentorhub-api/internal/service"
	appErrors "github.com/noah-isme/mentorhub-api/pkg/errors"
	"github.com/noah-isme/mentorhub-api/pkg/response"
)

// ContextUserKey is the gin context key storing JWT claims.
const ContextUserKey = "currentUser"

// JWT protects routes by requiring a valid access token with the given
// role. The token is read from `Authorization: Bearer <t>` or, for the
// legacy SPA, from a bare `token` header.
func JWT(authService *service.AuthService, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)
		if token == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := authService.Resolve(token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if role != "" && claims.Role != role {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "wrong account type"))
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// TokenFromRequest extracts the access token from the request headers.
func TokenFromRequest(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}
	return c.GetHeader("token")
}
