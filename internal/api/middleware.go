package api

import (
	"net/http"
	"strings"

	"github.com/guibitar/fit-flow-control-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware creates a Gin middleware for bearer-token authentication.
// The token is validated end to end: signature, expiry, live session, and
// an active user account. The resolved user and session are stored in the
// request context for downstream handlers.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortWithError(c, http.StatusUnauthorized, "authorization header format must be Bearer {token}")
			return
		}

		user, session, err := authService.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			respondError(c, err)
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextSessionKey, session)
		c.Next()
	}
}

// RequireAdmin gates a route group to admin accounts. Must run AFTER
// AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			abortWithError(c, http.StatusUnauthorized, "authentication required")
			return
		}
		if !user.IsAdmin() {
			abortWithError(c, http.StatusForbidden, "admin access required")
			return
		}
		c.Next()
	}
}
