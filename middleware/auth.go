package middleware

import (
	"errors"
	"net/http"
	"strings"

	"lexaid/services/user"
	"lexaid/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

// JWTAuthMiddleware resolves the bearer token to a session. Requests without
// a valid, current token are rejected with 401.
func JWTAuthMiddleware(auth user.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			return
		}

		session, err := auth.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			if errors.Is(err, utils.ErrUnauthorized) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
				return
			}
			utils.GetLogger().Warn("Authentication backend failed", zap.Error(err))
			utils.RespondError(c, err)
			return
		}

		utils.SetSession(c, session)
		c.Next()
	}
}
