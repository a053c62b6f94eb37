// File: utils/auth_session.go
package utils

import "github.com/gin-gonic/gin"

const sessionKey = "session"

// Session is the authenticated identity attached to a request.
type Session struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// SetSession stores s on the gin context.
func SetSession(c *gin.Context, s Session) {
	c.Set(sessionKey, s)
	c.Set("userID", s.UserID)
}

// GetSession returns the request's session, if the auth middleware set one.
func GetSession(c *gin.Context) (Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return Session{}, false
	}
	s, ok := v.(Session)
	return s, ok && s.UserID != ""
}
