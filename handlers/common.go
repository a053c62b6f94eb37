package handlers

import (
	"fmt"
	"net/http"

	"lexaid/services/export"
	"lexaid/utils"

	"github.com/gin-gonic/gin"
)

// sessionOrAbort returns the authenticated session or writes 401.
func sessionOrAbort(c *gin.Context) (utils.Session, bool) {
	s, ok := utils.GetSession(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
	}
	return s, ok
}

// bindJSON decodes the body into v or writes 400.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return false
	}
	return true
}

// sendFile writes an export either as a download or, for print views, inline.
func sendFile(c *gin.Context, f *export.File) {
	disposition := "attachment"
	if f.Inline {
		disposition = "inline"
	}
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, f.Filename))
	c.Data(http.StatusOK, f.ContentType, f.Body)
}
