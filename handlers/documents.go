package handlers

import (
	"net/http"

	"lexaid/services/catalog"

	"github.com/gin-gonic/gin"
)

type DocumentsHandler struct{}

// List handles GET /api/documents.
func (h *DocumentsHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.All())
}

// Get handles GET /api/documents/:id and returns the type with its empty form.
// Unknown ids send the client back to the dashboard.
func (h *DocumentsHandler) Get(c *gin.Context) {
	dt, ok := catalog.Lookup(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "document type not found", "redirect": "/dashboard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"documentType": dt, "form": catalog.Form(dt)})
}
