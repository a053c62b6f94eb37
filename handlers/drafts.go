package handlers

import (
	"net/http"

	"lexaid/models"
	"lexaid/services/export"
	"lexaid/services/records"
	"lexaid/utils"

	"github.com/gin-gonic/gin"
)

type DraftHandler struct {
	Drafts records.DraftService
}

func (h *DraftHandler) List(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	drafts, err := h.Drafts.ListDrafts(c.Request.Context(), s.UserID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, drafts)
}

func (h *DraftHandler) Create(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	var in models.DraftInput
	if !bindJSON(c, &in) {
		return
	}
	d, err := h.Drafts.CreateDraft(c.Request.Context(), s.UserID, in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *DraftHandler) Get(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	d, err := h.Drafts.GetDraft(c.Request.Context(), s.UserID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *DraftHandler) Update(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	var patch models.DraftPatch
	if !bindJSON(c, &patch) {
		return
	}
	if patch.IsEmpty() {
		utils.RespondError(c, utils.NewValidationError("", "nothing to update"))
		return
	}
	d, err := h.Drafts.UpdateDraft(c.Request.Context(), s.UserID, c.Param("id"), patch)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *DraftHandler) Delete(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	if err := h.Drafts.DeleteDraft(c.Request.Context(), s.UserID, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Export renders a saved draft, named after its document type.
func (h *DraftHandler) Export(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	d, err := h.Drafts.GetDraft(c.Request.Context(), s.UserID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	f, err := export.Render(d.DocumentType, d.Content, format, utils.Now())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	sendFile(c, f)
}
