package handlers

import (
	"net/http"

	"lexaid/services/drafting"
	"lexaid/services/export"
	"lexaid/utils"

	"github.com/gin-gonic/gin"
)

// DraftingHandler serves the per-document-type drafting workspace.
type DraftingHandler struct {
	Workspace drafting.WorkspaceService
}

func (h *DraftingHandler) Get(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	ws, err := h.Workspace.Get(c.Request.Context(), s.UserID, c.Param("docType"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ws)
}

// Generate takes the form values as a flat JSON object.
func (h *DraftingHandler) Generate(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	var values map[string]string
	if !bindJSON(c, &values) {
		return
	}
	ws, err := h.Workspace.Generate(c.Request.Context(), s.UserID, c.Param("docType"), values)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ws)
}

func (h *DraftingHandler) UpdateContent(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	var req drafting.EditRequest
	if !bindJSON(c, &req) {
		return
	}
	ws, err := h.Workspace.ApplyEdits(c.Request.Context(), s.UserID, c.Param("docType"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ws)
}

func (h *DraftingHandler) DiscardContent(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	ws, err := h.Workspace.DiscardEdits(c.Request.Context(), s.UserID, c.Param("docType"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ws)
}

func (h *DraftingHandler) Citations(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	ws, err := h.Workspace.SuggestCitations(c.Request.Context(), s.UserID, c.Param("docType"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ws)
}

// Save stores the current content as a draft. An empty body is allowed.
func (h *DraftingHandler) Save(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	var req drafting.SaveRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	res, err := h.Workspace.Save(c.Request.Context(), s.UserID, c.Param("docType"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *DraftingHandler) Export(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	f, err := h.Workspace.Export(c.Request.Context(), s.UserID, c.Param("docType"), format)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	sendFile(c, f)
}

func (h *DraftingHandler) Reset(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	if err := h.Workspace.Reset(c.Request.Context(), s.UserID, c.Param("docType")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
