package handlers

import (
	"net/http"

	"lexaid/models"
	"lexaid/services/records"
	"lexaid/utils"

	"github.com/gin-gonic/gin"
)

type CaseHandler struct {
	Cases records.CaseService
}

func (h *CaseHandler) List(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	cases, err := h.Cases.ListCases(c.Request.Context(), s.UserID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cases)
}

func (h *CaseHandler) Create(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	var in models.CaseInput
	if !bindJSON(c, &in) {
		return
	}
	cs, err := h.Cases.CreateCase(c.Request.Context(), s.UserID, in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cs)
}

func (h *CaseHandler) Get(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	cs, err := h.Cases.GetCase(c.Request.Context(), s.UserID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cs)
}

func (h *CaseHandler) Update(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	var patch models.CasePatch
	if !bindJSON(c, &patch) {
		return
	}
	if patch.IsEmpty() {
		utils.RespondError(c, utils.NewValidationError("", "nothing to update"))
		return
	}
	cs, err := h.Cases.UpdateCase(c.Request.Context(), s.UserID, c.Param("id"), patch)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cs)
}

func (h *CaseHandler) Delete(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	if err := h.Cases.DeleteCase(c.Request.Context(), s.UserID, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// LinkDraft handles POST /api/cases/:id/drafts/:draftId.
func (h *CaseHandler) LinkDraft(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	cs, err := h.Cases.LinkDraft(c.Request.Context(), s.UserID, c.Param("id"), c.Param("draftId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cs)
}

func (h *CaseHandler) UnlinkDraft(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	cs, err := h.Cases.UnlinkDraft(c.Request.Context(), s.UserID, c.Param("id"), c.Param("draftId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cs)
}
