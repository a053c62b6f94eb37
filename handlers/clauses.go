package handlers

import (
	"net/http"

	"lexaid/models"
	"lexaid/services/records"
	"lexaid/utils"

	"github.com/gin-gonic/gin"
)

type ClauseHandler struct {
	Clauses records.ClauseService
}

func (h *ClauseHandler) List(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	clauses, err := h.Clauses.ListClauses(c.Request.Context(), s.UserID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clauses)
}

func (h *ClauseHandler) Create(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	var in models.ClauseInput
	if !bindJSON(c, &in) {
		return
	}
	cl, err := h.Clauses.CreateClause(c.Request.Context(), s.UserID, in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cl)
}

func (h *ClauseHandler) Update(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	var patch models.ClausePatch
	if !bindJSON(c, &patch) {
		return
	}
	if patch.IsEmpty() {
		utils.RespondError(c, utils.NewValidationError("", "nothing to update"))
		return
	}
	cl, err := h.Clauses.UpdateClause(c.Request.Context(), s.UserID, c.Param("id"), patch)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cl)
}

func (h *ClauseHandler) Delete(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	if err := h.Clauses.DeleteClause(c.Request.Context(), s.UserID, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
