package handlers

import (
	"net/http"

	"lexaid/services/user"
	"lexaid/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	Auth user.AuthService
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.Auth.Register(c.Request.Context(), req)
	if err != nil {
		utils.GetLogger().Info("Registration failed", zap.String("email", req.Email), zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.Auth.Login(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// FirebaseSignIn handles POST /api/auth/firebase.
func (h *AuthHandler) FirebaseSignIn(c *gin.Context) {
	var req struct {
		IDToken string `json:"idToken" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.Auth.FirebaseSignIn(c.Request.Context(), req.IDToken)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	if err := h.Auth.Logout(c.Request.Context(), s.UserID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}
