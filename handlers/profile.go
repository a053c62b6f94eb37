package handlers

import (
	"fmt"
	"net/http"

	"lexaid/models"
	"lexaid/services/storage"
	"lexaid/services/user"
	"lexaid/utils"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	Profiles user.ProfileService
	Photos   *storage.PhotoService
}

func (h *ProfileHandler) Get(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	p, err := h.Profiles.GetProfile(c.Request.Context(), s.UserID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	var settings models.ProfileSettings
	if !bindJSON(c, &settings) {
		return
	}
	if settings.IsEmpty() {
		utils.RespondError(c, utils.NewValidationError("", "nothing to update"))
		return
	}
	p, err := h.Profiles.UpdateProfile(c.Request.Context(), s.UserID, settings)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UploadPhoto handles POST /api/profile/photo with a multipart "photo" image.
func (h *ProfileHandler) UploadPhoto(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		utils.RespondError(c, utils.NewValidationError("photo", "image file is required"))
		return
	}
	defer file.Close()
	if h.Photos == nil {
		utils.RespondError(c, fmt.Errorf("photo storage: %w", utils.ErrServiceUnavailable))
		return
	}

	p, err := h.Photos.SetProfilePhoto(c.Request.Context(), s.UserID, header.Size, file)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
