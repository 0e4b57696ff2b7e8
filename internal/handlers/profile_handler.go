package handlers

import (
	"net/http"

	"jamride/internal/middleware"
	"jamride/internal/services"
	"jamride/internal/utils"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService services.ProfileService
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// GetProfile returns the authenticated identity snapshot
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	user, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	utils.SuccessResponse(c, "Profile retrieved successfully", user)
}

// UploadAvatar stores a new profile picture
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	user, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		utils.BadRequestResponse(c, "Form file 'avatar' is required")
		return
	}
	defer file.Close()

	if header.Size > utils.MaxAvatarSize {
		utils.BadRequestResponse(c, "Avatar exceeds the maximum allowed size")
		return
	}

	url, err := h.profileService.UpdateAvatar(
		c.Request.Context(),
		user,
		header.Filename,
		header.Header.Get("Content-Type"),
		header.Size,
		file,
	)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "AVATAR_UPLOAD_FAILED", "Failed to upload avatar: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Avatar updated successfully", gin.H{"avatar": url})
}
