package handlers

import (
	"net/http"

	"jamride/internal/services"
	"jamride/internal/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type loginRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Login exchanges an identity-provider token for an application session
func (h *AuthHandler) Login(c *gin.Context) {
	var request loginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	response, err := h.authService.LoginWithIDToken(c.Request.Context(), request.IDToken)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "LOGIN_FAILED", "Authentication failed")
		return
	}

	utils.SuccessResponse(c, "Login successful", response)
}

// Refresh mints a new token pair from a refresh token
func (h *AuthHandler) Refresh(c *gin.Context) {
	var request refreshRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	response, err := h.authService.RefreshSession(c.Request.Context(), request.RefreshToken)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "REFRESH_FAILED", "Invalid refresh token")
		return
	}

	utils.SuccessResponse(c, "Session refreshed", response)
}

// SocialAuthURL redirects the browser to the provider's consent page
func (h *AuthHandler) SocialAuthURL(c *gin.Context) {
	url, err := h.authService.SocialAuthURL(c.Param("provider"), c.Query("state"))
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, url)
}

// SocialCallback completes the social sign-in flow
func (h *AuthHandler) SocialCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		utils.BadRequestResponse(c, "Query parameter 'code' is required")
		return
	}

	response, err := h.authService.SocialCallback(c.Request.Context(), c.Param("provider"), code)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "SOCIAL_LOGIN_FAILED", "Authentication failed")
		return
	}

	utils.SuccessResponse(c, "Login successful", response)
}
