package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/service"
	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/utils"
)

type AuthenticationHandler struct {
	users           *service.UserService
	authentications *service.AuthenticationService
}

func NewAuthenticationHandler(users *service.UserService, authentications *service.AuthenticationService) *AuthenticationHandler {
	return &AuthenticationHandler{users: users, authentications: authentications}
}

// PostAuthentication handles login: verifies credentials, issues an access and a
// refresh token, and persists the refresh token.
func (h *AuthenticationHandler) PostAuthentication(c *gin.Context) {
	var payload struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, "username and password are required")
		return
	}

	userID, err := h.users.VerifyCredential(payload.Username, payload.Password)
	if err != nil {
		// Bad credentials are 401 here, unlike resource-access denials.
		if service.IsAuthorization(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": err.Error()})
			return
		}
		respondError(c, err)
		return
	}

	accessToken, err := utils.GenerateAccessToken(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	refreshToken, err := utils.GenerateRefreshToken(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.authentications.AddRefreshToken(refreshToken); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data": gin.H{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		},
	})
}

// PutAuthentication exchanges a stored refresh token for a new access token.
func (h *AuthenticationHandler) PutAuthentication(c *gin.Context) {
	var payload struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, "refreshToken is required")
		return
	}

	if err := h.authentications.VerifyRefreshToken(payload.RefreshToken); err != nil {
		respondError(c, err)
		return
	}

	userID, err := utils.ValidateRefreshToken(payload.RefreshToken)
	if err != nil {
		respondBadPayload(c, "refresh token is not valid")
		return
	}

	accessToken, err := utils.GenerateAccessToken(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"accessToken": accessToken},
	})
}

// DeleteAuthentication handles logout by discarding the refresh token.
func (h *AuthenticationHandler) DeleteAuthentication(c *gin.Context) {
	var payload struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, "refreshToken is required")
		return
	}

	if err := h.authentications.VerifyRefreshToken(payload.RefreshToken); err != nil {
		respondError(c, err)
		return
	}

	if err := h.authentications.DeleteRefreshToken(payload.RefreshToken); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "refresh token deleted",
	})
}
