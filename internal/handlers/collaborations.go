package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/middleware"
	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/service"
)

type CollaborationHandler struct {
	collaborations *service.CollaborationService
	playlists      *service.PlaylistService
}

func NewCollaborationHandler(collaborations *service.CollaborationService, playlists *service.PlaylistService) *CollaborationHandler {
	return &CollaborationHandler{collaborations: collaborations, playlists: playlists}
}

type collaborationPayload struct {
	PlaylistID string `json:"playlistId" binding:"required"`
	UserID     string `json:"userId" binding:"required"`
}

// PostCollaboration grants a user collaborator access. Only the owner may do this.
func (h *CollaborationHandler) PostCollaboration(c *gin.Context) {
	var payload collaborationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, "playlistId and userId are required")
		return
	}

	if err := h.playlists.VerifyOwner(payload.PlaylistID, middleware.UserIDFromContext(c)); err != nil {
		respondError(c, err)
		return
	}

	collaborationID, err := h.collaborations.Add(payload.PlaylistID, payload.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   gin.H{"collaborationId": collaborationID},
	})
}

func (h *CollaborationHandler) DeleteCollaboration(c *gin.Context) {
	var payload collaborationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, "playlistId and userId are required")
		return
	}

	if err := h.playlists.VerifyOwner(payload.PlaylistID, middleware.UserIDFromContext(c)); err != nil {
		respondError(c, err)
		return
	}

	if err := h.collaborations.Delete(payload.PlaylistID, payload.UserID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "collaboration deleted",
	})
}
