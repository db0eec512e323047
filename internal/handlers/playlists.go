package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/middleware"
	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/service"
)

type PlaylistHandler struct {
	playlists *service.PlaylistService
}

func NewPlaylistHandler(playlists *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlists: playlists}
}

func (h *PlaylistHandler) PostPlaylist(c *gin.Context) {
	var payload struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, "name is required")
		return
	}

	playlistID, err := h.playlists.Add(payload.Name, middleware.UserIDFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   gin.H{"playlistId": playlistID},
	})
}

func (h *PlaylistHandler) GetPlaylists(c *gin.Context) {
	playlists, err := h.playlists.GetAll(middleware.UserIDFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"playlists": playlists},
	})
}

// DeletePlaylist is owner-only; collaborators cannot delete.
func (h *PlaylistHandler) DeletePlaylist(c *gin.Context) {
	playlistID := c.Param("id")

	if err := h.playlists.VerifyOwner(playlistID, middleware.UserIDFromContext(c)); err != nil {
		respondError(c, err)
		return
	}

	if err := h.playlists.Delete(playlistID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "playlist deleted",
	})
}

func (h *PlaylistHandler) PostPlaylistSong(c *gin.Context) {
	var payload struct {
		SongID string `json:"songId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, "songId is required")
		return
	}

	playlistID := c.Param("id")
	userID := middleware.UserIDFromContext(c)

	if err := h.playlists.VerifyAccess(playlistID, userID); err != nil {
		respondError(c, err)
		return
	}

	if err := h.playlists.AddSong(playlistID, payload.SongID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "song added to playlist",
	})
}

func (h *PlaylistHandler) GetPlaylistSongs(c *gin.Context) {
	playlistID := c.Param("id")

	if err := h.playlists.VerifyAccess(playlistID, middleware.UserIDFromContext(c)); err != nil {
		respondError(c, err)
		return
	}

	playlist, err := h.playlists.GetSongs(playlistID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"playlist": playlist},
	})
}

func (h *PlaylistHandler) DeletePlaylistSong(c *gin.Context) {
	var payload struct {
		SongID string `json:"songId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, "songId is required")
		return
	}

	playlistID := c.Param("id")
	userID := middleware.UserIDFromContext(c)

	if err := h.playlists.VerifyAccess(playlistID, userID); err != nil {
		respondError(c, err)
		return
	}

	if err := h.playlists.RemoveSong(playlistID, payload.SongID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "song removed from playlist",
	})
}

func (h *PlaylistHandler) GetPlaylistActivities(c *gin.Context) {
	playlistID := c.Param("id")

	if err := h.playlists.VerifyAccess(playlistID, middleware.UserIDFromContext(c)); err != nil {
		respondError(c, err)
		return
	}

	activities, err := h.playlists.GetActivities(playlistID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"playlistId": playlistID,
			"activities": activities,
		},
	})
}
