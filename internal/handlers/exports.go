package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/middleware"
	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/monitoring"
	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/service"
)

type ExportHandler struct {
	exports   *service.ExportService
	playlists *service.PlaylistService
	metrics   *monitoring.Metrics
}

func NewExportHandler(exports *service.ExportService, playlists *service.PlaylistService, metrics *monitoring.Metrics) *ExportHandler {
	return &ExportHandler{exports: exports, playlists: playlists, metrics: metrics}
}

// PostExportPlaylist enqueues an export of an owned playlist to the given email.
func (h *ExportHandler) PostExportPlaylist(c *gin.Context) {
	var payload struct {
		TargetEmail string `json:"targetEmail" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, "targetEmail is required and must be a valid email")
		return
	}

	playlistID := c.Param("id")

	if err := h.playlists.VerifyOwner(playlistID, middleware.UserIDFromContext(c)); err != nil {
		respondError(c, err)
		return
	}

	if err := h.exports.RequestExport(playlistID, payload.TargetEmail); err != nil {
		respondError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.ExportsPublished.Inc()
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "your request is being processed",
	})
}
