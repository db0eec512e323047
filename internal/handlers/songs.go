package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/service"
)

type SongHandler struct {
	songs *service.SongService
}

func NewSongHandler(songs *service.SongService) *SongHandler {
	return &SongHandler{songs: songs}
}

type songPayload struct {
	Title     string  `json:"title" binding:"required"`
	Year      int     `json:"year" binding:"required"`
	Genre     string  `json:"genre" binding:"required"`
	Performer string  `json:"performer" binding:"required"`
	Duration  *int    `json:"duration"`
	AlbumID   *string `json:"albumId"`
}

func (p songPayload) toServicePayload() service.SongPayload {
	return service.SongPayload{
		Title:     p.Title,
		Year:      p.Year,
		Genre:     p.Genre,
		Performer: p.Performer,
		Duration:  p.Duration,
		AlbumID:   p.AlbumID,
	}
}

func (h *SongHandler) PostSong(c *gin.Context) {
	var payload songPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, "title, year, genre, and performer are required")
		return
	}

	songID, err := h.songs.Add(payload.toServicePayload())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   gin.H{"songId": songID},
	})
}

func (h *SongHandler) GetSongs(c *gin.Context) {
	songs, err := h.songs.GetAll(c.Query("title"), c.Query("performer"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"songs": songs},
	})
}

func (h *SongHandler) GetSongByID(c *gin.Context) {
	song, err := h.songs.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"song": song},
	})
}

func (h *SongHandler) PutSong(c *gin.Context) {
	var payload songPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, "title, year, genre, and performer are required")
		return
	}

	if err := h.songs.Edit(c.Param("id"), payload.toServicePayload()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "song updated",
	})
}

func (h *SongHandler) DeleteSong(c *gin.Context) {
	if err := h.songs.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "song deleted",
	})
}
