package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/middleware"
	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/monitoring"
	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/service"
)

// dataSourceHeader tells clients whether a read was served from the cache.
const dataSourceHeader = "X-Data-Source"

type AlbumHandler struct {
	albums  *service.AlbumService
	metrics *monitoring.Metrics
}

func NewAlbumHandler(albums *service.AlbumService, metrics *monitoring.Metrics) *AlbumHandler {
	return &AlbumHandler{albums: albums, metrics: metrics}
}

type albumPayload struct {
	Name string `json:"name" binding:"required"`
	Year int    `json:"year" binding:"required"`
}

func (h *AlbumHandler) PostAlbum(c *gin.Context) {
	var payload albumPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, "name and year are required")
		return
	}

	albumID, err := h.albums.Add(payload.Name, payload.Year)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   gin.H{"albumId": albumID},
	})
}

func (h *AlbumHandler) GetAlbums(c *gin.Context) {
	albums, source, err := h.albums.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}

	h.observeCacheRead(source)
	if source == service.SourceCache {
		c.Header(dataSourceHeader, source)
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"albums": albums},
	})
}

func (h *AlbumHandler) GetAlbumByID(c *gin.Context) {
	album, err := h.albums.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"album": album},
	})
}

func (h *AlbumHandler) PutAlbum(c *gin.Context) {
	var payload albumPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, "name and year are required")
		return
	}

	if err := h.albums.Edit(c.Param("id"), payload.Name, payload.Year); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "album updated",
	})
}

func (h *AlbumHandler) DeleteAlbum(c *gin.Context) {
	if err := h.albums.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "album deleted",
	})
}

func (h *AlbumHandler) PutAlbumCover(c *gin.Context) {
	var payload struct {
		CoverURL string `json:"coverUrl" binding:"required,url"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, "coverUrl is required and must be a valid URL")
		return
	}

	if err := h.albums.UpdateCover(c.Param("id"), payload.CoverURL); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "album cover updated",
	})
}

func (h *AlbumHandler) GetAlbumLikes(c *gin.Context) {
	count, source, err := h.albums.GetLikes(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	h.observeCacheRead(source)
	if source == service.SourceCache {
		c.Header(dataSourceHeader, source)
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"likes": count},
	})
}

func (h *AlbumHandler) PostAlbumLike(c *gin.Context) {
	albumID := c.Param("id")
	userID := middleware.UserIDFromContext(c)

	// Liking a nonexistent album is NotFound, not Invariant.
	if _, err := h.albums.GetByID(albumID); err != nil {
		respondError(c, err)
		return
	}

	likeID, err := h.albums.AddLike(albumID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   gin.H{"likeId": likeID},
	})
}

func (h *AlbumHandler) DeleteAlbumLike(c *gin.Context) {
	if err := h.albums.RemoveLike(middleware.UserIDFromContext(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "like removed",
	})
}

func (h *AlbumHandler) observeCacheRead(source string) {
	if h.metrics != nil {
		h.metrics.ObserveCacheRead(source)
	}
}
