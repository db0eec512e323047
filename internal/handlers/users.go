package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/service"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) PostUser(c *gin.Context) {
	var payload struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required,min=6"`
		Fullname string `json:"fullname" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, "username, password (min 6 characters), and fullname are required")
		return
	}

	userID, err := h.users.Add(payload.Username, payload.Password, payload.Fullname)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   gin.H{"userId": userID},
	})
}
