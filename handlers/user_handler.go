package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openbloom/bloom/middleware"
	"github.com/openbloom/bloom/s3client"
	"github.com/openbloom/bloom/service"
)

type UserHandler struct {
	users *service.UserService
	s3    *s3client.Client
}

func NewUserHandler(users *service.UserService, s3 *s3client.Client) *UserHandler {
	return &UserHandler{users: users, s3: s3}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.users.EnsureProfile(c.Request.Context(), middleware.UserId(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.users.GetProfile(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	var input service.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	user, err := h.users.UpdateProfile(c.Request.Context(), middleware.UserId(c), input)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetPhotoUploadUrl hands the client a presigned avatar upload URL.
func (h *UserHandler) GetPhotoUploadUrl(c *gin.Context) {
	extension := c.DefaultQuery("extension", "jpg")
	uploadUrl, mediaUrl, err := h.s3.GetPresignedUrlForProfilePhoto(middleware.UserId(c), extension)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploadUrl": uploadUrl, "mediaUrl": mediaUrl})
}
