package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openbloom/bloom/middleware"
	"github.com/openbloom/bloom/service"
)

type FollowHandler struct {
	follows *service.FollowService
}

func NewFollowHandler(follows *service.FollowService) *FollowHandler {
	return &FollowHandler{follows: follows}
}

func (h *FollowHandler) Follow(c *gin.Context) {
	counts, err := h.follows.Follow(c.Request.Context(), middleware.UserId(c), c.Param("userId"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
	counts, err := h.follows.Unfollow(c.Request.Context(), middleware.UserId(c), c.Param("userId"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (h *FollowHandler) IsFollowing(c *gin.Context) {
	following := h.follows.IsFollowing(c.Request.Context(), middleware.UserId(c), c.Param("userId"))
	c.JSON(http.StatusOK, gin.H{"following": following})
}

func (h *FollowHandler) Followers(c *gin.Context) {
	edges, err := h.follows.Followers(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, edges)
}

func (h *FollowHandler) Following(c *gin.Context) {
	edges, err := h.follows.Following(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, edges)
}

func (h *FollowHandler) Suggestions(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	users, err := h.follows.Suggestions(c.Request.Context(), middleware.UserId(c), limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
