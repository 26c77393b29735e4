package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openbloom/bloom/middleware"
	"github.com/openbloom/bloom/service"
)

type FeedHandler struct {
	feeds *service.FeedService
}

func NewFeedHandler(feeds *service.FeedService) *FeedHandler {
	return &FeedHandler{feeds: feeds}
}

// Get returns one page of the selected category. The cursor round-trips as
// a JSON array of the previous page's order-field values.
func (h *FeedHandler) Get(c *gin.Context) {
	category := service.FeedCategory(c.DefaultQuery("category", string(service.FeedLatest)))
	if !service.ValidFeedCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown feed category"})
		return
	}

	var cursor []any
	if raw := c.Query("cursor"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &cursor); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed cursor"})
			return
		}
	}

	page, err := h.feeds.Fetch(c.Request.Context(), category, middleware.UserId(c), cursor)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"posts":   page.Posts,
		"cursor":  page.Cursor,
		"hasMore": page.HasMore,
	})
}

func (h *FeedHandler) UserPosts(c *gin.Context) {
	posts, err := h.feeds.UserPosts(c.Request.Context(), c.Param("userId"), middleware.UserId(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}
