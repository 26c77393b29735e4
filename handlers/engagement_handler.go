package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openbloom/bloom/middleware"
	"github.com/openbloom/bloom/models"
	"github.com/openbloom/bloom/service"
)

// EngagementHandler covers reactions, bookmarks and share tracking.
type EngagementHandler struct {
	reactions *service.ReactionService
	bookmarks *service.BookmarkService
	shares    *service.ShareService
}

func NewEngagementHandler(reactions *service.ReactionService, bookmarks *service.BookmarkService, shares *service.ShareService) *EngagementHandler {
	return &EngagementHandler{reactions: reactions, bookmarks: bookmarks, shares: shares}
}

func (h *EngagementHandler) React(c *gin.Context) {
	var input struct {
		Type models.ReactionType `json:"type"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	reaction, err := h.reactions.React(c.Request.Context(), c.Param("postId"), middleware.UserId(c), input.Type)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, reaction)
}

func (h *EngagementHandler) RemoveReaction(c *gin.Context) {
	if err := h.reactions.Remove(c.Request.Context(), c.Param("postId"), middleware.UserId(c)); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EngagementHandler) MyReaction(c *gin.Context) {
	reaction, err := h.reactions.GetUserReaction(c.Request.Context(), c.Param("postId"), middleware.UserId(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reaction": reaction})
}

func (h *EngagementHandler) ReactionCounts(c *gin.Context) {
	counts, err := h.reactions.Counts(c.Request.Context(), c.Param("postId"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (h *EngagementHandler) AddBookmark(c *gin.Context) {
	bookmark, err := h.bookmarks.Add(c.Request.Context(), middleware.UserId(c), c.Param("postId"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, bookmark)
}

func (h *EngagementHandler) RemoveBookmark(c *gin.Context) {
	if err := h.bookmarks.Remove(c.Request.Context(), middleware.UserId(c), c.Param("postId")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EngagementHandler) ListBookmarks(c *gin.Context) {
	bookmarks, err := h.bookmarks.List(c.Request.Context(), middleware.UserId(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, bookmarks)
}

func (h *EngagementHandler) TrackShare(c *gin.Context) {
	var input struct {
		Platform models.SharePlatform `json:"platform"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	share, err := h.shares.Track(c.Request.Context(), c.Param("postId"), middleware.UserId(c), input.Platform)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, share)
}

func (h *EngagementHandler) ShareAnalytics(c *gin.Context) {
	total, byPlatform, err := h.shares.PostShareAnalytics(c.Request.Context(), c.Param("postId"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shareCount": total, "byPlatform": byPlatform})
}
