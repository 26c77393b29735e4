package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openbloom/bloom/middleware"
	"github.com/openbloom/bloom/service"
)

type CommentHandler struct {
	comments *service.CommentService
}

func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

func (h *CommentHandler) Add(c *gin.Context) {
	var input struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	comment, err := h.comments.AddComment(c.Request.Context(), c.Param("postId"), middleware.UserId(c), input.Content)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.comments.DeleteComment(c.Request.Context(), c.Param("postId"), c.Param("commentId")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CommentHandler) List(c *gin.Context) {
	comments, err := h.comments.List(c.Request.Context(), c.Param("postId"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}
