package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openbloom/bloom/middleware"
	"github.com/openbloom/bloom/s3client"
	"github.com/openbloom/bloom/service"
)

type PostHandler struct {
	posts       *service.PostService
	postFollows *service.PostFollowService
	s3          *s3client.Client
}

func NewPostHandler(posts *service.PostService, postFollows *service.PostFollowService, s3 *s3client.Client) *PostHandler {
	return &PostHandler{posts: posts, postFollows: postFollows, s3: s3}
}

func (h *PostHandler) Create(c *gin.Context) {
	var input service.PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	post, err := h.posts.CreatePost(c.Request.Context(), middleware.UserId(c), input)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.posts.GetPost(c.Request.Context(), c.Param("postId"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.posts.DeletePost(c.Request.Context(), c.Param("postId"), middleware.UserId(c)); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PostHandler) Like(c *gin.Context) {
	if err := h.posts.LikePost(c.Request.Context(), c.Param("postId"), middleware.UserId(c)); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PostHandler) Unlike(c *gin.Context) {
	if err := h.posts.UnlikePost(c.Request.Context(), c.Param("postId"), middleware.UserId(c)); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PostHandler) ToggleLike(c *gin.Context) {
	liked, err := h.posts.ToggleLike(c.Request.Context(), c.Param("postId"), middleware.UserId(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

func (h *PostHandler) FollowPost(c *gin.Context) {
	if err := h.postFollows.FollowPost(c.Request.Context(), middleware.UserId(c), c.Param("postId")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PostHandler) UnfollowPost(c *gin.Context) {
	if err := h.postFollows.UnfollowPost(c.Request.Context(), middleware.UserId(c), c.Param("postId")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PostHandler) IsFollowingPost(c *gin.Context) {
	following := h.postFollows.IsFollowingPost(c.Request.Context(), middleware.UserId(c), c.Param("postId"))
	c.JSON(http.StatusOK, gin.H{"following": following})
}

// GetMediaUploadUrl hands the client a presigned upload URL for post media.
func (h *PostHandler) GetMediaUploadUrl(c *gin.Context) {
	extension := c.DefaultQuery("extension", "jpg")
	uploadUrl, mediaUrl, err := h.s3.GetPresignedUrlForPosts(middleware.UserId(c), extension)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploadUrl": uploadUrl, "mediaUrl": mediaUrl})
}
