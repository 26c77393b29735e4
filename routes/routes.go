package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/openbloom/bloom/handlers"
	"github.com/openbloom/bloom/middleware"
)

type Handlers struct {
	Users         *handlers.UserHandler
	Follows       *handlers.FollowHandler
	Posts         *handlers.PostHandler
	Comments      *handlers.CommentHandler
	Engagement    *handlers.EngagementHandler
	Notifications *handlers.NotificationHandler
	Feed          *handlers.FeedHandler
	Ws            *handlers.WsHandler
}

func SetupRouter(auth *middleware.AuthMiddleware, h Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UnixMilli()})
	})

	api := router.Group("/api")
	api.Use(auth.RequireAuth())

	// Profiles
	api.GET("/me", h.Users.GetMe)
	api.PUT("/me", h.Users.UpdateMe)
	api.GET("/me/photo-upload-url", h.Users.GetPhotoUploadUrl)
	api.GET("/users/:userId", h.Users.GetProfile)
	api.GET("/users/:userId/posts", h.Feed.UserPosts)

	// Follow graph
	api.POST("/users/:userId/follow", h.Follows.Follow)
	api.DELETE("/users/:userId/follow", h.Follows.Unfollow)
	api.GET("/users/:userId/follow", h.Follows.IsFollowing)
	api.GET("/users/:userId/followers", h.Follows.Followers)
	api.GET("/users/:userId/following", h.Follows.Following)
	api.GET("/suggestions", h.Follows.Suggestions)

	// Posts
	api.POST("/posts", h.Posts.Create)
	api.GET("/posts/media-upload-url", h.Posts.GetMediaUploadUrl)
	api.GET("/posts/:postId", h.Posts.Get)
	api.DELETE("/posts/:postId", h.Posts.Delete)
	api.POST("/posts/:postId/like", h.Posts.Like)
	api.DELETE("/posts/:postId/like", h.Posts.Unlike)
	api.POST("/posts/:postId/toggle-like", h.Posts.ToggleLike)
	api.POST("/posts/:postId/follow", h.Posts.FollowPost)
	api.DELETE("/posts/:postId/follow", h.Posts.UnfollowPost)
	api.GET("/posts/:postId/follow", h.Posts.IsFollowingPost)

	// Comments
	api.POST("/posts/:postId/comments", h.Comments.Add)
	api.GET("/posts/:postId/comments", h.Comments.List)
	api.DELETE("/posts/:postId/comments/:commentId", h.Comments.Delete)

	// Reactions, bookmarks, shares
	api.PUT("/posts/:postId/reaction", h.Engagement.React)
	api.DELETE("/posts/:postId/reaction", h.Engagement.RemoveReaction)
	api.GET("/posts/:postId/reaction", h.Engagement.MyReaction)
	api.GET("/posts/:postId/reactions", h.Engagement.ReactionCounts)
	api.POST("/posts/:postId/bookmark", h.Engagement.AddBookmark)
	api.DELETE("/posts/:postId/bookmark", h.Engagement.RemoveBookmark)
	api.GET("/bookmarks", h.Engagement.ListBookmarks)
	api.POST("/posts/:postId/share", h.Engagement.TrackShare)
	api.GET("/posts/:postId/shares", h.Engagement.ShareAnalytics)

	// Notifications
	api.GET("/notifications", h.Notifications.List)
	api.GET("/notifications/unread-count", h.Notifications.UnreadCount)
	api.POST("/notifications/read", h.Notifications.MarkManyRead)
	api.POST("/notifications/read-all", h.Notifications.MarkAllRead)
	api.POST("/notifications/:notificationId/read", h.Notifications.MarkRead)
	api.DELETE("/notifications/:notificationId", h.Notifications.Delete)

	// Feed
	api.GET("/feed", h.Feed.Get)

	// Live streams
	api.GET("/ws", h.Ws.Serve)

	return router
}
