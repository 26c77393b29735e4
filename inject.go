package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/openbloom/bloom/config"
	"github.com/openbloom/bloom/db"
	"github.com/openbloom/bloom/handlers"
	"github.com/openbloom/bloom/logger"
	"github.com/openbloom/bloom/middleware"
	"github.com/openbloom/bloom/realtime"
	"github.com/openbloom/bloom/routes"
	"github.com/openbloom/bloom/s3client"
	"github.com/openbloom/bloom/service"
	"github.com/openbloom/bloom/store/mongostore"
)

type Inject struct {
	Config   *config.Config
	SocialDb *db.SocialDb

	UserService         *service.UserService
	FollowService       *service.FollowService
	PostService         *service.PostService
	CommentService      *service.CommentService
	ReactionService     *service.ReactionService
	BookmarkService     *service.BookmarkService
	ShareService        *service.ShareService
	PostFollowService   *service.PostFollowService
	NotificationService *service.NotificationService
	FeedService         *service.FeedService
	Watcher             *realtime.Watcher

	Auth     *middleware.AuthMiddleware
	Handlers routes.Handlers
}

func NewInject(ctx context.Context) *Inject {
	cfg := config.Load()
	inj := &Inject{Config: cfg}

	st, err := mongostore.New(ctx, cfg.MongoURI, cfg.MongoDb)
	if err != nil {
		logger.Fatal("Failed connecting to mongodb", zap.Error(err))
	}
	inj.SocialDb = db.NewSocialDb(st)

	s3, err := s3client.New(cfg.S3Bucket, cfg.S3Region)
	if err != nil {
		logger.Fatal("Failed creating s3 client", zap.Error(err))
	}

	inj.NotificationService = service.NewNotificationService(inj.SocialDb)
	inj.UserService = service.NewUserService(inj.SocialDb)
	inj.FollowService = service.NewFollowService(inj.SocialDb, inj.NotificationService)
	inj.PostService = service.NewPostService(inj.SocialDb, inj.NotificationService)
	inj.CommentService = service.NewCommentService(inj.SocialDb, inj.NotificationService)
	inj.ReactionService = service.NewReactionService(inj.SocialDb)
	inj.BookmarkService = service.NewBookmarkService(inj.SocialDb)
	inj.ShareService = service.NewShareService(inj.SocialDb)
	inj.PostFollowService = service.NewPostFollowService(inj.SocialDb)
	inj.FeedService = service.NewFeedService(inj.SocialDb, cfg.FeedPageSize)
	inj.Watcher = realtime.NewWatcher(inj.SocialDb, inj.NotificationService)

	inj.Auth = middleware.NewAuthMiddleware(cfg.JWTSecret)
	inj.Handlers = routes.Handlers{
		Users:         handlers.NewUserHandler(inj.UserService, s3),
		Follows:       handlers.NewFollowHandler(inj.FollowService),
		Posts:         handlers.NewPostHandler(inj.PostService, inj.PostFollowService, s3),
		Comments:      handlers.NewCommentHandler(inj.CommentService),
		Engagement:    handlers.NewEngagementHandler(inj.ReactionService, inj.BookmarkService, inj.ShareService),
		Notifications: handlers.NewNotificationHandler(inj.NotificationService),
		Feed:          handlers.NewFeedHandler(inj.FeedService),
		Ws:            handlers.NewWsHandler(inj.Watcher, inj.FeedService, inj.FollowService),
	}
	return inj
}
