package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/openbloom/bloom/apperr"
	"github.com/openbloom/bloom/db"
	"github.com/openbloom/bloom/logger"
	"github.com/openbloom/bloom/models"
	"github.com/openbloom/bloom/store"
)

type ShareService struct {
	db *db.SocialDb
}

func NewShareService(socialDb *db.SocialDb) *ShareService {
	return &ShareService{db: socialDb}
}

// Track bumps the per-post share counters atomically; the share event
// document is best-effort bookkeeping written afterwards.
func (s *ShareService) Track(ctx context.Context, postId, userId string, platform models.SharePlatform) (*models.ShareModel, error) {
	if err := validateIds(postId, userId); err != nil {
		return nil, err
	}
	if !models.ValidSharePlatform(platform) {
		return nil, apperr.Newf(apperr.KindInvalidInput, "unknown share platform: %s", platform)
	}
	if !s.db.Posts().IsExistsById(ctx, postId) {
		return nil, apperr.New(apperr.KindNotFound, "post not found")
	}

	now := time.Now().UnixMilli()
	batch := s.db.Batch()
	batch.Update(db.CollPosts, postId, store.Document{
		"shareCount": store.Inc(1),
		"sharePlatformCounts." + string(platform): store.Inc(1),
		"lastActivityAt":                          now,
	})
	if err := batch.Commit(ctx); err != nil {
		return nil, err
	}

	share := &models.ShareModel{
		PostId:    postId,
		UserId:    userId,
		Platform:  platform,
		CreatedOn: now,
	}
	if err := s.db.Shares().Save(ctx, share.Id(), share); err != nil {
		logger.Error("Failed recording share event", zap.String("postId", postId), zap.Error(err))
	}
	return share, nil
}

func (s *ShareService) UserShares(ctx context.Context, userId string) ([]models.ShareModel, error) {
	return s.db.Shares().ByUser(ctx, userId)
}

// PostShareAnalytics returns the denormalized counters from the post itself.
func (s *ShareService) PostShareAnalytics(ctx context.Context, postId string) (int64, map[string]int64, error) {
	post, err := s.db.Posts().FindOneById(ctx, postId)
	if err != nil {
		return 0, nil, err
	}
	counts := make(map[string]int64, len(post.SharePlatformCounts))
	for platform, count := range post.SharePlatformCounts {
		counts[platform] = count
	}
	return post.ShareCount, counts, nil
}
