package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/openbloom/bloom/apperr"
	"github.com/openbloom/bloom/db"
	"github.com/openbloom/bloom/extensions"
	"github.com/openbloom/bloom/logger"
	"github.com/openbloom/bloom/models"
	"github.com/openbloom/bloom/store"
)

// FollowService keeps the follow edge and the two counters it implies in
// sync. The edge document, both counter updates and both mirror records
// move in one atomic batch, so an edge existing implies each counter was
// bumped exactly once for it.
type FollowService struct {
	db            *db.SocialDb
	notifications *NotificationService
}

func NewFollowService(socialDb *db.SocialDb, notifications *NotificationService) *FollowService {
	return &FollowService{db: socialDb, notifications: notifications}
}

// FollowCounts carries the optimistic post-write counter values (prior
// value +/- 1, not re-read from the store).
type FollowCounts struct {
	FollowersCount int64 `json:"followersCount"`
	FollowingCount int64 `json:"followingCount"`
}

func (s *FollowService) Follow(ctx context.Context, followerId, targetId string) (*FollowCounts, error) {
	if err := validateParticipants(followerId, targetId); err != nil {
		return nil, err
	}

	edgeId := models.GetFollowId(followerId, targetId)
	if s.db.Follows().IsExistsById(ctx, edgeId) {
		return nil, apperr.New(apperr.KindConflict, "already following this user")
	}

	follower, err := extensions.EnsureProfile(ctx, s.db, followerId)
	if err != nil {
		return nil, err
	}
	target, err := extensions.EnsureProfile(ctx, s.db, targetId)
	if err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()
	edge := &models.FollowModel{
		FollowerId:    followerId,
		FollowingId:   targetId,
		FollowerName:  extensions.DisplayNameOrDefault(follower),
		FollowingName: extensions.DisplayNameOrDefault(target),
		CreatedOn:     now,
	}
	edgeDoc, err := store.Encode(edge)
	if err != nil {
		return nil, err
	}

	followingMirror, err := store.Encode(&models.FollowMirrorModel{
		OwnerId:     followerId,
		UserId:      targetId,
		DisplayName: extensions.DisplayNameOrDefault(target),
		Email:       target.Email,
		PhotoUrl:    target.PhotoUrl,
		FollowedAt:  now,
	})
	if err != nil {
		return nil, err
	}
	followerMirror, err := store.Encode(&models.FollowMirrorModel{
		OwnerId:     targetId,
		UserId:      followerId,
		DisplayName: extensions.DisplayNameOrDefault(follower),
		Email:       follower.Email,
		PhotoUrl:    follower.PhotoUrl,
		FollowedAt:  now,
	})
	if err != nil {
		return nil, err
	}

	// The keyed Create makes a concurrent duplicate follow lose with a
	// conflict inside the batch instead of double-incrementing counters.
	batch := s.db.Batch()
	batch.Create(db.CollFollows, edgeId, edgeDoc)
	batch.Update(db.CollUsers, followerId, store.Document{"followingCount": store.Inc(1)})
	batch.Update(db.CollUsers, targetId, store.Document{"followersCount": store.Inc(1)})
	batch.Create(db.CollUserFollowing, models.GetFollowMirrorId(followerId, targetId), followingMirror)
	batch.Create(db.CollUserFollowers, models.GetFollowMirrorId(targetId, followerId), followerMirror)
	if err := batch.Commit(ctx); err != nil {
		return nil, err
	}

	// Separate, non-atomic call: a commit that succeeded is never rolled
	// back because the notification failed.
	if _, err := s.notifications.Create(ctx, NotificationInput{
		Type:           models.NotificationFollow,
		RecipientId:    targetId,
		SenderId:       followerId,
		SenderName:     extensions.DisplayNameOrDefault(follower),
		SenderPhotoUrl: follower.PhotoUrl,
	}); err != nil {
		logger.Error("Failed creating follow notification",
			zap.String("targetId", targetId), zap.Error(err))
	}

	return &FollowCounts{
		FollowersCount: target.FollowersCount + 1,
		FollowingCount: follower.FollowingCount + 1,
	}, nil
}

func (s *FollowService) Unfollow(ctx context.Context, followerId, targetId string) (*FollowCounts, error) {
	if err := validateIds(followerId, targetId); err != nil {
		return nil, err
	}

	edgeId := models.GetFollowId(followerId, targetId)
	if !s.db.Follows().IsExistsById(ctx, edgeId) {
		return nil, apperr.New(apperr.KindConflict, "not following this user")
	}

	follower, err := s.db.Users().FindOneById(ctx, followerId)
	if err != nil {
		return nil, err
	}
	target, err := s.db.Users().FindOneById(ctx, targetId)
	if err != nil {
		return nil, err
	}

	// The store value is decremented without clamping; a desynchronized
	// counter going negative stays visible rather than being papered over.
	batch := s.db.Batch()
	batch.Delete(db.CollFollows, edgeId)
	batch.Update(db.CollUsers, followerId, store.Document{"followingCount": store.Inc(-1)})
	batch.Update(db.CollUsers, targetId, store.Document{"followersCount": store.Inc(-1)})
	batch.Delete(db.CollUserFollowing, models.GetFollowMirrorId(followerId, targetId))
	batch.Delete(db.CollUserFollowers, models.GetFollowMirrorId(targetId, followerId))
	if err := batch.Commit(ctx); err != nil {
		return nil, err
	}

	return &FollowCounts{
		FollowersCount: clampZero(target.FollowersCount - 1),
		FollowingCount: clampZero(follower.FollowingCount - 1),
	}, nil
}

func clampZero(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}

// IsFollowing is a point existence check on the edge key.
func (s *FollowService) IsFollowing(ctx context.Context, followerId, targetId string) bool {
	if len(followerId) == 0 || len(targetId) == 0 {
		return false
	}
	return s.db.Follows().IsExistsById(ctx, models.GetFollowId(followerId, targetId))
}

func (s *FollowService) Followers(ctx context.Context, userId string) ([]models.FollowModel, error) {
	return s.db.Follows().GetFollowers(ctx, userId)
}

func (s *FollowService) Following(ctx context.Context, userId string) ([]models.FollowModel, error) {
	return s.db.Follows().GetFollowing(ctx, userId)
}

// FollowingIds returns just the followed user ids, for membership filters.
func (s *FollowService) FollowingIds(ctx context.Context, userId string) ([]string, error) {
	return s.db.Follows().GetFollowingIds(ctx, userId)
}

// Suggestions returns recently active users the given user does not follow
// yet, excluding the user themselves.
func (s *FollowService) Suggestions(ctx context.Context, userId string, limit int64) ([]models.UserModel, error) {
	if err := validateIds(userId); err != nil {
		return nil, err
	}

	followingIds, err := s.db.Follows().GetFollowingIds(ctx, userId)
	if err != nil {
		return nil, err
	}
	exclude := make(map[string]bool, len(followingIds)+1)
	for _, id := range followingIds {
		exclude[id] = true
	}
	exclude[userId] = true

	candidates, err := s.db.Users().MostRecentlyActive(ctx, limit+int64(len(exclude)))
	if err != nil {
		return nil, err
	}

	suggestions := make([]models.UserModel, 0, limit)
	for _, user := range candidates {
		if exclude[user.UserId] {
			continue
		}
		suggestions = append(suggestions, user)
		if int64(len(suggestions)) >= limit {
			break
		}
	}
	return suggestions, nil
}
