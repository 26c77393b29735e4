package service

import (
	"context"
	"time"

	"github.com/openbloom/bloom/apperr"
	"github.com/openbloom/bloom/db"
	"github.com/openbloom/bloom/models"
	"github.com/openbloom/bloom/store"
)

// PostFollowService lets a user subscribe to a post's activity. The
// followersCount on the post moves in the same batch as the edge.
type PostFollowService struct {
	db *db.SocialDb
}

func NewPostFollowService(socialDb *db.SocialDb) *PostFollowService {
	return &PostFollowService{db: socialDb}
}

func (s *PostFollowService) FollowPost(ctx context.Context, userId, postId string) error {
	if err := validateIds(userId, postId); err != nil {
		return err
	}
	if !s.db.Posts().IsExistsById(ctx, postId) {
		return apperr.New(apperr.KindNotFound, "post not found")
	}

	edge := &models.PostFollowModel{
		UserId:    userId,
		PostId:    postId,
		CreatedOn: time.Now().UnixMilli(),
	}
	doc, err := store.Encode(edge)
	if err != nil {
		return err
	}

	batch := s.db.Batch()
	batch.Create(db.CollPostFollows, edge.Id(), doc)
	batch.Update(db.CollPosts, postId, store.Document{"followersCount": store.Inc(1)})
	if err := batch.Commit(ctx); err != nil {
		if apperr.IsKind(err, apperr.KindConflict) {
			return apperr.New(apperr.KindConflict, "already following this post")
		}
		return err
	}
	return nil
}

func (s *PostFollowService) UnfollowPost(ctx context.Context, userId, postId string) error {
	if err := validateIds(userId, postId); err != nil {
		return err
	}
	edgeId := models.GetPostFollowId(userId, postId)
	if !s.db.PostFollows().IsExistsById(ctx, edgeId) {
		return apperr.New(apperr.KindConflict, "not following this post")
	}

	batch := s.db.Batch()
	batch.Delete(db.CollPostFollows, edgeId)
	batch.Update(db.CollPosts, postId, store.Document{"followersCount": store.Inc(-1)})
	return batch.Commit(ctx)
}

func (s *PostFollowService) IsFollowingPost(ctx context.Context, userId, postId string) bool {
	return s.db.PostFollows().IsExistsById(ctx, models.GetPostFollowId(userId, postId))
}

func (s *PostFollowService) FollowedPostIds(ctx context.Context, userId string) ([]string, error) {
	return s.db.PostFollows().PostIdsByUser(ctx, userId)
}
