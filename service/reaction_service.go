package service

import (
	"context"
	"time"

	"github.com/openbloom/bloom/apperr"
	"github.com/openbloom/bloom/db"
	"github.com/openbloom/bloom/extensions"
	"github.com/openbloom/bloom/models"
)

// ReactionService keeps at most one reaction per (post, user). Reacting
// again with a different type replaces the previous reaction.
type ReactionService struct {
	db *db.SocialDb
}

func NewReactionService(socialDb *db.SocialDb) *ReactionService {
	return &ReactionService{db: socialDb}
}

func (s *ReactionService) React(ctx context.Context, postId, userId string, reactionType models.ReactionType) (*models.ReactionModel, error) {
	if err := validateIds(postId, userId); err != nil {
		return nil, err
	}
	if !models.ValidReactionType(reactionType) {
		return nil, apperr.Newf(apperr.KindInvalidInput, "unknown reaction type: %s", reactionType)
	}

	if !s.db.Posts().IsExistsById(ctx, postId) {
		return nil, apperr.New(apperr.KindNotFound, "post not found")
	}
	if _, err := extensions.EnsureProfile(ctx, s.db, userId); err != nil {
		return nil, err
	}

	reaction := &models.ReactionModel{
		PostId:    postId,
		UserId:    userId,
		Type:      reactionType,
		CreatedOn: time.Now().UnixMilli(),
	}
	if err := s.db.Reactions().Save(ctx, reaction.Id(), reaction); err != nil {
		return nil, err
	}
	return reaction, nil
}

func (s *ReactionService) Remove(ctx context.Context, postId, userId string) error {
	if err := validateIds(postId, userId); err != nil {
		return err
	}
	return s.db.Reactions().DeleteById(ctx, models.GetReactionId(postId, userId))
}

func (s *ReactionService) GetUserReaction(ctx context.Context, postId, userId string) (*models.ReactionModel, error) {
	reaction, err := s.db.Reactions().FindOneById(ctx, models.GetReactionId(postId, userId))
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return reaction, nil
}

func (s *ReactionService) Counts(ctx context.Context, postId string) (map[models.ReactionType]int64, error) {
	return s.db.Reactions().CountsByType(ctx, postId)
}
