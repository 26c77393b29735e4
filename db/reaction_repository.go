package db

import (
	"context"

	"github.com/openbloom/bloom/models"
	"github.com/openbloom/bloom/store"
)

type ReactionRepository struct {
	repository[models.ReactionModel]
}

func (r *ReactionRepository) ByPost(ctx context.Context, postId string) ([]models.ReactionModel, error) {
	return r.find(ctx, store.Query{
		Filters: []store.Filter{store.Where("postId", store.OpEq, postId)},
	})
}

// CountsByType rolls a post's reactions up into per-type totals.
func (r *ReactionRepository) CountsByType(ctx context.Context, postId string) (map[models.ReactionType]int64, error) {
	reactions, err := r.ByPost(ctx, postId)
	if err != nil {
		return nil, err
	}
	counts := make(map[models.ReactionType]int64)
	for _, reaction := range reactions {
		counts[reaction.Type]++
	}
	return counts, nil
}
