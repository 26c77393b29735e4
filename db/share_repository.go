package db

import (
	"context"

	"github.com/openbloom/bloom/models"
	"github.com/openbloom/bloom/store"
)

type ShareRepository struct {
	repository[models.ShareModel]
}

func (r *ShareRepository) ByUser(ctx context.Context, userId string) ([]models.ShareModel, error) {
	return r.find(ctx, store.Query{
		Filters: []store.Filter{store.Where("userId", store.OpEq, userId)},
		OrderBy: []store.Order{store.Desc("createdOn")},
	})
}

func (r *ShareRepository) ByPost(ctx context.Context, postId string) ([]models.ShareModel, error) {
	return r.find(ctx, store.Query{
		Filters: []store.Filter{store.Where("postId", store.OpEq, postId)},
		OrderBy: []store.Order{store.Desc("createdOn")},
	})
}
