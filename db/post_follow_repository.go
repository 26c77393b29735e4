package db

import (
	"context"

	"github.com/thoas/go-funk"

	"github.com/openbloom/bloom/models"
	"github.com/openbloom/bloom/store"
)

type PostFollowRepository struct {
	repository[models.PostFollowModel]
}

func (r *PostFollowRepository) PostIdsByUser(ctx context.Context, userId string) ([]string, error) {
	follows, err := r.find(ctx, store.Query{
		Filters: []store.Filter{store.Where("userId", store.OpEq, userId)},
		OrderBy: []store.Order{store.Desc("createdOn")},
	})
	if err != nil {
		return nil, err
	}
	return funk.Map(follows, func(f models.PostFollowModel) string {
		return f.PostId
	}).([]string), nil
}
