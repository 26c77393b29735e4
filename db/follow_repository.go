package db

import (
	"context"

	"github.com/thoas/go-funk"

	"github.com/openbloom/bloom/models"
	"github.com/openbloom/bloom/store"
)

type FollowRepository struct {
	repository[models.FollowModel]
}

// GetFollowers returns the edges pointing at userId, newest first.
func (r *FollowRepository) GetFollowers(ctx context.Context, userId string) ([]models.FollowModel, error) {
	return r.find(ctx, store.Query{
		Filters: []store.Filter{store.Where("followingId", store.OpEq, userId)},
		OrderBy: []store.Order{store.Desc("createdOn")},
	})
}

// GetFollowing returns the edges originating at userId, newest first.
func (r *FollowRepository) GetFollowing(ctx context.Context, userId string) ([]models.FollowModel, error) {
	return r.find(ctx, store.Query{
		Filters: []store.Filter{store.Where("followerId", store.OpEq, userId)},
		OrderBy: []store.Order{store.Desc("createdOn")},
	})
}

// GetFollowingIds returns just the followee ids for set-filtered feeds.
func (r *FollowRepository) GetFollowingIds(ctx context.Context, userId string) ([]string, error) {
	edges, err := r.GetFollowing(ctx, userId)
	if err != nil {
		return nil, err
	}
	return funk.Map(edges, func(e models.FollowModel) string {
		return e.FollowingId
	}).([]string), nil
}
