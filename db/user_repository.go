package db

import (
	"context"

	"github.com/openbloom/bloom/models"
	"github.com/openbloom/bloom/store"
)

type UserRepository struct {
	repository[models.UserModel]
}

// FindByUsernames resolves mention tokens against the username field.
// Unknown usernames are simply absent from the result.
func (r *UserRepository) FindByUsernames(ctx context.Context, usernames []string) ([]models.UserModel, error) {
	if len(usernames) == 0 {
		return nil, nil
	}
	return r.find(ctx, store.Query{
		Filters: []store.Filter{store.Where("username", store.OpIn, usernames)},
	})
}

// MostRecentlyActive returns up to limit users ordered by last activity,
// newest first. Used for follow suggestions.
func (r *UserRepository) MostRecentlyActive(ctx context.Context, limit int64) ([]models.UserModel, error) {
	return r.find(ctx, store.Query{
		OrderBy: []store.Order{store.Desc("lastActivityAt")},
		Limit:   limit,
	})
}
