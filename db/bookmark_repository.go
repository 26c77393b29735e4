package db

import (
	"context"

	"github.com/thoas/go-funk"

	"github.com/openbloom/bloom/models"
	"github.com/openbloom/bloom/store"
)

type BookmarkRepository struct {
	repository[models.BookmarkModel]
}

func (r *BookmarkRepository) ByUser(ctx context.Context, userId string) ([]models.BookmarkModel, error) {
	return r.find(ctx, store.Query{
		Filters: []store.Filter{store.Where("userId", store.OpEq, userId)},
		OrderBy: []store.Order{store.Desc("createdOn")},
	})
}

func (r *BookmarkRepository) PostIdsByUser(ctx context.Context, userId string) ([]string, error) {
	bookmarks, err := r.ByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	return funk.Map(bookmarks, func(b models.BookmarkModel) string {
		return b.PostId
	}).([]string), nil
}
