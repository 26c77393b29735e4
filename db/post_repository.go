package db

import (
	"context"

	"github.com/openbloom/bloom/models"
	"github.com/openbloom/bloom/store"
)

type PostRepository struct {
	repository[models.PostModel]
}

// Find runs a prepared feed query plan against the posts collection.
func (r *PostRepository) Find(ctx context.Context, q store.Query) ([]models.PostModel, error) {
	return r.find(ctx, q)
}

// ByAuthors returns public, non-draft posts from the given set of authors,
// newest first. No server cursor; callers page client-side.
func (r *PostRepository) ByAuthors(ctx context.Context, authorIds []string) ([]models.PostModel, error) {
	if len(authorIds) == 0 {
		return nil, nil
	}
	return r.find(ctx, store.Query{
		Filters: []store.Filter{
			store.Where("authorId", store.OpIn, authorIds),
			store.Where("draft", store.OpEq, false),
			store.Where("visibility", store.OpEq, string(models.VisibilityPublic)),
		},
		OrderBy: []store.Order{store.Desc("createdOn"), store.Desc("_id")},
	})
}

// ByIds returns the posts in the given id set, newest first.
func (r *PostRepository) ByIds(ctx context.Context, postIds []string) ([]models.PostModel, error) {
	if len(postIds) == 0 {
		return nil, nil
	}
	return r.find(ctx, store.Query{
		Filters: []store.Filter{store.Where("_id", store.OpIn, postIds)},
		OrderBy: []store.Order{store.Desc("createdOn"), store.Desc("_id")},
	})
}
