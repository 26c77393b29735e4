package db

import (
	"context"

	"github.com/openbloom/bloom/models"
	"github.com/openbloom/bloom/store"
)

type CommentRepository struct {
	repository[models.CommentModel]
}

func (r *CommentRepository) GetComments(ctx context.Context, postId string) ([]models.CommentModel, error) {
	return r.find(ctx, store.Query{
		Filters: []store.Filter{store.Where("postId", store.OpEq, postId)},
		OrderBy: []store.Order{store.Desc("createdOn"), store.Desc("_id")},
	})
}
