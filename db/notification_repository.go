package db

import (
	"context"

	"github.com/openbloom/bloom/models"
	"github.com/openbloom/bloom/store"
)

type NotificationRepository struct {
	repository[models.NotificationModel]
}

func (r *NotificationRepository) ByRecipient(ctx context.Context, recipientId string) ([]models.NotificationModel, error) {
	return r.find(ctx, store.Query{
		Filters: []store.Filter{store.Where("recipientId", store.OpEq, recipientId)},
		OrderBy: []store.Order{store.Desc("createdOn"), store.Desc("_id")},
	})
}

func (r *NotificationRepository) UnreadByRecipient(ctx context.Context, recipientId string) ([]models.NotificationModel, error) {
	return r.find(ctx, store.Query{
		Filters: []store.Filter{
			store.Where("recipientId", store.OpEq, recipientId),
			store.Where("read", store.OpEq, false),
		},
	})
}
