package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openbloom/bloom/db"
	"github.com/openbloom/bloom/models"
	"github.com/openbloom/bloom/store/memstore"
)

func newTestDb(t *testing.T) *db.SocialDb {
	t.Helper()
	return db.NewSocialDb(memstore.New())
}

func seedUser(t *testing.T, socialDb *db.SocialDb, userId, displayName, username string) {
	t.Helper()
	now := time.Now().UnixMilli()
	err := socialDb.Users().Save(context.Background(), userId, &models.UserModel{
		UserId:         userId,
		DisplayName:    displayName,
		Username:       username,
		CreatedOn:      now,
		LastActivityAt: now,
	})
	require.NoError(t, err)
}

func getUser(t *testing.T, socialDb *db.SocialDb, userId string) *models.UserModel {
	t.Helper()
	user, err := socialDb.Users().FindOneById(context.Background(), userId)
	require.NoError(t, err)
	return user
}

func getPost(t *testing.T, socialDb *db.SocialDb, postId string) *models.PostModel {
	t.Helper()
	post, err := socialDb.Posts().FindOneById(context.Background(), postId)
	require.NoError(t, err)
	return post
}

func notificationsFor(t *testing.T, socialDb *db.SocialDb, recipientId string) []models.NotificationModel {
	t.Helper()
	list, err := socialDb.Notifications().ByRecipient(context.Background(), recipientId)
	require.NoError(t, err)
	return list
}
