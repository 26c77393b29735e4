package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbloom/bloom/apperr"
	"github.com/openbloom/bloom/models"
)

func TestTrackShare_BumpsCounters(t *testing.T) {
	socialDb := newTestDb(t)
	posts := NewPostService(socialDb, NewNotificationService(socialDb))
	shares := NewShareService(socialDb)
	seedUser(t, socialDb, "alice", "Alice", "alice")
	seedUser(t, socialDb, "bob", "Bob", "bob")

	post, err := posts.CreatePost(context.Background(), "alice", PostInput{Content: "hello"})
	require.NoError(t, err)

	_, err = shares.Track(context.Background(), post.PostId, "bob", models.ShareTwitter)
	require.NoError(t, err)
	_, err = shares.Track(context.Background(), post.PostId, "bob", models.ShareTwitter)
	require.NoError(t, err)
	_, err = shares.Track(context.Background(), post.PostId, "bob", models.ShareCopy)
	require.NoError(t, err)

	total, byPlatform, err := shares.PostShareAnalytics(context.Background(), post.PostId)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, int64(2), byPlatform[string(models.ShareTwitter)])
	assert.Equal(t, int64(1), byPlatform[string(models.ShareCopy)])
	assert.Equal(t, int64(0), byPlatform[string(models.ShareWhatsapp)])

	events, err := shares.UserShares(context.Background(), "bob")
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestTrackShare_UnknownPlatformRejected(t *testing.T) {
	socialDb := newTestDb(t)
	shares := NewShareService(socialDb)

	_, err := shares.Track(context.Background(), "post", "bob", models.SharePlatform("myspace"))
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
}

func TestTrackShare_MissingPost(t *testing.T) {
	socialDb := newTestDb(t)
	shares := NewShareService(socialDb)

	_, err := shares.Track(context.Background(), "missing", "bob", models.ShareCopy)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
