package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbloom/bloom/apperr"
	"github.com/openbloom/bloom/models"
	"github.com/openbloom/bloom/store"
)

func TestCreatePost_CreditsAuthorCounter(t *testing.T) {
	socialDb := newTestDb(t)
	posts := NewPostService(socialDb, NewNotificationService(socialDb))
	seedUser(t, socialDb, "alice", "Alice", "alice")

	post, err := posts.CreatePost(context.Background(), "alice", PostInput{
		Title:   "First",
		Content: "hello world",
		Tags:    []string{"Go", "testing"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, post.PostId)
	assert.Equal(t, "Alice", post.AuthorName)
	assert.Equal(t, models.VisibilityPublic, post.Visibility)
	assert.Equal(t, []string{"go", "testing"}, post.Tags)

	assert.Equal(t, int64(1), getUser(t, socialDb, "alice").PostsCount)

	stored := getPost(t, socialDb, post.PostId)
	assert.Equal(t, "hello world", stored.Content)
	assert.Empty(t, stored.Likes)
}

func TestCreatePost_TooManyTagsRejectedBeforeWrite(t *testing.T) {
	socialDb := newTestDb(t)
	posts := NewPostService(socialDb, NewNotificationService(socialDb))
	seedUser(t, socialDb, "alice", "Alice", "alice")

	_, err := posts.CreatePost(context.Background(), "alice", PostInput{
		Content: "hello",
		Tags:    []string{"a", "b", "c", "d", "e", "f"},
	})
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput))

	// Nothing written, counter untouched.
	assert.Equal(t, int64(0), getUser(t, socialDb, "alice").PostsCount)
	all, err := socialDb.Posts().Find(context.Background(), store.Query{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreatePost_EmptyContentRejected(t *testing.T) {
	socialDb := newTestDb(t)
	posts := NewPostService(socialDb, NewNotificationService(socialDb))

	_, err := posts.CreatePost(context.Background(), "alice", PostInput{Content: "   "})
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
}

func TestDeletePost_AuthorOnlyAndDecrements(t *testing.T) {
	socialDb := newTestDb(t)
	posts := NewPostService(socialDb, NewNotificationService(socialDb))
	seedUser(t, socialDb, "alice", "Alice", "alice")

	post, err := posts.CreatePost(context.Background(), "alice", PostInput{Content: "hello"})
	require.NoError(t, err)

	err = posts.DeletePost(context.Background(), post.PostId, "mallory")
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput))

	require.NoError(t, posts.DeletePost(context.Background(), post.PostId, "alice"))
	assert.Equal(t, int64(0), getUser(t, socialDb, "alice").PostsCount)

	_, err = posts.GetPost(context.Background(), post.PostId)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestLikePost_IdempotentAndCounted(t *testing.T) {
	socialDb := newTestDb(t)
	posts := NewPostService(socialDb, NewNotificationService(socialDb))
	seedUser(t, socialDb, "alice", "Alice", "alice")
	seedUser(t, socialDb, "bob", "Bob", "bob")

	post, err := posts.CreatePost(context.Background(), "alice", PostInput{Title: "Hi", Content: "hello"})
	require.NoError(t, err)

	require.NoError(t, posts.LikePost(context.Background(), post.PostId, "bob"))
	require.NoError(t, posts.LikePost(context.Background(), post.PostId, "bob"))

	stored := getPost(t, socialDb, post.PostId)
	assert.Equal(t, int64(1), stored.LikeCount)
	assert.Equal(t, []string{"bob"}, stored.Likes)

	// Author notified exactly once, for the first like only.
	list := notificationsFor(t, socialDb, "alice")
	require.Len(t, list, 1)
	assert.Equal(t, models.NotificationLike, list[0].Type)
}

func TestLikePost_NoSelfNotification(t *testing.T) {
	socialDb := newTestDb(t)
	posts := NewPostService(socialDb, NewNotificationService(socialDb))
	seedUser(t, socialDb, "alice", "Alice", "alice")

	post, err := posts.CreatePost(context.Background(), "alice", PostInput{Content: "hello"})
	require.NoError(t, err)

	require.NoError(t, posts.LikePost(context.Background(), post.PostId, "alice"))
	assert.Empty(t, notificationsFor(t, socialDb, "alice"))
}

func TestUnlikePost_ReversesLike(t *testing.T) {
	socialDb := newTestDb(t)
	posts := NewPostService(socialDb, NewNotificationService(socialDb))
	seedUser(t, socialDb, "alice", "Alice", "alice")
	seedUser(t, socialDb, "bob", "Bob", "bob")

	post, err := posts.CreatePost(context.Background(), "alice", PostInput{Content: "hello"})
	require.NoError(t, err)

	require.NoError(t, posts.LikePost(context.Background(), post.PostId, "bob"))
	require.NoError(t, posts.UnlikePost(context.Background(), post.PostId, "bob"))

	stored := getPost(t, socialDb, post.PostId)
	assert.Equal(t, int64(0), stored.LikeCount)
	assert.Empty(t, stored.Likes)
}

func TestToggleLike(t *testing.T) {
	socialDb := newTestDb(t)
	posts := NewPostService(socialDb, NewNotificationService(socialDb))
	seedUser(t, socialDb, "alice", "Alice", "alice")
	seedUser(t, socialDb, "bob", "Bob", "bob")

	post, err := posts.CreatePost(context.Background(), "alice", PostInput{Content: "hello"})
	require.NoError(t, err)

	liked, err := posts.ToggleLike(context.Background(), post.PostId, "bob")
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = posts.ToggleLike(context.Background(), post.PostId, "bob")
	require.NoError(t, err)
	assert.False(t, liked)

	assert.Equal(t, int64(0), getPost(t, socialDb, post.PostId).LikeCount)
}
