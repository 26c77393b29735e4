package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbloom/bloom/apperr"
)

func TestFollowPost_CountsAndMembership(t *testing.T) {
	socialDb := newTestDb(t)
	posts := NewPostService(socialDb, NewNotificationService(socialDb))
	postFollows := NewPostFollowService(socialDb)
	seedUser(t, socialDb, "alice", "Alice", "alice")
	seedUser(t, socialDb, "bob", "Bob", "bob")

	post, err := posts.CreatePost(context.Background(), "alice", PostInput{Content: "hello"})
	require.NoError(t, err)

	require.NoError(t, postFollows.FollowPost(context.Background(), "bob", post.PostId))
	assert.True(t, postFollows.IsFollowingPost(context.Background(), "bob", post.PostId))
	assert.Equal(t, int64(1), getPost(t, socialDb, post.PostId).FollowersCount)

	err = postFollows.FollowPost(context.Background(), "bob", post.PostId)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	assert.Equal(t, int64(1), getPost(t, socialDb, post.PostId).FollowersCount)

	ids, err := postFollows.FollowedPostIds(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{post.PostId}, ids)

	require.NoError(t, postFollows.UnfollowPost(context.Background(), "bob", post.PostId))
	assert.False(t, postFollows.IsFollowingPost(context.Background(), "bob", post.PostId))
	assert.Equal(t, int64(0), getPost(t, socialDb, post.PostId).FollowersCount)

	err = postFollows.UnfollowPost(context.Background(), "bob", post.PostId)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}
