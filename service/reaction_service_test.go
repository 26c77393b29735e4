package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbloom/bloom/apperr"
	"github.com/openbloom/bloom/models"
)

func TestReact_UpsertsByKey(t *testing.T) {
	socialDb := newTestDb(t)
	posts := NewPostService(socialDb, NewNotificationService(socialDb))
	reactions := NewReactionService(socialDb)
	seedUser(t, socialDb, "alice", "Alice", "alice")
	seedUser(t, socialDb, "bob", "Bob", "bob")

	post, err := posts.CreatePost(context.Background(), "alice", PostInput{Content: "hello"})
	require.NoError(t, err)

	_, err = reactions.React(context.Background(), post.PostId, "bob", models.ReactionLike)
	require.NoError(t, err)
	_, err = reactions.React(context.Background(), post.PostId, "bob", models.ReactionLove)
	require.NoError(t, err)

	// Replacing the type keeps a single document per (post, user).
	counts, err := reactions.Counts(context.Background(), post.PostId)
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts[models.ReactionLike])
	assert.Equal(t, int64(1), counts[models.ReactionLove])

	reaction, err := reactions.GetUserReaction(context.Background(), post.PostId, "bob")
	require.NoError(t, err)
	require.NotNil(t, reaction)
	assert.Equal(t, models.ReactionLove, reaction.Type)
}

func TestReact_UnknownTypeRejected(t *testing.T) {
	socialDb := newTestDb(t)
	reactions := NewReactionService(socialDb)

	_, err := reactions.React(context.Background(), "post", "bob", models.ReactionType("meh"))
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
}

func TestReact_MissingPost(t *testing.T) {
	socialDb := newTestDb(t)
	reactions := NewReactionService(socialDb)

	_, err := reactions.React(context.Background(), "nope", "bob", models.ReactionLike)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestRemoveReaction(t *testing.T) {
	socialDb := newTestDb(t)
	posts := NewPostService(socialDb, NewNotificationService(socialDb))
	reactions := NewReactionService(socialDb)
	seedUser(t, socialDb, "alice", "Alice", "alice")
	seedUser(t, socialDb, "bob", "Bob", "bob")

	post, err := posts.CreatePost(context.Background(), "alice", PostInput{Content: "hello"})
	require.NoError(t, err)

	_, err = reactions.React(context.Background(), post.PostId, "bob", models.ReactionWow)
	require.NoError(t, err)
	require.NoError(t, reactions.Remove(context.Background(), post.PostId, "bob"))

	reaction, err := reactions.GetUserReaction(context.Background(), post.PostId, "bob")
	require.NoError(t, err)
	assert.Nil(t, reaction)

	// Removal is unconditional; removing again is not an error.
	assert.NoError(t, reactions.Remove(context.Background(), post.PostId, "bob"))
}
