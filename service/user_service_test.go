package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbloom/bloom/apperr"
)

func TestEnsureProfile_CreatesDefaultOnFirstSight(t *testing.T) {
	socialDb := newTestDb(t)
	users := NewUserService(socialDb)

	_, err := users.GetProfile(context.Background(), "ghost")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	user, err := users.EnsureProfile(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Equal(t, "Anonymous", user.DisplayName)

	// Second call returns the same profile, not a fresh default.
	again, err := users.EnsureProfile(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Equal(t, user.CreatedOn, again.CreatedOn)
}

func TestUpdateProfile_PatchesIdentityFields(t *testing.T) {
	socialDb := newTestDb(t)
	users := NewUserService(socialDb)
	seedUser(t, socialDb, "alice", "Alice", "alice")

	updated, err := users.UpdateProfile(context.Background(), "alice", ProfileInput{
		DisplayName: "Alice B",
		Bio:         "gardener",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.DisplayName)
	assert.Equal(t, "gardener", updated.Bio)
	// Untouched fields survive the patch.
	assert.Equal(t, "alice", updated.Username)
}

func TestUpdateProfile_RejectsBadUsername(t *testing.T) {
	socialDb := newTestDb(t)
	users := NewUserService(socialDb)
	seedUser(t, socialDb, "alice", "Alice", "alice")

	_, err := users.UpdateProfile(context.Background(), "alice", ProfileInput{Username: "a b!"})
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
}

func TestUpdateProfile_NeverTouchesCounters(t *testing.T) {
	socialDb := newTestDb(t)
	users := NewUserService(socialDb)
	follows := NewFollowService(socialDb, NewNotificationService(socialDb))
	seedUser(t, socialDb, "alice", "Alice", "alice")
	seedUser(t, socialDb, "bob", "Bob", "bob")

	_, err := follows.Follow(context.Background(), "bob", "alice")
	require.NoError(t, err)

	updated, err := users.UpdateProfile(context.Background(), "alice", ProfileInput{Bio: "hi"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.FollowersCount)
}
