package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbloom/bloom/apperr"
	"github.com/openbloom/bloom/db"
	"github.com/openbloom/bloom/models"
)

func seedPost(t *testing.T, socialDb *db.SocialDb, post *models.PostModel) *models.PostModel {
	t.Helper()
	if post.Likes == nil {
		post.Likes = []string{}
	}
	if post.Visibility == "" {
		post.Visibility = models.VisibilityPublic
	}
	if post.LastActivityAt == 0 {
		post.LastActivityAt = post.CreatedOn
	}
	err := socialDb.Posts().Save(context.Background(), post.Id(), post)
	require.NoError(t, err)
	return post
}

func TestFeedLatest_PaginatesToTermination(t *testing.T) {
	socialDb := newTestDb(t)
	feeds := NewFeedService(socialDb, 10)

	for i := 0; i < 25; i++ {
		seedPost(t, socialDb, &models.PostModel{
			PostId:    fmt.Sprintf("post-%02d", i),
			AuthorId:  "alice",
			Content:   "hello",
			CreatedOn: int64(1000 + i),
		})
	}

	page1, err := feeds.Fetch(context.Background(), FeedLatest, "viewer", nil)
	require.NoError(t, err)
	require.Len(t, page1.Posts, 10)
	assert.True(t, page1.HasMore)
	assert.Equal(t, "post-24", page1.Posts[0].PostId)
	assert.Equal(t, "post-15", page1.Posts[9].PostId)

	page2, err := feeds.Fetch(context.Background(), FeedLatest, "viewer", page1.Cursor)
	require.NoError(t, err)
	require.Len(t, page2.Posts, 10)
	assert.Equal(t, "post-14", page2.Posts[0].PostId)
	assert.True(t, page2.HasMore)

	page3, err := feeds.Fetch(context.Background(), FeedLatest, "viewer", page2.Cursor)
	require.NoError(t, err)
	require.Len(t, page3.Posts, 5)
	assert.Equal(t, "post-00", page3.Posts[4].PostId)
	// A short page is the sole end-of-feed signal.
	assert.False(t, page3.HasMore)
}

func TestFeedLatest_IncludesDraftsAndPrivate(t *testing.T) {
	socialDb := newTestDb(t)
	feeds := NewFeedService(socialDb, 10)

	seedPost(t, socialDb, &models.PostModel{PostId: "a", AuthorId: "alice", CreatedOn: 1, Draft: true})
	seedPost(t, socialDb, &models.PostModel{PostId: "b", AuthorId: "alice", CreatedOn: 2, Visibility: models.VisibilityPrivate})
	seedPost(t, socialDb, &models.PostModel{PostId: "c", AuthorId: "alice", CreatedOn: 3})

	page, err := feeds.Fetch(context.Background(), FeedLatest, "viewer", nil)
	require.NoError(t, err)
	assert.Len(t, page.Posts, 3)
}

func TestFeedTrending_FiltersAndOrdersByLikes(t *testing.T) {
	socialDb := newTestDb(t)
	feeds := NewFeedService(socialDb, 10)

	seedPost(t, socialDb, &models.PostModel{PostId: "cold", AuthorId: "a", CreatedOn: 1, LikeCount: 1})
	seedPost(t, socialDb, &models.PostModel{PostId: "hot", AuthorId: "a", CreatedOn: 2, LikeCount: 9})
	seedPost(t, socialDb, &models.PostModel{PostId: "draft", AuthorId: "a", CreatedOn: 3, LikeCount: 50, Draft: true})
	seedPost(t, socialDb, &models.PostModel{PostId: "hidden", AuthorId: "a", CreatedOn: 4, LikeCount: 40, Visibility: models.VisibilityPrivate})

	page, err := feeds.Fetch(context.Background(), FeedTrending, "viewer", nil)
	require.NoError(t, err)
	require.Len(t, page.Posts, 2)
	assert.Equal(t, "hot", page.Posts[0].PostId)
	assert.Equal(t, "cold", page.Posts[1].PostId)
}

func TestFeedDiscussed_OrdersByCommentCount(t *testing.T) {
	socialDb := newTestDb(t)
	feeds := NewFeedService(socialDb, 10)

	seedPost(t, socialDb, &models.PostModel{PostId: "quiet", AuthorId: "a", CreatedOn: 1, CommentCount: 1})
	seedPost(t, socialDb, &models.PostModel{PostId: "busy", AuthorId: "a", CreatedOn: 2, CommentCount: 7})

	page, err := feeds.Fetch(context.Background(), FeedDiscussed, "viewer", nil)
	require.NoError(t, err)
	require.Len(t, page.Posts, 2)
	assert.Equal(t, "busy", page.Posts[0].PostId)
}

func TestFeedFeatured_OnlyFeatured(t *testing.T) {
	socialDb := newTestDb(t)
	feeds := NewFeedService(socialDb, 10)

	seedPost(t, socialDb, &models.PostModel{PostId: "plain", AuthorId: "a", CreatedOn: 1})
	seedPost(t, socialDb, &models.PostModel{PostId: "star", AuthorId: "a", CreatedOn: 2, Featured: true})

	page, err := feeds.Fetch(context.Background(), FeedFeatured, "viewer", nil)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, "star", page.Posts[0].PostId)
}

func TestFeedFollowed_OnlyFollowedAuthors(t *testing.T) {
	socialDb := newTestDb(t)
	feeds := NewFeedService(socialDb, 10)
	follows := NewFollowService(socialDb, NewNotificationService(socialDb))
	seedUser(t, socialDb, "viewer", "Viewer", "viewer")
	seedUser(t, socialDb, "alice", "Alice", "alice")
	seedUser(t, socialDb, "bob", "Bob", "bob")

	_, err := follows.Follow(context.Background(), "viewer", "alice")
	require.NoError(t, err)

	seedPost(t, socialDb, &models.PostModel{PostId: "from-alice", AuthorId: "alice", CreatedOn: 1})
	seedPost(t, socialDb, &models.PostModel{PostId: "from-bob", AuthorId: "bob", CreatedOn: 2})
	seedPost(t, socialDb, &models.PostModel{PostId: "alice-draft", AuthorId: "alice", CreatedOn: 3, Draft: true})

	page, err := feeds.Fetch(context.Background(), FeedFollowed, "viewer", nil)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, "from-alice", page.Posts[0].PostId)
	// Materialized as a single client-side page.
	assert.False(t, page.HasMore)
}

func TestFeedBookmarked_MembershipSet(t *testing.T) {
	socialDb := newTestDb(t)
	feeds := NewFeedService(socialDb, 10)
	bookmarks := NewBookmarkService(socialDb)

	seedPost(t, socialDb, &models.PostModel{PostId: "saved", AuthorId: "a", CreatedOn: 1})
	seedPost(t, socialDb, &models.PostModel{PostId: "other", AuthorId: "a", CreatedOn: 2})

	_, err := bookmarks.Add(context.Background(), "viewer", "saved")
	require.NoError(t, err)

	page, err := feeds.Fetch(context.Background(), FeedBookmarked, "viewer", nil)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, "saved", page.Posts[0].PostId)
}

func TestFeed_UnknownCategory(t *testing.T) {
	socialDb := newTestDb(t)
	feeds := NewFeedService(socialDb, 10)

	_, err := feeds.Fetch(context.Background(), FeedCategory("spicy"), "viewer", nil)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
}

func TestUserPosts_DraftsOnlyForAuthor(t *testing.T) {
	socialDb := newTestDb(t)
	feeds := NewFeedService(socialDb, 10)

	seedPost(t, socialDb, &models.PostModel{PostId: "public", AuthorId: "alice", CreatedOn: 1})
	seedPost(t, socialDb, &models.PostModel{PostId: "draft", AuthorId: "alice", CreatedOn: 2, Draft: true})

	own, err := feeds.UserPosts(context.Background(), "alice", "alice")
	require.NoError(t, err)
	assert.Len(t, own, 2)

	visible, err := feeds.UserPosts(context.Background(), "alice", "bob")
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "public", visible[0].PostId)
}
