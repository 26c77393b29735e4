package service

import (
	"context"

	"github.com/openbloom/bloom/models"
)

type FeedState string

const (
	FeedIdle    FeedState = "idle"
	FeedLoading FeedState = "loading"
	FeedLoaded  FeedState = "loaded"
	FeedErrored FeedState = "errored"
)

// FeedView is the stateful pagination cursor over one feed category.
// Not safe for concurrent use; each view belongs to a single consumer.
type FeedView struct {
	feeds    *FeedService
	userId   string
	category FeedCategory

	state   FeedState
	posts   []models.PostModel
	cursor  []any
	hasMore bool
	err     error
}

func NewFeedView(feeds *FeedService, userId string) *FeedView {
	return &FeedView{feeds: feeds, userId: userId, category: FeedLatest, state: FeedIdle, hasMore: true}
}

func (v *FeedView) State() FeedState          { return v.state }
func (v *FeedView) Posts() []models.PostModel { return v.posts }
func (v *FeedView) HasMore() bool             { return v.hasMore }
func (v *FeedView) Err() error                { return v.err }
func (v *FeedView) Category() FeedCategory    { return v.category }

// SetCategory switches the view to a new category, unconditionally dropping
// the accumulated posts and cursor, then loads the first page.
func (v *FeedView) SetCategory(ctx context.Context, category FeedCategory) error {
	v.category = category
	v.posts = nil
	v.cursor = nil
	v.hasMore = true
	v.state = FeedIdle
	v.err = nil
	return v.LoadMore(ctx)
}

// Reload re-fetches the current category from the top.
func (v *FeedView) Reload(ctx context.Context) error {
	return v.SetCategory(ctx, v.category)
}

// LoadMore fetches the next page and appends it. Once hasMore latches false
// further calls are no-ops.
func (v *FeedView) LoadMore(ctx context.Context) error {
	if v.state == FeedLoading || !v.hasMore {
		return nil
	}
	v.state = FeedLoading

	page, err := v.feeds.Fetch(ctx, v.category, v.userId, v.cursor)
	if err != nil {
		v.state = FeedErrored
		v.err = err
		return err
	}

	v.posts = append(v.posts, page.Posts...)
	v.cursor = page.Cursor
	v.hasMore = page.HasMore
	v.state = FeedLoaded
	v.err = nil
	return nil
}
