package service

import (
	"context"

	"github.com/thoas/go-funk"

	"github.com/openbloom/bloom/apperr"
	"github.com/openbloom/bloom/db"
	"github.com/openbloom/bloom/models"
	"github.com/openbloom/bloom/store"
)

type FeedCategory string

const (
	FeedLatest     FeedCategory = "latest"
	FeedTrending   FeedCategory = "trending"
	FeedDiscussed  FeedCategory = "discussed"
	FeedFeatured   FeedCategory = "featured"
	FeedFollowed   FeedCategory = "followed"
	FeedBookmarked FeedCategory = "bookmarked"
)

func ValidFeedCategory(c FeedCategory) bool {
	switch c {
	case FeedLatest, FeedTrending, FeedDiscussed, FeedFeatured, FeedFollowed, FeedBookmarked:
		return true
	}
	return false
}

// FeedPage is one page of a category feed. Cursor carries the order-field
// values of the last post, to be passed back as the next page's start.
type FeedPage struct {
	Posts   []models.PostModel
	Cursor  []any
	HasMore bool
}

// FeedService translates a feed category into one deterministic query plan
// and executes it a page at a time.
type FeedService struct {
	db       *db.SocialDb
	pageSize int64
}

func NewFeedService(socialDb *db.SocialDb, pageSize int64) *FeedService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &FeedService{db: socialDb, pageSize: pageSize}
}

func (s *FeedService) PageSize() int64 {
	return s.pageSize
}

// publicBaseFilter applies to every shared category except latest, which
// intentionally shows everything.
func publicBaseFilter() []store.Filter {
	return []store.Filter{
		store.Where("draft", store.OpEq, false),
		store.Where("visibility", store.OpEq, string(models.VisibilityPublic)),
	}
}

// Plan returns the query plan for the server-side categories. The order
// fields double as the cursor fields. Followed and bookmarked have no
// server plan; they are materialized from membership sets in Fetch.
func (s *FeedService) Plan(category FeedCategory) (store.Query, error) {
	switch category {
	case FeedLatest:
		return store.Query{
			OrderBy: []store.Order{store.Desc("createdOn"), store.Desc("_id")},
		}, nil
	case FeedTrending:
		return store.Query{
			Filters: publicBaseFilter(),
			OrderBy: []store.Order{store.Desc("likeCount"), store.Desc("lastActivityAt"), store.Desc("_id")},
		}, nil
	case FeedDiscussed:
		return store.Query{
			Filters: publicBaseFilter(),
			OrderBy: []store.Order{store.Desc("commentCount"), store.Desc("_id")},
		}, nil
	case FeedFeatured:
		return store.Query{
			Filters: append(publicBaseFilter(), store.Where("featured", store.OpEq, true)),
			OrderBy: []store.Order{store.Desc("lastActivityAt"), store.Desc("_id")},
		}, nil
	}
	return store.Query{}, apperr.Newf(apperr.KindInvalidInput, "unknown feed category: %s", category)
}

// Fetch returns one page of the given category. For followed and bookmarked
// the whole result is materialized client-side and returned as a single
// page; cursor is ignored for those.
func (s *FeedService) Fetch(ctx context.Context, category FeedCategory, userId string, cursor []any) (*FeedPage, error) {
	switch category {
	case FeedFollowed:
		return s.fetchFollowed(ctx, userId)
	case FeedBookmarked:
		return s.fetchBookmarked(ctx, userId)
	}

	q, err := s.Plan(category)
	if err != nil {
		return nil, err
	}
	q.StartAfter = cursor
	q.Limit = s.pageSize

	posts, err := s.db.Posts().Find(ctx, q)
	if err != nil {
		return nil, err
	}
	page := &FeedPage{
		Posts:   posts,
		HasMore: int64(len(posts)) == s.pageSize,
	}
	if len(posts) > 0 {
		page.Cursor = cursorFrom(q.OrderBy, &posts[len(posts)-1])
	}
	return page, nil
}

func (s *FeedService) fetchFollowed(ctx context.Context, userId string) (*FeedPage, error) {
	if err := validateIds(userId); err != nil {
		return nil, err
	}
	followingIds, err := s.db.Follows().GetFollowingIds(ctx, userId)
	if err != nil {
		return nil, err
	}
	posts, err := s.db.Posts().ByAuthors(ctx, followingIds)
	if err != nil {
		return nil, err
	}
	return &FeedPage{Posts: posts}, nil
}

func (s *FeedService) fetchBookmarked(ctx context.Context, userId string) (*FeedPage, error) {
	if err := validateIds(userId); err != nil {
		return nil, err
	}
	postIds, err := s.db.Bookmarks().PostIdsByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	posts, err := s.db.Posts().ByIds(ctx, postIds)
	if err != nil {
		return nil, err
	}
	return &FeedPage{Posts: posts}, nil
}

// UserPosts lists a single author's posts, newest first. Drafts are visible
// only to the author themselves.
func (s *FeedService) UserPosts(ctx context.Context, authorId, viewerId string) ([]models.PostModel, error) {
	if err := validateIds(authorId); err != nil {
		return nil, err
	}
	filters := []store.Filter{store.Where("authorId", store.OpEq, authorId)}
	if viewerId != authorId {
		filters = append(filters,
			store.Where("draft", store.OpEq, false),
			store.Where("visibility", store.OpEq, string(models.VisibilityPublic)))
	}
	return s.db.Posts().Find(ctx, store.Query{
		Filters: filters,
		OrderBy: []store.Order{store.Desc("createdOn"), store.Desc("_id")},
	})
}

// cursorFrom pulls the order-field values out of the page's last post.
func cursorFrom(orderBy []store.Order, post *models.PostModel) []any {
	return funk.Map(orderBy, func(o store.Order) any {
		switch o.Field {
		case "_id":
			return post.PostId
		case "createdOn":
			return post.CreatedOn
		case "likeCount":
			return post.LikeCount
		case "commentCount":
			return post.CommentCount
		case "lastActivityAt":
			return post.LastActivityAt
		}
		return nil
	}).([]any)
}
