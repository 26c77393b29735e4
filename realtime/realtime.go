// Package realtime binds live store subscriptions to view callbacks. Every
// watch delivers the entire current result set on each change; the one
// exception is the followed-posts watch, which diffs snapshots to fan out
// new-post notifications.
package realtime

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/openbloom/bloom/db"
	"github.com/openbloom/bloom/logger"
	"github.com/openbloom/bloom/models"
	"github.com/openbloom/bloom/service"
	"github.com/openbloom/bloom/store"
)

type Watcher struct {
	db            *db.SocialDb
	notifications *service.NotificationService
}

func NewWatcher(socialDb *db.SocialDb, notifications *service.NotificationService) *Watcher {
	return &Watcher{db: socialDb, notifications: notifications}
}

// decodeTo adapts a typed callback to the raw snapshot stream. Decode
// failures go to onError and the snapshot is dropped.
func decodeTo[T any](onNext func([]T), onError func(error)) func([]store.Document) {
	return func(docs []store.Document) {
		out, err := db.DecodeAll[T](docs)
		if err != nil {
			onError(err)
			return
		}
		onNext(out)
	}
}

// WatchPosts re-delivers the full post list for the given query plan on
// every change to the posts collection.
func (w *Watcher) WatchPosts(q store.Query, onNext func([]models.PostModel), onError func(error)) (*store.Subscription, error) {
	q.Collection = db.CollPosts
	return w.db.Store().Subscribe(q, decodeTo(onNext, onError), onError)
}

// WatchComments follows one post's comment thread, newest first.
func (w *Watcher) WatchComments(postId string, onNext func([]models.CommentModel), onError func(error)) (*store.Subscription, error) {
	q := store.Query{
		Collection: db.CollComments,
		Filters:    []store.Filter{store.Where("postId", store.OpEq, postId)},
		OrderBy:    []store.Order{store.Desc("createdOn"), store.Desc("_id")},
	}
	return w.db.Store().Subscribe(q, decodeTo(onNext, onError), onError)
}

// WatchNotifications follows a recipient's notification list, newest first.
func (w *Watcher) WatchNotifications(recipientId string, onNext func([]models.NotificationModel), onError func(error)) (*store.Subscription, error) {
	q := store.Query{
		Collection: db.CollNotifications,
		Filters:    []store.Filter{store.Where("recipientId", store.OpEq, recipientId)},
		OrderBy:    []store.Order{store.Desc("createdOn"), store.Desc("_id")},
	}
	return w.db.Store().Subscribe(q, decodeTo(onNext, onError), onError)
}

// WatchProfile follows a single user document.
func (w *Watcher) WatchProfile(userId string, onNext func(*models.UserModel), onError func(error)) (*store.Subscription, error) {
	q := store.Query{
		Collection: db.CollUsers,
		Filters:    []store.Filter{store.Where("_id", store.OpEq, userId)},
	}
	return w.db.Store().Subscribe(q, decodeTo(func(users []models.UserModel) {
		if len(users) == 0 {
			onNext(nil)
			return
		}
		onNext(&users[0])
	}, onError), onError)
}

// WatchReactions aggregates one post's reactions into per-type counts.
func (w *Watcher) WatchReactions(postId string, onNext func(map[models.ReactionType]int64), onError func(error)) (*store.Subscription, error) {
	q := store.Query{
		Collection: db.CollReactions,
		Filters:    []store.Filter{store.Where("postId", store.OpEq, postId)},
	}
	return w.db.Store().Subscribe(q, decodeTo(func(reactions []models.ReactionModel) {
		counts := make(map[models.ReactionType]int64)
		for _, r := range reactions {
			counts[r.Type]++
		}
		onNext(counts)
	}, onError), onError)
}

// WatchFollowedPosts watches the authors the user follows and invokes
// onNewPost once per post that appears after the watch starts, creating a
// newPost notification for it first. The first snapshot primes the seen
// set silently so history is not replayed; the user's own posts never
// trigger the callback.
func (w *Watcher) WatchFollowedPosts(userId string, authorIds []string, onNewPost func(models.PostModel), onError func(error)) (*store.Subscription, error) {
	if len(authorIds) == 0 {
		return store.NewSubscription(nil), nil
	}
	q := store.Query{
		Collection: db.CollPosts,
		Filters: []store.Filter{
			store.Where("authorId", store.OpIn, authorIds),
			store.Where("draft", store.OpEq, false),
			store.Where("visibility", store.OpEq, string(models.VisibilityPublic)),
		},
		OrderBy: []store.Order{store.Desc("createdOn"), store.Desc("_id")},
	}

	seen := make(map[string]bool)
	primed := false
	return w.db.Store().Subscribe(q, decodeTo(func(posts []models.PostModel) {
		if !primed {
			for _, p := range posts {
				seen[p.PostId] = true
			}
			primed = true
			return
		}
		for _, p := range posts {
			if seen[p.PostId] {
				continue
			}
			seen[p.PostId] = true
			if p.AuthorId == userId {
				continue
			}
			if _, err := w.notifications.Create(context.Background(), service.NotificationInput{
				Type:        models.NotificationNewPost,
				RecipientId: userId,
				SenderId:    p.AuthorId,
				SenderName:  p.AuthorName,
				PostId:      p.PostId,
			}); err != nil {
				logger.Error("Failed creating new-post notification",
					zap.String("userId", userId), zap.String("postId", p.PostId), zap.Error(err))
			}
			onNewPost(p)
		}
	}, func(err error) {
		logger.Warn("Followed-posts watch snapshot failed", zap.String("userId", userId), zap.Error(err))
		onError(err)
	}), onError)
}

// SiteStats is the live site-wide roll-up over the posts and users
// collections. Activity windows are rolling: 30 days for monthly, 24 hours
// for daily.
type SiteStats struct {
	TotalPosts         int64 `json:"totalPosts"`
	MonthlyPosts       int64 `json:"monthlyPosts"`
	TotalUsers         int64 `json:"totalUsers"`
	MonthlyActiveUsers int64 `json:"monthlyActiveUsers"`
	DailyActiveUsers   int64 `json:"dailyActiveUsers"`
}

const (
	statsDayWindow   = 24 * time.Hour
	statsMonthWindow = 30 * 24 * time.Hour
)

// WatchStats recomputes SiteStats from the latest posts and users snapshots
// on every change to either collection. The returned handle cancels both
// underlying subscriptions.
func (w *Watcher) WatchStats(onNext func(SiteStats), onError func(error)) (*store.Subscription, error) {
	var mu sync.Mutex
	var posts []models.PostModel
	var users []models.UserModel

	emit := func() {
		now := time.Now().UnixMilli()
		monthCut := now - statsMonthWindow.Milliseconds()
		dayCut := now - statsDayWindow.Milliseconds()

		stats := SiteStats{
			TotalPosts: int64(len(posts)),
			TotalUsers: int64(len(users)),
		}
		for _, p := range posts {
			if p.CreatedOn >= monthCut {
				stats.MonthlyPosts++
			}
		}
		for _, u := range users {
			if u.LastActivityAt >= monthCut {
				stats.MonthlyActiveUsers++
			}
			if u.LastActivityAt >= dayCut {
				stats.DailyActiveUsers++
			}
		}
		onNext(stats)
	}

	postsSub, err := w.db.Store().Subscribe(store.Query{Collection: db.CollPosts}, decodeTo(func(p []models.PostModel) {
		mu.Lock()
		defer mu.Unlock()
		posts = p
		emit()
	}, onError), onError)
	if err != nil {
		return nil, err
	}

	usersSub, err := w.db.Store().Subscribe(store.Query{Collection: db.CollUsers}, decodeTo(func(u []models.UserModel) {
		mu.Lock()
		defer mu.Unlock()
		users = u
		emit()
	}, onError), onError)
	if err != nil {
		postsSub.Unsubscribe()
		return nil, err
	}

	return store.NewSubscription(func() {
		postsSub.Unsubscribe()
		usersSub.Unsubscribe()
	}), nil
}
