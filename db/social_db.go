// Package db holds one thin typed repository per collection over the
// generic document store, produced by the SocialDb factory.
package db

import (
	"github.com/openbloom/bloom/models"
	"github.com/openbloom/bloom/store"
)

// Collection names. Batches that span collections reference these directly.
const (
	CollUsers         = "users"
	CollFollows       = "follows"
	CollUserFollowing = "user_following"
	CollUserFollowers = "user_followers"
	CollPosts         = "posts"
	CollComments      = "comments"
	CollReactions     = "reactions"
	CollBookmarks     = "bookmarks"
	CollNotifications = "notifications"
	CollShares        = "shares"
	CollPostFollows   = "post_follows"
)

type SocialDb struct {
	store store.Store
}

func NewSocialDb(st store.Store) *SocialDb {
	return &SocialDb{store: st}
}

// Store exposes the raw capability for cross-collection batches and
// subscriptions.
func (d *SocialDb) Store() store.Store {
	return d.store
}

func (d *SocialDb) Batch() store.Batch {
	return d.store.Batch()
}

func (d *SocialDb) Users() *UserRepository {
	return &UserRepository{repository[models.UserModel]{store: d.store, collection: CollUsers}}
}

func (d *SocialDb) Follows() *FollowRepository {
	return &FollowRepository{repository[models.FollowModel]{store: d.store, collection: CollFollows}}
}

func (d *SocialDb) Posts() *PostRepository {
	return &PostRepository{repository[models.PostModel]{store: d.store, collection: CollPosts}}
}

func (d *SocialDb) Comments() *CommentRepository {
	return &CommentRepository{repository[models.CommentModel]{store: d.store, collection: CollComments}}
}

func (d *SocialDb) Reactions() *ReactionRepository {
	return &ReactionRepository{repository[models.ReactionModel]{store: d.store, collection: CollReactions}}
}

func (d *SocialDb) Bookmarks() *BookmarkRepository {
	return &BookmarkRepository{repository[models.BookmarkModel]{store: d.store, collection: CollBookmarks}}
}

func (d *SocialDb) Notifications() *NotificationRepository {
	return &NotificationRepository{repository[models.NotificationModel]{store: d.store, collection: CollNotifications}}
}

func (d *SocialDb) Shares() *ShareRepository {
	return &ShareRepository{repository[models.ShareModel]{store: d.store, collection: CollShares}}
}

func (d *SocialDb) PostFollows() *PostFollowRepository {
	return &PostFollowRepository{repository[models.PostFollowModel]{store: d.store, collection: CollPostFollows}}
}
