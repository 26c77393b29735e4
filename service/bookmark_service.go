package service

import (
	"context"
	"time"

	"github.com/openbloom/bloom/apperr"
	"github.com/openbloom/bloom/db"
	"github.com/openbloom/bloom/models"
	"github.com/openbloom/bloom/store"
)

type BookmarkService struct {
	db *db.SocialDb
}

func NewBookmarkService(socialDb *db.SocialDb) *BookmarkService {
	return &BookmarkService{db: socialDb}
}

// Add relies on the keyed create to reject a duplicate bookmark, so two
// concurrent calls cannot both succeed.
func (s *BookmarkService) Add(ctx context.Context, userId, postId string) (*models.BookmarkModel, error) {
	if err := validateIds(userId, postId); err != nil {
		return nil, err
	}
	if !s.db.Posts().IsExistsById(ctx, postId) {
		return nil, apperr.New(apperr.KindNotFound, "post not found")
	}

	bookmark := &models.BookmarkModel{
		UserId:    userId,
		PostId:    postId,
		CreatedOn: time.Now().UnixMilli(),
	}
	doc, err := store.Encode(bookmark)
	if err != nil {
		return nil, err
	}

	if err := s.db.Store().Create(ctx, db.CollBookmarks, bookmark.Id(), doc); err != nil {
		if apperr.IsKind(err, apperr.KindConflict) {
			return nil, apperr.New(apperr.KindConflict, "post already bookmarked")
		}
		return nil, err
	}
	return bookmark, nil
}

func (s *BookmarkService) Remove(ctx context.Context, userId, postId string) error {
	if err := validateIds(userId, postId); err != nil {
		return err
	}
	bookmarkId := models.GetBookmarkId(userId, postId)
	if !s.db.Bookmarks().IsExistsById(ctx, bookmarkId) {
		return apperr.New(apperr.KindNotFound, "bookmark not found")
	}
	return s.db.Bookmarks().DeleteById(ctx, bookmarkId)
}

func (s *BookmarkService) IsBookmarked(ctx context.Context, userId, postId string) bool {
	return s.db.Bookmarks().IsExistsById(ctx, models.GetBookmarkId(userId, postId))
}

func (s *BookmarkService) List(ctx context.Context, userId string) ([]models.BookmarkModel, error) {
	return s.db.Bookmarks().ByUser(ctx, userId)
}

func (s *BookmarkService) PostIds(ctx context.Context, userId string) ([]string, error) {
	return s.db.Bookmarks().PostIdsByUser(ctx, userId)
}
