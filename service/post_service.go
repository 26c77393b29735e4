package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"go.uber.org/zap"

	"github.com/openbloom/bloom/apperr"
	"github.com/openbloom/bloom/db"
	"github.com/openbloom/bloom/extensions"
	"github.com/openbloom/bloom/logger"
	"github.com/openbloom/bloom/models"
	"github.com/openbloom/bloom/store"
)

type PostService struct {
	db            *db.SocialDb
	notifications *NotificationService
}

func NewPostService(socialDb *db.SocialDb, notifications *NotificationService) *PostService {
	return &PostService{db: socialDb, notifications: notifications}
}

type PostInput struct {
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	ImageUrl   string            `json:"imageUrl"`
	Tags       []string          `json:"tags"`
	Visibility models.Visibility `json:"visibility"`
	Draft      bool              `json:"draft"`
	Nsfw       bool              `json:"nsfw"`
}

// CreatePost writes the post document and the author's postsCount credit in
// one atomic batch, so a crash cannot orphan the post from its counter.
func (s *PostService) CreatePost(ctx context.Context, authorId string, in PostInput) (*models.PostModel, error) {
	if err := validateIds(authorId); err != nil {
		return nil, err
	}
	if err := validatePostInput(in.Title, in.Content, in.Tags); err != nil {
		return nil, err
	}

	author, err := extensions.EnsureProfile(ctx, s.db, authorId)
	if err != nil {
		return nil, err
	}

	visibility := in.Visibility
	if len(visibility) == 0 {
		visibility = models.VisibilityPublic
	}

	now := time.Now().UnixMilli()
	post := &models.PostModel{}
	copier.Copy(post, &in)
	post.AuthorId = authorId
	post.AuthorName = extensions.DisplayNameOrDefault(author)
	post.AuthorEmail = author.Email
	post.Title = strings.TrimSpace(in.Title)
	post.Content = strings.TrimSpace(in.Content)
	post.Tags = normalizeTags(in.Tags)
	post.Visibility = visibility
	post.Likes = []string{}
	post.SharePlatformCounts = map[string]int64{
		string(models.ShareCopy):     0,
		string(models.ShareTwitter):  0,
		string(models.ShareFacebook): 0,
		string(models.ShareWhatsapp): 0,
		string(models.ShareTelegram): 0,
	}
	post.CreatedOn = now
	post.LastActivityAt = now
	postId := post.Id()

	doc, err := store.Encode(post)
	if err != nil {
		return nil, err
	}
	delete(doc, "_id")

	batch := s.db.Batch()
	batch.Create(db.CollPosts, postId, doc)
	batch.Update(db.CollUsers, authorId, store.Document{
		"postsCount":     store.Inc(1),
		"lastActivityAt": now,
	})
	if err := batch.Commit(ctx); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, postId string) (*models.PostModel, error) {
	return s.db.Posts().FindOneById(ctx, postId)
}

// DeletePost removes the post and the author's counter credit atomically.
// Only the author may delete a post.
func (s *PostService) DeletePost(ctx context.Context, postId, userId string) error {
	if err := validateIds(postId, userId); err != nil {
		return err
	}

	post, err := s.db.Posts().FindOneById(ctx, postId)
	if err != nil {
		return err
	}
	if post.AuthorId != userId {
		return apperr.New(apperr.KindInvalidInput, "only the author can delete a post")
	}

	batch := s.db.Batch()
	batch.Delete(db.CollPosts, postId)
	batch.Update(db.CollUsers, post.AuthorId, store.Document{"postsCount": store.Inc(-1)})
	return batch.Commit(ctx)
}

// LikePost adds the user to the post's likes set. Re-liking is a no-op, so
// likeCount moves only when the membership actually changes.
func (s *PostService) LikePost(ctx context.Context, postId, userId string) error {
	if err := validateIds(postId, userId); err != nil {
		return err
	}

	post, err := s.db.Posts().FindOneById(ctx, postId)
	if err != nil {
		return err
	}
	if post.HasLike(userId) {
		return nil
	}

	err = s.db.Store().Update(ctx, db.CollPosts, postId, store.Document{
		"likes":          store.ArrayUnion(userId),
		"likeCount":      store.Inc(1),
		"lastActivityAt": time.Now().UnixMilli(),
	})
	if err != nil {
		return err
	}

	if post.AuthorId != userId {
		liker, err := extensions.EnsureProfile(ctx, s.db, userId)
		if err != nil {
			logger.Error("Failed loading liker profile", zap.String("userId", userId), zap.Error(err))
			return nil
		}
		if _, err := s.notifications.Create(ctx, NotificationInput{
			Type:           models.NotificationLike,
			RecipientId:    post.AuthorId,
			SenderId:       userId,
			SenderName:     extensions.DisplayNameOrDefault(liker),
			SenderPhotoUrl: liker.PhotoUrl,
			PostId:         postId,
			Message:        fmt.Sprintf("%s liked your post: %q", extensions.DisplayNameOrDefault(liker), titleOrUntitled(post)),
		}); err != nil {
			logger.Error("Failed creating like notification", zap.String("postId", postId), zap.Error(err))
		}
	}
	return nil
}

func (s *PostService) UnlikePost(ctx context.Context, postId, userId string) error {
	if err := validateIds(postId, userId); err != nil {
		return err
	}

	post, err := s.db.Posts().FindOneById(ctx, postId)
	if err != nil {
		return err
	}
	if !post.HasLike(userId) {
		return nil
	}

	return s.db.Store().Update(ctx, db.CollPosts, postId, store.Document{
		"likes":     store.ArrayRemove(userId),
		"likeCount": store.Inc(-1),
	})
}

// ToggleLike returns whether the post ends up liked by the user.
func (s *PostService) ToggleLike(ctx context.Context, postId, userId string) (bool, error) {
	post, err := s.db.Posts().FindOneById(ctx, postId)
	if err != nil {
		return false, err
	}
	if post.HasLike(userId) {
		return false, s.UnlikePost(ctx, postId, userId)
	}
	return true, s.LikePost(ctx, postId, userId)
}

func titleOrUntitled(post *models.PostModel) string {
	if len(post.Title) == 0 {
		return "Untitled Post"
	}
	return post.Title
}
