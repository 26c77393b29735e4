package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/openbloom/bloom/apperr"
	"github.com/openbloom/bloom/db"
	"github.com/openbloom/bloom/extensions"
	"github.com/openbloom/bloom/logger"
	"github.com/openbloom/bloom/models"
	"github.com/openbloom/bloom/store"
)

// CommentService owns the comments collection and the commentCount counter
// on the parent post; both always move in the same batch.
type CommentService struct {
	db            *db.SocialDb
	notifications *NotificationService
}

func NewCommentService(socialDb *db.SocialDb, notifications *NotificationService) *CommentService {
	return &CommentService{db: socialDb, notifications: notifications}
}

func (s *CommentService) AddComment(ctx context.Context, postId, authorId, content string) (*models.CommentModel, error) {
	if err := validateIds(postId, authorId); err != nil {
		return nil, err
	}
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}

	post, err := s.db.Posts().FindOneById(ctx, postId)
	if err != nil {
		return nil, err
	}
	author, err := extensions.EnsureProfile(ctx, s.db, authorId)
	if err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()
	comment := &models.CommentModel{
		PostId:     postId,
		AuthorId:   authorId,
		AuthorName: extensions.DisplayNameOrDefault(author),
		Content:    content,
		CreatedOn:  now,
	}
	commentId := comment.Id()

	doc, err := store.Encode(comment)
	if err != nil {
		return nil, err
	}
	delete(doc, "_id")

	batch := s.db.Batch()
	batch.Create(db.CollComments, commentId, doc)
	batch.Update(db.CollPosts, postId, store.Document{
		"commentCount":   store.Inc(1),
		"lastActivityAt": now,
	})
	if err := batch.Commit(ctx); err != nil {
		return nil, err
	}

	// Notifications are separate, non-atomic calls after the commit.
	if post.AuthorId != authorId {
		if _, err := s.notifications.Create(ctx, NotificationInput{
			Type:           models.NotificationComment,
			RecipientId:    post.AuthorId,
			SenderId:       authorId,
			SenderName:     extensions.DisplayNameOrDefault(author),
			SenderPhotoUrl: author.PhotoUrl,
			PostId:         postId,
			Message:        fmt.Sprintf("%s commented on your post: %q", extensions.DisplayNameOrDefault(author), titleOrUntitled(post)),
		}); err != nil {
			logger.Error("Failed creating comment notification", zap.String("postId", postId), zap.Error(err))
		}
	}
	s.notifications.NotifyMentions(ctx, authorId, extensions.DisplayNameOrDefault(author), postId, content)

	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, postId, commentId string) error {
	if err := validateIds(postId, commentId); err != nil {
		return err
	}

	comment, err := s.db.Comments().FindOneById(ctx, commentId)
	if err != nil {
		return err
	}
	if comment.PostId != postId {
		return apperr.New(apperr.KindNotFound, "comment does not belong to this post")
	}

	batch := s.db.Batch()
	batch.Delete(db.CollComments, commentId)
	batch.Update(db.CollPosts, postId, store.Document{
		"commentCount":   store.Inc(-1),
		"lastActivityAt": time.Now().UnixMilli(),
	})
	return batch.Commit(ctx)
}

func (s *CommentService) List(ctx context.Context, postId string) ([]models.CommentModel, error) {
	return s.db.Comments().GetComments(ctx, postId)
}
