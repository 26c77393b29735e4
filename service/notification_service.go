package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/openbloom/bloom/db"
	"github.com/openbloom/bloom/extensions"
	"github.com/openbloom/bloom/logger"
	"github.com/openbloom/bloom/models"
	"github.com/openbloom/bloom/store"
)

// NotificationService creates exactly one notification document per
// (event, recipient) pair. It never fans out to multiple recipients in one
// call; mention handling loops and calls Create once per resolved user.
type NotificationService struct {
	db *db.SocialDb
}

func NewNotificationService(socialDb *db.SocialDb) *NotificationService {
	return &NotificationService{db: socialDb}
}

type NotificationInput struct {
	Type           models.NotificationType
	RecipientId    string
	SenderId       string
	SenderName     string
	SenderPhotoUrl string
	PostId         string
	Message        string
}

func (s *NotificationService) Create(ctx context.Context, in NotificationInput) (*models.NotificationModel, error) {
	if err := validateIds(in.RecipientId, in.SenderId); err != nil {
		return nil, err
	}

	message := in.Message
	if len(message) == 0 {
		message = defaultMessage(in.Type, in.SenderName)
	}

	notification := &models.NotificationModel{
		Type:           in.Type,
		RecipientId:    in.RecipientId,
		SenderId:       in.SenderId,
		SenderName:     in.SenderName,
		SenderPhotoUrl: in.SenderPhotoUrl,
		PostId:         in.PostId,
		Message:        message,
		Read:           false,
		CreatedOn:      time.Now().UnixMilli(),
	}
	id := notification.Id()

	doc, err := store.Encode(notification)
	if err != nil {
		return nil, err
	}
	delete(doc, "_id")

	if err := s.db.Store().Create(ctx, db.CollNotifications, id, doc); err != nil {
		return nil, err
	}
	return notification, nil
}

func defaultMessage(notificationType models.NotificationType, senderName string) string {
	switch notificationType {
	case models.NotificationFollow:
		return fmt.Sprintf("%s started following you", senderName)
	case models.NotificationLike:
		return fmt.Sprintf("%s liked your post", senderName)
	case models.NotificationComment:
		return fmt.Sprintf("%s commented on your post", senderName)
	case models.NotificationNewPost:
		return fmt.Sprintf("%s created a new post", senderName)
	case models.NotificationMention:
		return fmt.Sprintf("%s mentioned you in a comment", senderName)
	}
	return fmt.Sprintf("New notification from %s", senderName)
}

// NotifyMentions resolves @tokens in content against the username index and
// creates one mention notification per resolved user, excluding the
// commenter. Unresolved tokens are dropped without error.
func (s *NotificationService) NotifyMentions(ctx context.Context, senderId, senderName, postId, content string) {
	mentions := extensions.ExtractMentions(content)
	if len(mentions) == 0 {
		return
	}

	mentioned, err := s.db.Users().FindByUsernames(ctx, mentions)
	if err != nil {
		logger.Error("Failed resolving mentions", zap.Error(err))
		return
	}

	for _, user := range mentioned {
		if user.UserId == senderId {
			continue
		}
		_, err := s.Create(ctx, NotificationInput{
			Type:        models.NotificationMention,
			RecipientId: user.UserId,
			SenderId:    senderId,
			SenderName:  senderName,
			PostId:      postId,
			Message:     fmt.Sprintf("%s mentioned you in a comment: %q", senderName, snippet(content, 50)),
		})
		if err != nil {
			logger.Error("Failed creating mention notification",
				zap.String("recipientId", user.UserId), zap.Error(err))
		}
	}
}

func snippet(content string, max int) string {
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	return string(runes[:max]) + "..."
}

func (s *NotificationService) List(ctx context.Context, recipientId string) ([]models.NotificationModel, error) {
	return s.db.Notifications().ByRecipient(ctx, recipientId)
}

func (s *NotificationService) UnreadCount(ctx context.Context, recipientId string) (int64, error) {
	unread, err := s.db.Notifications().UnreadByRecipient(ctx, recipientId)
	if err != nil {
		return 0, err
	}
	return int64(len(unread)), nil
}

// MarkRead moves a notification unread -> read. Read notifications are
// never reset to unread.
func (s *NotificationService) MarkRead(ctx context.Context, notificationId string) error {
	return s.db.Store().Update(ctx, db.CollNotifications, notificationId, store.Document{"read": true})
}

// MarkManyRead marks the given ids read in one atomic batch.
func (s *NotificationService) MarkManyRead(ctx context.Context, notificationIds []string) error {
	if len(notificationIds) == 0 {
		return nil
	}
	batch := s.db.Batch()
	for _, id := range notificationIds {
		batch.Update(db.CollNotifications, id, store.Document{"read": true})
	}
	return batch.Commit(ctx)
}

// MarkAllRead marks every unread notification for the recipient read.
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientId string) error {
	unread, err := s.db.Notifications().UnreadByRecipient(ctx, recipientId)
	if err != nil {
		return err
	}
	if len(unread) == 0 {
		return nil
	}
	batch := s.db.Batch()
	for _, n := range unread {
		batch.Update(db.CollNotifications, n.NotificationId, store.Document{"read": true})
	}
	return batch.Commit(ctx)
}

// Delete is unconditional and irreversible.
func (s *NotificationService) Delete(ctx context.Context, notificationId string) error {
	return s.db.Store().Delete(ctx, db.CollNotifications, notificationId)
}
