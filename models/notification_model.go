package models

import (
	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationFollow  NotificationType = "follow"
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationMention NotificationType = "mention"
	NotificationNewPost NotificationType = "newPost"
)

// NotificationModel addresses exactly one recipient. Fan-out to several
// recipients is always several documents.
type NotificationModel struct {
	NotificationId string           `json:"notificationId" bson:"_id"`
	Type           NotificationType `json:"type" bson:"type"`
	RecipientId    string           `json:"recipientId" bson:"recipientId"`
	SenderId       string           `json:"senderId" bson:"senderId"`
	SenderName     string           `json:"senderName" bson:"senderName"`
	SenderPhotoUrl string           `json:"senderPhotoUrl" bson:"senderPhotoUrl"`
	PostId         string           `json:"postId,omitempty" bson:"postId,omitempty"`
	Message        string           `json:"message" bson:"message"`
	Read           bool             `json:"read" bson:"read"`
	CreatedOn      int64            `json:"createdOn" bson:"createdOn"`
}

func (n *NotificationModel) Id() string {
	if len(n.NotificationId) == 0 {
		n.NotificationId = uuid.NewString()
	}
	return n.NotificationId
}
