package models

import (
	"github.com/google/uuid"
)

// CommentModel lives in its own collection keyed by postId. The legacy
// embedded-array representation inside the post document is not carried
// over; commentCount on the parent post is the only denormalized trace.
type CommentModel struct {
	CommentId  string `json:"commentId" bson:"_id"`
	PostId     string `json:"postId" bson:"postId"`
	AuthorId   string `json:"authorId" bson:"authorId"`
	AuthorName string `json:"authorName" bson:"authorName"`
	Content    string `json:"content" bson:"content"`
	CreatedOn  int64  `json:"createdOn" bson:"createdOn"`
}

func (c *CommentModel) Id() string {
	if len(c.CommentId) == 0 {
		c.CommentId = uuid.NewString()
	}
	return c.CommentId
}
