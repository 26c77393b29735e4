package models

import (
	"github.com/google/uuid"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

type PostModel struct {
	PostId              string           `json:"postId" bson:"_id"`
	AuthorId            string           `json:"authorId" bson:"authorId"`
	AuthorName          string           `json:"authorName" bson:"authorName"`
	AuthorEmail         string           `json:"authorEmail" bson:"authorEmail"`
	Title               string           `json:"title" bson:"title"`
	Content             string           `json:"content" bson:"content"`
	ImageUrl            string           `json:"imageUrl" bson:"imageUrl"`
	Tags                []string         `json:"tags" bson:"tags"`
	Visibility          Visibility       `json:"visibility" bson:"visibility"`
	Draft               bool             `json:"draft" bson:"draft"`
	Nsfw                bool             `json:"nsfw" bson:"nsfw"`
	Featured            bool             `json:"featured" bson:"featured"`
	Likes               []string         `json:"likes" bson:"likes"`
	LikeCount           int64            `json:"likeCount" bson:"likeCount"`
	CommentCount        int64            `json:"commentCount" bson:"commentCount"`
	FollowersCount      int64            `json:"followersCount" bson:"followersCount"`
	ShareCount          int64            `json:"shareCount" bson:"shareCount"`
	SharePlatformCounts map[string]int64 `json:"sharePlatformCounts" bson:"sharePlatformCounts"`
	CreatedOn           int64            `json:"createdOn" bson:"createdOn"`
	LastActivityAt      int64            `json:"lastActivityAt" bson:"lastActivityAt"`
}

func (p *PostModel) Id() string {
	if len(p.PostId) == 0 {
		p.PostId = uuid.NewString()
	}
	return p.PostId
}

// HasLike is the O(n) membership test over the bounded likes array.
func (p *PostModel) HasLike(userId string) bool {
	for _, id := range p.Likes {
		if id == userId {
			return true
		}
	}
	return false
}
