package models

import (
	"github.com/google/uuid"
)

type SharePlatform string

const (
	ShareCopy     SharePlatform = "copy"
	ShareTwitter  SharePlatform = "twitter"
	ShareFacebook SharePlatform = "facebook"
	ShareWhatsapp SharePlatform = "whatsapp"
	ShareTelegram SharePlatform = "telegram"
)

func ValidSharePlatform(p SharePlatform) bool {
	switch p {
	case ShareCopy, ShareTwitter, ShareFacebook, ShareWhatsapp, ShareTelegram:
		return true
	}
	return false
}

// ShareModel is one share event; per-post counters on the post document are
// the denormalized rollup.
type ShareModel struct {
	ShareId   string        `json:"shareId" bson:"_id"`
	PostId    string        `json:"postId" bson:"postId"`
	UserId    string        `json:"userId" bson:"userId"`
	Platform  SharePlatform `json:"platform" bson:"platform"`
	CreatedOn int64         `json:"createdOn" bson:"createdOn"`
}

func (s *ShareModel) Id() string {
	if len(s.ShareId) == 0 {
		s.ShareId = uuid.NewString()
	}
	return s.ShareId
}
