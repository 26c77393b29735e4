package models

type ReactionType string

const (
	ReactionLike  ReactionType = "like"
	ReactionLove  ReactionType = "love"
	ReactionLaugh ReactionType = "laugh"
	ReactionWow   ReactionType = "wow"
	ReactionSad   ReactionType = "sad"
	ReactionAngry ReactionType = "angry"
)

func ValidReactionType(t ReactionType) bool {
	switch t {
	case ReactionLike, ReactionLove, ReactionLaugh, ReactionWow, ReactionSad, ReactionAngry:
		return true
	}
	return false
}

// ReactionModel holds at most one reaction per (post, user); writes are
// upserts by key, never appends.
type ReactionModel struct {
	PostId    string       `json:"postId" bson:"postId"`
	UserId    string       `json:"userId" bson:"userId"`
	Type      ReactionType `json:"type" bson:"type"`
	CreatedOn int64        `json:"createdOn" bson:"createdOn"`
}

func (r *ReactionModel) Id() string {
	return GetReactionId(r.PostId, r.UserId)
}

// returns the reaction id for the given post and user
func GetReactionId(postId, userId string) string {
	return postId + "_" + userId
}
