package models

// PostFollowModel subscribes a user to a single post's activity.
type PostFollowModel struct {
	UserId    string `json:"userId" bson:"userId"`
	PostId    string `json:"postId" bson:"postId"`
	CreatedOn int64  `json:"createdOn" bson:"createdOn"`
}

func (p *PostFollowModel) Id() string {
	return GetPostFollowId(p.UserId, p.PostId)
}

func GetPostFollowId(userId, postId string) string {
	return userId + "_" + postId
}
