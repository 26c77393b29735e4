package models

// BookmarkModel is keyed by (user, post) so a duplicate add fails on the
// key instead of racing a query-before-write check.
type BookmarkModel struct {
	UserId    string `json:"userId" bson:"userId"`
	PostId    string `json:"postId" bson:"postId"`
	CreatedOn int64  `json:"createdOn" bson:"createdOn"`
}

func (b *BookmarkModel) Id() string {
	return GetBookmarkId(b.UserId, b.PostId)
}

func GetBookmarkId(userId, postId string) string {
	return userId + "_" + postId
}
