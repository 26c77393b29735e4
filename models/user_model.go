package models

type UserModel struct {
	UserId         string `json:"userId" bson:"_id"`
	DisplayName    string `json:"displayName" bson:"displayName"`
	Username       string `json:"username" bson:"username"`
	Email          string `json:"email" bson:"email"`
	PhotoUrl       string `json:"photoUrl" bson:"photoUrl"`
	Bio            string `json:"bio" bson:"bio"`
	FollowersCount int64  `json:"followersCount" bson:"followersCount"`
	FollowingCount int64  `json:"followingCount" bson:"followingCount"`
	PostsCount     int64  `json:"postsCount" bson:"postsCount"`
	CreatedOn      int64  `json:"createdOn" bson:"createdOn"`
	LastLogin      int64  `json:"lastLogin" bson:"lastLogin"`
	LastActivityAt int64  `json:"lastActivityAt" bson:"lastActivityAt"`
}

func (u *UserModel) Id() string {
	return u.UserId
}
