package models

// FollowModel is one directed follow edge. Display names are denormalized
// at creation time and never kept in sync afterward; the edge itself is
// created once and destroyed once, never mutated.
type FollowModel struct {
	FollowerId    string `json:"followerId" bson:"followerId"`
	FollowingId   string `json:"followingId" bson:"followingId"`
	FollowerName  string `json:"followerName" bson:"followerName"`
	FollowingName string `json:"followingName" bson:"followingName"`
	CreatedOn     int64  `json:"createdOn" bson:"createdOn"`
}

func (f *FollowModel) Id() string {
	return GetFollowId(f.FollowerId, f.FollowingId)
}

// returns the follow edge id for the given follower and followee
func GetFollowId(followerId, followingId string) string {
	return followerId + "_" + followingId
}

// FollowMirrorModel is the denormalized membership record kept under both
// sides of an edge for fast lookups: one in user_following owned by the
// follower, one in user_followers owned by the followee.
type FollowMirrorModel struct {
	OwnerId     string `json:"ownerId" bson:"ownerId"`
	UserId      string `json:"userId" bson:"userId"`
	DisplayName string `json:"displayName" bson:"displayName"`
	Email       string `json:"email" bson:"email"`
	PhotoUrl    string `json:"photoUrl" bson:"photoUrl"`
	FollowedAt  int64  `json:"followedAt" bson:"followedAt"`
}

func (m *FollowMirrorModel) Id() string {
	return GetFollowMirrorId(m.OwnerId, m.UserId)
}

func GetFollowMirrorId(ownerId, userId string) string {
	return ownerId + "_" + userId
}
