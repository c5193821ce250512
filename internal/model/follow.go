package model

import (
	"errors"
	"time"
)

// Follow is a directed edge in the follow graph: follower sees followed's
// posts. Every user follows themselves by construction (created together with
// the account) so their own posts show up in their feed without a special
// case in the feed query.
type Follow struct {
	FollowerID int64     `db:"follower_id" json:"follower_id"`
	FollowedID int64     `db:"followed_id" json:"followed_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// FollowListResponse is one page of followers or followed users.
type FollowListResponse struct {
	Users   []UserSummary `json:"users"`
	Page    int           `json:"page"`
	HasMore bool          `json:"has_more"`
}

var (
	ErrAlreadyFollowing   = errors.New("already following this user")
	ErrNotFollowing       = errors.New("not following this user")
	ErrCannotFollowSelf   = errors.New("cannot follow yourself")
	ErrCannotUnfollowSelf = errors.New("cannot unfollow yourself")
)
