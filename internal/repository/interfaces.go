package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"microblog/internal/model"
)

type UserRepository interface {
	// Create inserts a new user inside the given transaction. Returns
	// model.ErrNicknameExists on a nickname uniqueness violation so callers
	// can retry with a different suffix.
	Create(ctx context.Context, tx *sqlx.Tx, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByNickname(ctx context.Context, nickname string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByNickname(ctx context.Context, nickname string) (bool, error)
	UpdateProfile(ctx context.Context, userID int64, nickname string, aboutMe *string) error
	TouchLastSeen(ctx context.Context, userID int64) error
}

type FollowRepository interface {
	// Create adds the follower->followed edge iff it does not exist. Returns
	// whether a new edge was created.
	Create(ctx context.Context, tx *sqlx.Tx, followerID, followedID int64) (bool, error)
	// Delete removes the follower->followed edge iff it exists. Returns
	// whether an edge was removed.
	Delete(ctx context.Context, tx *sqlx.Tx, followerID, followedID int64) (bool, error)
	// Exists is an indexed existence probe on the edge set.
	Exists(ctx context.Context, followerID, followedID int64) (bool, error)
	GetFollowers(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error)
	GetFollowing(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error)
	CountFollowers(ctx context.Context, userID int64) (int, error)
	CountFollowing(ctx context.Context, userID int64) (int, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, postID int64) (*model.Post, error)
	// Delete hard-deletes a post owned by userID. Returns
	// model.ErrNotPostOwner when the post exists but belongs to someone else.
	Delete(ctx context.Context, postID, userID int64) error
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.Post, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	// FollowedPosts selects posts authored by anyone the viewer follows
	// (the viewer included, via their self-follow edge), newest first with an
	// id tie-break, hydrated with the author summary.
	FollowedPosts(ctx context.Context, viewerID int64, limit, offset int) ([]model.FeedItem, error)
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	Revoke(ctx context.Context, id string, replacedBy *string) error
	RevokeAllForUser(ctx context.Context, userID int64) error
}
