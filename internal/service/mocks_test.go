package service

import (
	"context"

	"github.com/jmoiron/sqlx"

	"microblog/internal/model"
)

// Function-field mocks for the repository interfaces. Each test sets only the
// functions it cares about; unset functions fall back to a not-found or noop
// default.

type mockUserRepository struct {
	createFn           func(ctx context.Context, tx *sqlx.Tx, user *model.User) error
	getByIDFn          func(ctx context.Context, id int64) (*model.User, error)
	getByNicknameFn    func(ctx context.Context, nickname string) (*model.User, error)
	getByEmailFn       func(ctx context.Context, email string) (*model.User, error)
	existsByNicknameFn func(ctx context.Context, nickname string) (bool, error)
	updateProfileFn    func(ctx context.Context, userID int64, nickname string, aboutMe *string) error
	touchLastSeenFn    func(ctx context.Context, userID int64) error
}

func (m *mockUserRepository) Create(ctx context.Context, tx *sqlx.Tx, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByNickname(ctx context.Context, nickname string) (*model.User, error) {
	if m.getByNicknameFn != nil {
		return m.getByNicknameFn(ctx, nickname)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	if m.existsByNicknameFn != nil {
		return m.existsByNicknameFn(ctx, nickname)
	}
	return false, nil
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, userID int64, nickname string, aboutMe *string) error {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, userID, nickname, aboutMe)
	}
	return nil
}

func (m *mockUserRepository) TouchLastSeen(ctx context.Context, userID int64) error {
	if m.touchLastSeenFn != nil {
		return m.touchLastSeenFn(ctx, userID)
	}
	return nil
}

type mockFollowRepository struct {
	createFn         func(ctx context.Context, tx *sqlx.Tx, followerID, followedID int64) (bool, error)
	deleteFn         func(ctx context.Context, tx *sqlx.Tx, followerID, followedID int64) (bool, error)
	existsFn         func(ctx context.Context, followerID, followedID int64) (bool, error)
	getFollowersFn   func(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error)
	getFollowingFn   func(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error)
	countFollowersFn func(ctx context.Context, userID int64) (int, error)
	countFollowingFn func(ctx context.Context, userID int64) (int, error)
}

func (m *mockFollowRepository) Create(ctx context.Context, tx *sqlx.Tx, followerID, followedID int64) (bool, error) {
	if m.createFn != nil {
		return m.createFn(ctx, tx, followerID, followedID)
	}
	return true, nil
}

func (m *mockFollowRepository) Delete(ctx context.Context, tx *sqlx.Tx, followerID, followedID int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, tx, followerID, followedID)
	}
	return true, nil
}

func (m *mockFollowRepository) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, followerID, followedID)
	}
	return false, nil
}

func (m *mockFollowRepository) GetFollowers(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error) {
	if m.getFollowersFn != nil {
		return m.getFollowersFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *mockFollowRepository) GetFollowing(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error) {
	if m.getFollowingFn != nil {
		return m.getFollowingFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *mockFollowRepository) CountFollowers(ctx context.Context, userID int64) (int, error) {
	if m.countFollowersFn != nil {
		return m.countFollowersFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockFollowRepository) CountFollowing(ctx context.Context, userID int64) (int, error) {
	if m.countFollowingFn != nil {
		return m.countFollowingFn(ctx, userID)
	}
	return 0, nil
}

type mockPostRepository struct {
	createFn        func(ctx context.Context, post *model.Post) error
	getByIDFn       func(ctx context.Context, postID int64) (*model.Post, error)
	deleteFn        func(ctx context.Context, postID, userID int64) error
	listByUserFn    func(ctx context.Context, userID int64, limit, offset int) ([]model.Post, error)
	countByUserFn   func(ctx context.Context, userID int64) (int, error)
	followedPostsFn func(ctx context.Context, viewerID int64, limit, offset int) ([]model.FeedItem, error)
}

func (m *mockPostRepository) Create(ctx context.Context, post *model.Post) error {
	if m.createFn != nil {
		return m.createFn(ctx, post)
	}
	return nil
}

func (m *mockPostRepository) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, postID)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) Delete(ctx context.Context, postID, userID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, postID, userID)
	}
	return nil
}

func (m *mockPostRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.Post, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *mockPostRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	if m.countByUserFn != nil {
		return m.countByUserFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockPostRepository) FollowedPosts(ctx context.Context, viewerID int64, limit, offset int) ([]model.FeedItem, error) {
	if m.followedPostsFn != nil {
		return m.followedPostsFn(ctx, viewerID, limit, offset)
	}
	return nil, nil
}

type mockRefreshTokenRepository struct {
	createFn           func(ctx context.Context, token *model.RefreshToken) error
	findByTokenHashFn  func(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	revokeFn           func(ctx context.Context, id string, replacedBy *string) error
	revokeAllForUserFn func(ctx context.Context, userID int64) error
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	if m.createFn != nil {
		return m.createFn(ctx, token)
	}
	return nil
}

func (m *mockRefreshTokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	if m.findByTokenHashFn != nil {
		return m.findByTokenHashFn(ctx, tokenHash)
	}
	return nil, model.ErrRefreshTokenNotFound
}

func (m *mockRefreshTokenRepository) Revoke(ctx context.Context, id string, replacedBy *string) error {
	if m.revokeFn != nil {
		return m.revokeFn(ctx, id, replacedBy)
	}
	return nil
}

func (m *mockRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	if m.revokeAllForUserFn != nil {
		return m.revokeAllForUserFn(ctx, userID)
	}
	return nil
}
