package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"microblog/internal/model"
)

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create adds the follower->followed edge iff it does not already exist.
// ON CONFLICT DO NOTHING keeps the write idempotent; RowsAffected tells the
// caller whether a new edge was actually created.
func (r *followRepository) Create(ctx context.Context, tx *sqlx.Tx, followerID, followedID int64) (bool, error) {
	query := `
		INSERT INTO follows (follower_id, followed_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followed_id) DO NOTHING
	`
	result, err := tx.ExecContext(ctx, query, followerID, followedID)
	if err != nil {
		return false, fmt.Errorf("failed to create follow: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// Delete removes the follower->followed edge iff it exists. Returns whether
// an edge was removed.
func (r *followRepository) Delete(ctx context.Context, tx *sqlx.Tx, followerID, followedID int64) (bool, error) {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`
	result, err := tx.ExecContext(ctx, query, followerID, followedID)
	if err != nil {
		return false, fmt.Errorf("failed to delete follow: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

// Exists checks the edge set through the primary key index, so the probe
// stays O(1)-ish regardless of how many edges the table holds.
func (r *followRepository) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND followed_id = $2)`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, followerID, followedID)
	if err != nil {
		return false, fmt.Errorf("failed to check follow existence: %w", err)
	}
	return exists, nil
}

// GetFollowers returns one page of users following userID, newest edge first.
// Fetches limit+1 rows so the service can compute has_more without a second
// count query.
func (r *followRepository) GetFollowers(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error) {
	query := `
		SELECT u.id, u.nickname, u.email
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.followed_id = $1
		ORDER BY f.created_at DESC, u.id DESC
		LIMIT $2 OFFSET $3
	`
	return r.selectSummaries(ctx, query, userID, limit, offset)
}

// GetFollowing returns one page of users that userID follows.
func (r *followRepository) GetFollowing(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error) {
	query := `
		SELECT u.id, u.nickname, u.email
		FROM follows f
		JOIN users u ON u.id = f.followed_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC, u.id DESC
		LIMIT $2 OFFSET $3
	`
	return r.selectSummaries(ctx, query, userID, limit, offset)
}

func (r *followRepository) selectSummaries(ctx context.Context, query string, userID int64, limit, offset int) ([]model.UserSummary, error) {
	type summaryRow struct {
		ID       int64  `db:"id"`
		Nickname string `db:"nickname"`
		Email    string `db:"email"`
	}

	var rows []summaryRow
	err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list follow edges: %w", err)
	}

	users := make([]model.UserSummary, len(rows))
	for i, row := range rows {
		users[i] = model.UserSummary{
			ID:        row.ID,
			Nickname:  row.Nickname,
			AvatarURL: model.GravatarURL(row.Email, 70),
		}
	}
	return users, nil
}

// CountFollowers counts edges pointing at userID. The count includes the
// self-follow edge, consistent with what the feed query sees.
func (r *followRepository) CountFollowers(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM follows WHERE followed_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count followers: %w", err)
	}
	return count, nil
}

// CountFollowing counts edges leaving userID.
func (r *followRepository) CountFollowing(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM follows WHERE follower_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count following: %w", err)
	}
	return count, nil
}
