package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"microblog/internal/model"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts a new post. Timestamps are assigned by the database in UTC.
func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	query := `
		INSERT INTO posts (user_id, body, language, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query, post.UserID, post.Body, post.Language).
		Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// GetByID retrieves a single post.
func (r *postRepository) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	query := `
		SELECT id, user_id, body, language, created_at
		FROM posts
		WHERE id = $1
	`
	var post model.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err == sql.ErrNoRows {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &post, nil
}

// Delete hard-deletes a post, but only when userID owns it. When zero rows
// are affected the post either does not exist or belongs to someone else; a
// follow-up existence probe distinguishes the two so handlers can answer
// 403 vs 404.
func (r *postRepository) Delete(ctx context.Context, postID, userID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM posts WHERE id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		var exists bool
		if err := r.db.GetContext(ctx, &exists,
			`SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, postID); err != nil {
			return fmt.Errorf("failed to check post existence: %w", err)
		}
		if exists {
			return model.ErrNotPostOwner
		}
		return model.ErrPostNotFound
	}

	return nil
}

// ListByUser returns one page of a single user's posts, newest first.
func (r *postRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.Post, error) {
	query := `
		SELECT id, user_id, body, language, created_at
		FROM posts
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	var posts []model.Post
	err := r.db.SelectContext(ctx, &posts, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// CountByUser counts a user's posts.
func (r *postRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

// FollowedPosts assembles the viewer's feed in a single query: join posts
// against the viewer's follow edges (the bootstrap self-follow edge pulls in
// their own posts), newest first with an id tie-break so pagination stays
// deterministic when timestamps collide.
func (r *postRepository) FollowedPosts(ctx context.Context, viewerID int64, limit, offset int) ([]model.FeedItem, error) {
	query := `
		SELECT p.id, p.user_id, p.body, p.language, p.created_at,
		       u.id AS "author.id", u.nickname AS "author.nickname", u.email AS author_email
		FROM posts p
		JOIN follows f ON f.followed_id = p.user_id
		JOIN users u ON u.id = p.user_id
		WHERE f.follower_id = $1
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`

	type feedRow struct {
		model.Post
		Author      model.UserSummary `db:"author"`
		AuthorEmail string            `db:"author_email"`
	}

	var rows []feedRow
	err := r.db.SelectContext(ctx, &rows, query, viewerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to select followed posts: %w", err)
	}

	items := make([]model.FeedItem, len(rows))
	for i, row := range rows {
		author := row.Author
		author.AvatarURL = model.GravatarURL(row.AuthorEmail, 70)
		items[i] = model.FeedItem{Post: row.Post, Author: author}
	}
	return items, nil
}
