package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"microblog/internal/model"
)

// userRepository implements UserRepository using sqlx
type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// pqUniqueViolation is the Postgres error code for unique constraint violations.
const pqUniqueViolation = "23505"

// emailUniqueConstraint is the users.email unique constraint from schema.sql.
const emailUniqueConstraint = "users_email_key"

// Create inserts a new user into the database. The insert runs inside the
// caller's transaction so the bootstrap self-follow edge can commit together
// with the account. The unique indexes are the real guard against concurrent
// registrations, not the pre-checks the service does first; the violated
// constraint tells the caller which field collided, because only a nickname
// collision is retryable with a new suffix.
func (r *userRepository) Create(ctx context.Context, tx *sqlx.Tx, u *model.User) error {
	query := `
		INSERT INTO users (nickname, email, about_me, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := tx.QueryRowxContext(ctx, query, u.Nickname, u.Email, u.AboutMe).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			if pqErr.Constraint == emailUniqueConstraint {
				return model.ErrEmailExists
			}
			return model.ErrNicknameExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, nickname, email, about_me, last_seen, created_at
		FROM users
		WHERE id = $1
	`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &u, nil
}

// GetByNickname retrieves a user by their nickname
func (r *userRepository) GetByNickname(ctx context.Context, nickname string) (*model.User, error) {
	query := `
		SELECT id, nickname, email, about_me, last_seen, created_at
		FROM users
		WHERE nickname = $1
	`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, nickname)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by nickname: %w", err)
	}

	return &u, nil
}

// GetByEmail retrieves a user by their email. Used to resolve federated
// identities to local accounts.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, nickname, email, about_me, last_seen, created_at
		FROM users
		WHERE email = $1
	`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &u, nil
}

// ExistsByNickname checks if a nickname is already taken
func (r *userRepository) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE nickname = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, nickname)
	if err != nil {
		return false, fmt.Errorf("failed to check nickname existence: %w", err)
	}

	return exists, nil
}

// UpdateProfile updates the mutable profile fields. Nickname collisions
// surface as model.ErrNicknameExists, same as Create.
func (r *userRepository) UpdateProfile(ctx context.Context, userID int64, nickname string, aboutMe *string) error {
	query := `UPDATE users SET nickname = $1, about_me = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, nickname, aboutMe, userID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return model.ErrNicknameExists
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrUserNotFound
	}

	return nil
}

// TouchLastSeen records activity for the user. Called on every authenticated
// request.
func (r *userRepository) TouchLastSeen(ctx context.Context, userID int64) error {
	query := `UPDATE users SET last_seen = NOW() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to touch last_seen: %w", err)
	}
	return nil
}
