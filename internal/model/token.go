package model

import (
	"errors"
	"strings"
	"time"
)

// RefreshToken represents a refresh token stored in the database. Only the
// sha256 hash of the raw value is persisted.
type RefreshToken struct {
	ID         string     `db:"id" json:"id"`
	UserID     int64      `db:"user_id" json:"user_id"`
	TokenHash  string     `db:"token_hash" json:"-"`
	ExpiresAt  time.Time  `db:"expires_at" json:"expires_at"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	RevokedAt  *time.Time `db:"revoked_at" json:"revoked_at,omitempty"`
	ReplacedBy *string    `db:"replaced_by" json:"replaced_by,omitempty"`
}

// IsRevoked returns true if the token has been revoked.
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired returns true if the token has expired.
func (t *RefreshToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

var (
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
	ErrRefreshTokenReused   = errors.New("refresh token reuse detected")

	// ErrInvalidAssertion is returned when the identity provider's assertion
	// cannot be verified or is missing required claims.
	ErrInvalidAssertion = errors.New("invalid identity assertion")
)

// Token API error codes (used in HTTP responses)
const (
	CodeTokenExpired = "TOKEN_EXPIRED"
	CodeTokenInvalid = "TOKEN_INVALID"
	CodeTokenReused  = "TOKEN_REUSED"
)

// TokenPair is returned after session creation or refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"` // seconds until access token expiry
}

// SessionRequest is the request body for POST /auth/session. The assertion is
// a JWT issued by the identity provider after its own login handshake; this
// service only verifies it and resolves or creates the local user.
type SessionRequest struct {
	Assertion string `json:"assertion"`
	Remember  bool   `json:"remember"`
}

// Validate checks the session request fields.
func (r *SessionRequest) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(r.Assertion) == "" {
		errs = append(errs, FieldError{Field: "assertion", Message: "assertion is required"})
	}
	return errs
}

// SessionResponse is returned after a successful session creation.
type SessionResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// RefreshRequest is the request body for POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LogoutRequest is the request body for POST /auth/logout.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}
