package model

import (
	"crypto/md5"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// User represents a user in the system. Accounts are created on first
// federated login, so there is no local password.
type User struct {
	ID        int64      `db:"id" json:"id"`
	Nickname  string     `db:"nickname" json:"nickname"`
	Email     string     `db:"email" json:"-"` // never exposed over the API
	AboutMe   *string    `db:"about_me" json:"about_me"`
	LastSeen  *time.Time `db:"last_seen" json:"last_seen"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// Nickname and about-me limits, inherited from the storage schema.
const (
	MaxNicknameLength = 64
	MaxAboutMeLength  = 140
)

// GravatarURL derives an avatar URL from an email address. Same email always
// yields the same hash, so avatars are stable without storing any image.
func GravatarURL(email string, size int) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=mm&s=%d", sum, size)
}

// Avatar returns the user's Gravatar URL scaled to size pixels.
func (u *User) Avatar(size int) string {
	return GravatarURL(u.Email, size)
}

// UserSummary is the compact author/user representation embedded in feed
// items and follower lists.
type UserSummary struct {
	ID        int64  `db:"id" json:"id"`
	Nickname  string `db:"nickname" json:"nickname"`
	AvatarURL string `json:"avatar_url"`
}

// ProfileResponse is the public profile view: the user plus graph counts and
// the viewer's relationship to them. Counts include the bootstrap self-follow
// edge, matching what the feed query sees.
type ProfileResponse struct {
	User           *User  `json:"user"`
	AvatarURL      string `json:"avatar_url"`
	FollowerCount  int    `json:"follower_count"`
	FollowingCount int    `json:"following_count"`
	PostCount      int    `json:"post_count"`
	IsFollowing    bool   `json:"is_following"`
}

// UpdateProfileRequest is the request body for PUT /me.
type UpdateProfileRequest struct {
	Nickname string  `json:"nickname"`
	AboutMe  *string `json:"about_me"`
}

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate checks the request without touching any state. Uniqueness of the
// nickname is a storage concern and is checked separately. Length limits are
// counted in characters, not bytes.
func (r *UpdateProfileRequest) Validate() []FieldError {
	var errs []FieldError
	nickname := strings.TrimSpace(r.Nickname)
	if nickname == "" {
		errs = append(errs, FieldError{Field: "nickname", Message: "nickname is required"})
	} else if utf8.RuneCountInString(nickname) > MaxNicknameLength {
		errs = append(errs, FieldError{Field: "nickname", Message: fmt.Sprintf("nickname must be at most %d characters", MaxNicknameLength)})
	}
	if r.AboutMe != nil && utf8.RuneCountInString(*r.AboutMe) > MaxAboutMeLength {
		errs = append(errs, FieldError{Field: "about_me", Message: fmt.Sprintf("about_me must be at most %d characters", MaxAboutMeLength)})
	}
	return errs
}

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrNicknameExists is returned when an insert or rename collides with an
	// existing nickname
	ErrNicknameExists = errors.New("nickname already exists")

	// ErrEmailExists is returned when an insert collides with an existing
	// email, i.e. two first logins raced for the same identity
	ErrEmailExists = errors.New("email already exists")

	// ErrNicknameTaken is returned on profile edit when the requested nickname
	// belongs to someone else; the service attaches a free suggestion.
	ErrNicknameTaken = errors.New("nickname already taken")
)

// NicknameTakenError wraps ErrNicknameTaken with a suggested free nickname.
type NicknameTakenError struct {
	Requested string
	Suggested string
}

func (e *NicknameTakenError) Error() string {
	return fmt.Sprintf("nickname %q already taken, %q is available", e.Requested, e.Suggested)
}

func (e *NicknameTakenError) Unwrap() error { return ErrNicknameTaken }
