package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Post represents a single microblog post. Posts are immutable after
// creation; the only mutation is an author-initiated delete.
type Post struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Body      string    `db:"body" json:"body"`
	Language  string    `db:"language" json:"language,omitempty"` // "" when undetected
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

const (
	// MaxPostBodyLength is the classic 140-character post limit.
	MaxPostBodyLength = 140

	// MaxLanguageCodeLength bounds the detected-language column.
	MaxLanguageCodeLength = 5
)

// FeedItem is a post enriched with its author for feed display.
type FeedItem struct {
	Post
	Author UserSummary `json:"author"`
}

// FeedResponse is one page of a user's feed.
type FeedResponse struct {
	Posts   []FeedItem `json:"posts"`
	Page    int        `json:"page"`
	HasMore bool       `json:"has_more"`
}

// PostListResponse is one page of a single user's posts (profile view).
type PostListResponse struct {
	Posts   []Post `json:"posts"`
	Page    int    `json:"page"`
	HasMore bool   `json:"has_more"`
}

// CreatePostRequest is the request body for creating a post.
type CreatePostRequest struct {
	Body string `json:"body"`
}

// Validate checks the post body against the length contract. The limit is
// counted in characters, not bytes, so multibyte bodies get the full 140.
func (r *CreatePostRequest) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(r.Body) == "" {
		errs = append(errs, FieldError{Field: "body", Message: "body is required"})
	} else if utf8.RuneCountInString(r.Body) > MaxPostBodyLength {
		errs = append(errs, FieldError{Field: "body", Message: fmt.Sprintf("body must be at most %d characters", MaxPostBodyLength)})
	}
	return errs
}

var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotPostOwner = errors.New("not the owner of this post")

	// ErrInvalidPageSize is a contract violation: page sizes must be positive.
	ErrInvalidPageSize = errors.New("page size must be positive")
)
