package service

import (
	"context"
	"fmt"

	"github.com/abadojack/whatlanggo"

	"microblog/internal/model"
	"microblog/internal/repository"
)

// PostService owns post creation, lookup, listing and deletion.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// Create stores a new post for the author. The body's language is detected
// best-effort; an unreliable guess is stored as the empty string.
func (s *PostService) Create(ctx context.Context, userID int64, body string) (*model.Post, error) {
	post := &model.Post{
		UserID:   userID,
		Body:     body,
		Language: DetectLanguage(body),
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	return post, nil
}

// GetByID retrieves a single post.
func (s *PostService) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

// Delete removes a post, enforcing author-only deletion. The repository
// distinguishes a missing post from someone else's post so the handler can
// answer 404 vs 403.
func (s *PostService) Delete(ctx context.Context, postID, userID int64) error {
	return s.postRepo.Delete(ctx, postID, userID)
}

// ListByUser returns one page of a user's posts, newest first.
func (s *PostService) ListByUser(ctx context.Context, nickname string, page, pageSize int) (*model.PostListResponse, error) {
	if pageSize <= 0 {
		return nil, model.ErrInvalidPageSize
	}
	if page < 1 {
		page = 1
	}

	user, err := s.userRepo.GetByNickname(ctx, nickname)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListByUser(ctx, user.ID, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	hasMore := len(posts) > pageSize
	if hasMore {
		posts = posts[:pageSize]
	}
	if posts == nil {
		posts = []model.Post{}
	}

	return &model.PostListResponse{Posts: posts, Page: page, HasMore: hasMore}, nil
}

// DetectLanguage guesses the language of a post body. Unreliable guesses and
// codes that would not fit the language column collapse to "".
func DetectLanguage(body string) string {
	info := whatlanggo.Detect(body)
	if !info.IsReliable() {
		return ""
	}
	code := whatlanggo.LangToString(info.Lang)
	if len(code) > model.MaxLanguageCodeLength {
		return ""
	}
	return code
}
