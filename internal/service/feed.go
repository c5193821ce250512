package service

import (
	"context"

	"microblog/internal/model"
	"microblog/internal/repository"
)

// FeedService assembles a viewer's personalized feed. All the heavy lifting
// is one relational query; this layer owns the pagination contract.
type FeedService struct {
	postRepo repository.PostRepository
}

func NewFeedService(postRepo repository.PostRepository) *FeedService {
	return &FeedService{postRepo: postRepo}
}

// FollowedPosts returns the requested 1-indexed page of posts authored by
// users the viewer follows, the viewer included through their bootstrap
// self-follow edge. Ordering is newest-first with an id tie-break, so pages
// stay deterministic. A page past the end of the data is an empty page, not
// an error; a non-positive page size is a contract violation.
func (s *FeedService) FollowedPosts(ctx context.Context, viewerID int64, page, pageSize int) (*model.FeedResponse, error) {
	if pageSize <= 0 {
		return nil, model.ErrInvalidPageSize
	}
	if page < 1 {
		page = 1
	}

	// limit+1 probe for has_more
	items, err := s.postRepo.FollowedPosts(ctx, viewerID, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	hasMore := len(items) > pageSize
	if hasMore {
		items = items[:pageSize]
	}
	if items == nil {
		items = []model.FeedItem{}
	}

	return &model.FeedResponse{Posts: items, Page: page, HasMore: hasMore}, nil
}
