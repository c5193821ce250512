package service

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"

	"microblog/internal/model"
	"microblog/internal/queue"
	"microblog/internal/repository"
)

// FollowService owns the follow-graph operations. Edge mutations run inside
// a transaction; the follower-notification event is published only after the
// commit so workers never see an edge that was rolled back.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	db         *sqlx.DB
	publisher  queue.Publisher
}

func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	db *sqlx.DB,
	publisher queue.Publisher,
) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		db:         db,
		publisher:  publisher,
	}
}

// Follow creates the actor->target edge. Self-follow is reserved for the
// account-creation bootstrap and rejected here; following an already-followed
// user is a no-op surfaced as ErrAlreadyFollowing.
func (s *FollowService) Follow(ctx context.Context, followerID int64, targetNickname string) (*model.User, error) {
	target, err := s.userRepo.GetByNickname(ctx, targetNickname)
	if err != nil {
		return nil, err
	}

	if followerID == target.ID {
		return nil, model.ErrCannotFollowSelf
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	created, err := s.followRepo.Create(ctx, tx, followerID, target.ID)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, model.ErrAlreadyFollowing
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	// Publish after commit; a lost event costs one email, never a phantom one.
	if s.publisher != nil {
		event := queue.NewFollowerNotificationEvent(followerID, target.ID)
		if _, err := s.publisher.Publish(ctx, queue.StreamNotifications, event); err != nil {
			log.Printf("[FollowService] Failed to publish follower notification: follower=%d followed=%d err=%v",
				followerID, target.ID, err)
		}
	}

	return target, nil
}

// Unfollow removes the actor->target edge. Removing a missing edge surfaces
// as ErrNotFollowing.
func (s *FollowService) Unfollow(ctx context.Context, followerID int64, targetNickname string) (*model.User, error) {
	target, err := s.userRepo.GetByNickname(ctx, targetNickname)
	if err != nil {
		return nil, err
	}

	if followerID == target.ID {
		return nil, model.ErrCannotUnfollowSelf
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	removed, err := s.followRepo.Delete(ctx, tx, followerID, target.ID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, model.ErrNotFollowing
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return target, nil
}

// IsFollowing checks the actor->target edge.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, followedID)
}

// GetFollowers returns one page of the user's followers.
func (s *FollowService) GetFollowers(ctx context.Context, nickname string, page, pageSize int) (*model.FollowListResponse, error) {
	return s.listEdges(ctx, nickname, page, pageSize, s.followRepo.GetFollowers)
}

// GetFollowing returns one page of the users this user follows.
func (s *FollowService) GetFollowing(ctx context.Context, nickname string, page, pageSize int) (*model.FollowListResponse, error) {
	return s.listEdges(ctx, nickname, page, pageSize, s.followRepo.GetFollowing)
}

func (s *FollowService) listEdges(
	ctx context.Context,
	nickname string,
	page, pageSize int,
	list func(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error),
) (*model.FollowListResponse, error) {
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

	// limit+1 probe: one extra row answers has_more without a count query.
	users, err := list(ctx, user.ID, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	hasMore := len(users) > pageSize
	if hasMore {
		users = users[:pageSize]
	}
	if users == nil {
		users = []model.UserSummary{}
	}

	return &model.FollowListResponse{Users: users, Page: page, HasMore: hasMore}, nil
}
