package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"microblog/internal/model"
)

func TestFollowService_Follow_Self(t *testing.T) {
	me := &model.User{ID: 1, Nickname: "john", Email: "john@example.com"}
	mockUsers := &mockUserRepository{
		getByNicknameFn: func(ctx context.Context, nickname string) (*model.User, error) {
			return me, nil
		},
	}
	svc := NewFollowService(&mockFollowRepository{}, mockUsers, nil, nil)

	_, err := svc.Follow(context.Background(), 1, "john")
	if !errors.Is(err, model.ErrCannotFollowSelf) {
		t.Errorf("error = %v, want %v", err, model.ErrCannotFollowSelf)
	}
}

func TestFollowService_Follow_UnknownTarget(t *testing.T) {
	svc := NewFollowService(&mockFollowRepository{}, &mockUserRepository{}, nil, nil)

	_, err := svc.Follow(context.Background(), 1, "ghost")
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrUserNotFound)
	}
}

func TestFollowService_Unfollow_Self(t *testing.T) {
	me := &model.User{ID: 1, Nickname: "john", Email: "john@example.com"}
	mockUsers := &mockUserRepository{
		getByNicknameFn: func(ctx context.Context, nickname string) (*model.User, error) {
			return me, nil
		},
	}
	svc := NewFollowService(&mockFollowRepository{}, mockUsers, nil, nil)

	_, err := svc.Unfollow(context.Background(), 1, "john")
	if !errors.Is(err, model.ErrCannotUnfollowSelf) {
		t.Errorf("error = %v, want %v", err, model.ErrCannotUnfollowSelf)
	}
}

func TestFollowService_IsFollowing(t *testing.T) {
	mockFollows := &mockFollowRepository{
		existsFn: func(ctx context.Context, followerID, followedID int64) (bool, error) {
			return followerID == 1 && followedID == 2, nil
		},
	}
	svc := NewFollowService(mockFollows, &mockUserRepository{}, nil, nil)

	following, err := svc.IsFollowing(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !following {
		t.Error("expected IsFollowing(1, 2) = true")
	}

	following, err = svc.IsFollowing(context.Background(), 2, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if following {
		t.Error("follow edges are directed, IsFollowing(2, 1) should be false")
	}
}

func TestFollowService_GetFollowers_Pagination(t *testing.T) {
	user := &model.User{ID: 1, Nickname: "john", Email: "john@example.com"}
	mockUsers := &mockUserRepository{
		getByNicknameFn: func(ctx context.Context, nickname string) (*model.User, error) {
			return user, nil
		},
	}

	// 7 followers total; repo honors limit/offset like the real SQL would
	all := make([]model.UserSummary, 7)
	for i := range all {
		all[i] = model.UserSummary{ID: int64(i + 10), Nickname: fmt.Sprintf("u%d", i)}
	}
	mockFollows := &mockFollowRepository{
		getFollowersFn: func(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error) {
			if offset >= len(all) {
				return nil, nil
			}
			end := offset + limit
			if end > len(all) {
				end = len(all)
			}
			return all[offset:end], nil
		},
	}
	svc := NewFollowService(mockFollows, mockUsers, nil, nil)

	t.Run("first page has more", func(t *testing.T) {
		resp, err := svc.GetFollowers(context.Background(), "john", 1, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Users) != 3 {
			t.Errorf("len(Users) = %d, want 3", len(resp.Users))
		}
		if !resp.HasMore {
			t.Error("expected HasMore on page 1 of 7 items")
		}
	})

	t.Run("last partial page", func(t *testing.T) {
		resp, err := svc.GetFollowers(context.Background(), "john", 3, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Users) != 1 {
			t.Errorf("len(Users) = %d, want 1", len(resp.Users))
		}
		if resp.HasMore {
			t.Error("last page must not report HasMore")
		}
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		resp, err := svc.GetFollowers(context.Background(), "john", 10, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Users) != 0 {
			t.Errorf("len(Users) = %d, want 0", len(resp.Users))
		}
		if resp.HasMore {
			t.Error("page past the end must not report HasMore")
		}
	})

	t.Run("page below one clamps to one", func(t *testing.T) {
		resp, err := svc.GetFollowers(context.Background(), "john", 0, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Page != 1 {
			t.Errorf("Page = %d, want 1", resp.Page)
		}
	})

	t.Run("non-positive page size rejected", func(t *testing.T) {
		_, err := svc.GetFollowers(context.Background(), "john", 1, 0)
		if !errors.Is(err, model.ErrInvalidPageSize) {
			t.Errorf("error = %v, want %v", err, model.ErrInvalidPageSize)
		}
	})
}
