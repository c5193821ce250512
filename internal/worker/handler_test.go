package worker

import (
	"context"
	"errors"
	"testing"

	"microblog/internal/model"
	"microblog/internal/queue"
)

type mockUserProvider struct {
	getByIDFn func(ctx context.Context, id int64) (*model.User, error)
}

func (m *mockUserProvider) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

type mockMailer struct {
	sendFn func(ctx context.Context, followed, follower *model.User) error
	calls  int
}

func (m *mockMailer) SendFollowerNotification(ctx context.Context, followed, follower *model.User) error {
	m.calls++
	if m.sendFn != nil {
		return m.sendFn(ctx, followed, follower)
	}
	return nil
}

func testUsers() *mockUserProvider {
	users := map[int64]*model.User{
		1: {ID: 1, Nickname: "john", Email: "john@example.com"},
		2: {ID: 2, Nickname: "susan", Email: "susan@example.com"},
	}
	return &mockUserProvider{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			if u, ok := users[id]; ok {
				return u, nil
			}
			return nil, model.ErrUserNotFound
		},
	}
}

func TestHandler_FollowerNotification(t *testing.T) {
	var gotFollowed, gotFollower *model.User
	mailer := &mockMailer{
		sendFn: func(ctx context.Context, followed, follower *model.User) error {
			gotFollowed, gotFollower = followed, follower
			return nil
		},
	}
	h := NewHandler(testUsers(), mailer)

	event := queue.NewFollowerNotificationEvent(1, 2)
	if err := h.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotFollowed == nil || gotFollowed.ID != 2 {
		t.Errorf("followed = %+v, want user 2", gotFollowed)
	}
	if gotFollower == nil || gotFollower.ID != 1 {
		t.Errorf("follower = %+v, want user 1", gotFollower)
	}
}

func TestHandler_FollowerNotification_NilMailerSkips(t *testing.T) {
	h := NewHandler(testUsers(), nil)

	event := queue.NewFollowerNotificationEvent(1, 2)
	if err := h.HandleEvent(context.Background(), event); err != nil {
		t.Errorf("nil mailer should skip silently, got error: %v", err)
	}
}

func TestHandler_FollowerNotification_UnknownUser(t *testing.T) {
	mailer := &mockMailer{}
	h := NewHandler(testUsers(), mailer)

	event := queue.NewFollowerNotificationEvent(1, 99)
	err := h.HandleEvent(context.Background(), event)
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrUserNotFound)
	}
	if mailer.calls != 0 {
		t.Error("mailer must not be called when a user lookup fails")
	}
}

func TestHandler_FollowerNotification_SendFailureSurfaces(t *testing.T) {
	smtpErr := errors.New("smtp timeout")
	mailer := &mockMailer{
		sendFn: func(ctx context.Context, followed, follower *model.User) error {
			return smtpErr
		},
	}
	h := NewHandler(testUsers(), mailer)

	event := queue.NewFollowerNotificationEvent(1, 2)
	err := h.HandleEvent(context.Background(), event)
	if !errors.Is(err, smtpErr) {
		t.Errorf("error = %v, want wrapped %v", err, smtpErr)
	}
}

func TestHandler_UnknownEventType(t *testing.T) {
	h := NewHandler(testUsers(), &mockMailer{})

	event := queue.NotificationEvent{Type: "unknown_event"}
	if err := h.HandleEvent(context.Background(), event); err == nil {
		t.Error("expected error for unknown event type")
	}
}
