package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"microblog/internal/model"
	"microblog/internal/queue"
)

// UserProvider resolves user records for notification rendering. Abstracts
// the repository so workers don't depend on the DB layer directly.
type UserProvider interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// FollowerMailer sends the actual follower-notification email.
type FollowerMailer interface {
	SendFollowerNotification(ctx context.Context, followed, follower *model.User) error
}

// Handler processes notification events from the stream.
type Handler struct {
	users  UserProvider
	mailer FollowerMailer // nil when SMTP is not configured
}

// NewHandler creates a new event handler.
func NewHandler(users UserProvider, mailer FollowerMailer) *Handler {
	return &Handler{users: users, mailer: mailer}
}

// HandleEvent routes an event to the appropriate handler based on type.
func (h *Handler) HandleEvent(ctx context.Context, event queue.NotificationEvent) error {
	startTime := time.Now()
	var err error

	switch event.Type {
	case queue.EventFollowerNotification:
		err = h.handleFollowerNotification(ctx, event)
	default:
		return fmt.Errorf("unknown event type: %s", event.Type)
	}

	if err != nil {
		log.Printf("[Worker] HandleEvent FAILED: type=%s duration=%v err=%v",
			event.Type, time.Since(startTime), err)
		return err
	}

	log.Printf("[Worker] HandleEvent OK: type=%s duration=%v", event.Type, time.Since(startTime))
	return nil
}

// handleFollowerNotification emails the followed user about their new
// follower. The outcome, success or failure, is always logged; nothing is
// silently discarded.
func (h *Handler) handleFollowerNotification(ctx context.Context, event queue.NotificationEvent) error {
	if h.mailer == nil {
		log.Printf("[Worker] FollowerNotification: mailer not configured, skipping follower=%d followed=%d",
			event.FollowerID, event.FollowedID)
		return nil
	}

	followed, err := h.users.GetByID(ctx, event.FollowedID)
	if err != nil {
		return fmt.Errorf("get followed user %d: %w", event.FollowedID, err)
	}

	follower, err := h.users.GetByID(ctx, event.FollowerID)
	if err != nil {
		return fmt.Errorf("get follower %d: %w", event.FollowerID, err)
	}

	if err := h.mailer.SendFollowerNotification(ctx, followed, follower); err != nil {
		return fmt.Errorf("send follower notification to %s: %w", followed.Nickname, err)
	}

	log.Printf("[Worker] FollowerNotification sent: followed=%s follower=%s",
		followed.Nickname, follower.Nickname)
	return nil
}
