package queue

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types for the notification stream
const (
	EventFollowerNotification = "follower_notification"
)

// Stream names
const (
	StreamNotifications = "stream:notifications"
)

// Consumer group name for the mail workers
const (
	ConsumerGroupMail = "mail_workers"
)

// NotificationEvent represents an event published to the notification
// stream. The follow request publishes it after its transaction commits; a
// mail worker picks it up, sends the email and acknowledges it.
type NotificationEvent struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"` // Unix timestamp when event occurred

	FollowerID int64 `json:"follower_id,omitempty"`
	FollowedID int64 `json:"followed_id,omitempty"`
}

// NewFollowerNotificationEvent creates an event for when a user gains a new
// follower. The worker will email the followed user.
func NewFollowerNotificationEvent(followerID, followedID int64) NotificationEvent {
	return NotificationEvent{
		Type:       EventFollowerNotification,
		Timestamp:  time.Now().Unix(),
		FollowerID: followerID,
		FollowedID: followedID,
	}
}

// ToMap converts the event to a map for Redis XADD. Redis Streams store
// field-value pairs, so the whole event is serialized into a "data" field.
func (e NotificationEvent) ToMap() (map[string]interface{}, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return map[string]interface{}{
		"type": e.Type,
		"data": string(data),
	}, nil
}

// ParseNotificationEvent parses an event from Redis stream message values.
func ParseNotificationEvent(values map[string]interface{}) (NotificationEvent, error) {
	data, ok := values["data"].(string)
	if !ok {
		return NotificationEvent{}, fmt.Errorf("missing or invalid 'data' field")
	}

	var event NotificationEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return NotificationEvent{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return event, nil
}
