package events

import (
	"context"
	"time"
)

// Event types emitted by the platform. Downstream consumers (mailer,
// toast fan-out, analytics) subscribe by type.
const (
	TypeProfileCompleted    = "onboarding.profile_completed"
	TypeRoleSelected        = "onboarding.role_selected"
	TypeApplicationReceived = "application.received"
	TypeApplicationUpdated  = "application.status_updated"
	TypeWaitlistJoined      = "waitlist.joined"
	TypeWaitlistInvited     = "waitlist.invited"
	TypeBulkNotification    = "system.bulk_notification"
)

// Event is the envelope published to the notification topic.
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	UserID     string      `json:"user_id,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// EventPublisher publishes platform events. Implementations must be
// safe for concurrent use.
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}
