package events

import "time"

const (
	LeaveNotificationRequestedTopic = "leave.notification.requested.v1"
	LeaveNotificationRequestedType  = "leave.notification.requested"
)

// LeaveNotificationRequestedEvent carries one plain text mail to be
// delivered by the notification consumer.
type LeaveNotificationRequestedEvent struct {
	EventType      string    `json:"event_type"`
	LeaveRequestID int64     `json:"leave_request_id,omitempty"`
	To             string    `json:"to"`
	Subject        string    `json:"subject"`
	Body           string    `json:"body"`
	OccurredAt     time.Time `json:"occurred_at"`
}
