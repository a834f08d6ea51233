package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"time"

	"go-leave/internal/events"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/shared/contextutil"

	"github.com/google/uuid"
)

// OutboxDispatcher stores the message as an outbox event. The worker
// publishes it to Kafka and the consumer performs the SMTP delivery.
type OutboxDispatcher struct {
	repo  kafka.OutboxRepository
	topic string
	now   func() time.Time
}

func NewOutboxDispatcher(db *sql.DB, topic string) *OutboxDispatcher {
	return newOutboxDispatcher(kafka.NewOutboxRepository(db), topic)
}

func newOutboxDispatcher(repo kafka.OutboxRepository, topic string) *OutboxDispatcher {
	if topic == "" {
		topic = events.LeaveNotificationRequestedTopic
	}
	return &OutboxDispatcher{repo: repo, topic: topic, now: time.Now}
}

func (d *OutboxDispatcher) Dispatch(ctx context.Context, msg Message) error {
	event := events.LeaveNotificationRequestedEvent{
		EventType:  events.LeaveNotificationRequestedType,
		To:         msg.To,
		Subject:    msg.Subject,
		Body:       msg.Body,
		OccurredAt: d.now().UTC(),
	}
	if id, ok := LeaveIDFromContext(ctx); ok {
		event.LeaveRequestID = id
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	aggregateID := msg.To
	if event.LeaveRequestID > 0 {
		aggregateID = strconv.FormatInt(event.LeaveRequestID, 10)
	}

	outbox := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   aggregateID,
		EventType:     events.LeaveNotificationRequestedType,
		Topic:         d.topic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := kafka.ValidateOutboxEvent(outbox); err != nil {
		return err
	}
	return d.repo.Create(ctx, outbox)
}

type leaveIDKey struct{}

// WithLeaveID tags ctx with the leave request a notification is about.
func WithLeaveID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, leaveIDKey{}, id)
}

func LeaveIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(leaveIDKey{}).(int64)
	return id, ok
}
