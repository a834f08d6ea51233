package consumer

import (
	"context"
	"encoding/json"

	"go-leave/internal/events"
	"go-leave/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeLeaveNotifications delivers every notification event through the
// dispatcher. Messages are committed whether delivery succeeded or not.
func ConsumeLeaveNotifications(
	ctx context.Context,
	reader MessageReader,
	dispatcher notification.Dispatcher,
	logger *zap.Logger,
	observers ...notification.Observer,
) {
	log := logger.Named("kafka.consumer.leave_notification")
	log.Info("leave notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave notification consumer stopped")
				return
			}
			log.Error("fetch leave notification message failed", zap.Error(err))
			continue
		}

		handleMessage(ctx, msg, dispatcher, log, observers)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave notification message failed", zap.Error(err))
		}
	}
}

func handleMessage(
	ctx context.Context,
	msg kafkago.Message,
	dispatcher notification.Dispatcher,
	log *zap.Logger,
	observers []notification.Observer,
) {
	var event events.LeaveNotificationRequestedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode leave notification event failed",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return
	}

	notification.Send(ctx, log, dispatcher, notification.Message{
		To:      event.To,
		Subject: event.Subject,
		Body:    event.Body,
	}, observers...)

	log.Info("leave notification handled",
		zap.Int64("leave_request_id", event.LeaveRequestID),
		zap.String("subject", event.Subject),
	)
}
