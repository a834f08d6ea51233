// Package notification delivers plain text mails about leave requests.
package notification

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

//go:generate mockgen -source=notification.go -destination=mock/notification_mock.go -package=mock

type Dispatcher interface {
	Dispatch(ctx context.Context, msg Message) error
}

// Observer receives the outcome of every Send call. metrics.Registry
// satisfies it.
type Observer interface {
	ObserveNotification(outcome string)
}

const (
	OutcomeSent    = "sent"
	OutcomeFailed  = "failed"
	OutcomeSkipped = "skipped"
)

type Noop struct{}

func (Noop) Dispatch(context.Context, Message) error { return nil }

// Send delivers msg and never reports failure to the caller.
func Send(ctx context.Context, logger *zap.Logger, d Dispatcher, msg Message, observers ...Observer) {
	outcome := OutcomeSent
	defer func() {
		for _, o := range observers {
			if o != nil {
				o.ObserveNotification(outcome)
			}
		}
	}()

	if logger == nil {
		logger = zap.L()
	}

	if strings.TrimSpace(msg.To) == "" {
		outcome = OutcomeSkipped
		logger.Debug("notification skipped, empty recipient", zap.String("subject", msg.Subject))
		return
	}
	if d == nil {
		outcome = OutcomeSkipped
		return
	}

	if err := d.Dispatch(ctx, msg); err != nil {
		outcome = OutcomeFailed
		logger.Warn("notification dispatch failed",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Error(err),
		)
		return
	}

	logger.Debug("notification dispatched", zap.String("to", msg.To), zap.String("subject", msg.Subject))
}

func SubmittedMessage(approverEmail, fullName string) Message {
	return Message{
		To:      approverEmail,
		Subject: "Yeni İzin Talebi",
		Body:    fullName + " tarafından yeni bir izin talebi oluşturuldu.",
	}
}

func ApprovedMessage(email, fullName string) Message {
	return Message{
		To:      email,
		Subject: "İzniniz Onaylandı",
		Body:    "Sayın " + fullName + ", izniniz onaylanmıştır.",
	}
}

func RejectedMessage(email, fullName string) Message {
	return Message{
		To:      email,
		Subject: "İzniniz Reddedildi",
		Body:    "Sayın " + fullName + ", izniniz reddedilmiştir.",
	}
}
