package app

import (
	"context"
	"errors"

	"go-leave/internal/config"
	"go-leave/internal/messaging/kafka/consumer"
	"go-leave/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer mengirim email untuk setiap event notifikasi sampai ctx selesai.
func RunConsumer(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	if !cfg.Kafka.Enabled() {
		return errors.New("kafka.broker is required")
	}
	if !cfg.Mail.Enabled() {
		return errors.New("mail.smtp_host and mail.username are required")
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          cfg.Kafka.NotificationTopic,
		GroupID:        cfg.Kafka.ConsumerGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	consumer.ConsumeLeaveNotifications(ctx, reader, notification.NewSMTPDispatcher(cfg.Mail), logger)

	log.Info("consumer shutting down")
	return nil
}
