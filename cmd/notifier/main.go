package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"hotelms/internal/events"
	notificationrepo "hotelms/internal/notifications/repository"
	"hotelms/pkg/config"
	"hotelms/pkg/kafka"
	kafka_config "hotelms/pkg/kafka/config"
	kafka_middleware "hotelms/pkg/kafka/middleware"
)

const ServiceName = "notifier"

func main() {
	cfg := config.Load(ServiceName)

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	if !kafkaCfg.Enabled() {
		cfg.Log.Fatal("KAFKA_BROKERS must be set for the notifier")
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	consumerLog := cfg.Log.Component("kafka-consumer")
	repo := notificationrepo.NewMongoNotificationRepository(cfg)
	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		kafkaCfg.EventsTopic,
		kafkaCfg.ConsumerGroup,
		kafkaCfg.EventsDLQTopic,
		events.Handler(repo, consumerLog),
		consumerLog,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	consumer.Use(kafka_middleware.LoggingConsumerMiddleware(consumerLog))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Starting notifier", "topic", kafkaCfg.EventsTopic, "group_id", kafkaCfg.ConsumerGroup)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Kafka consumer stopped", "error", err)
	}

	cfg.Log.Info("Shutdown signal received, closing consumer")
	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close Kafka consumer", "error", err)
	}
	cfg.Log.Info("Notifier stopped")
}
