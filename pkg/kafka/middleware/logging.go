package kafka_middleware

import (
	"context"
	"time"

	"hotelms/pkg/kafka"
	"hotelms/pkg/logger"
)

func LoggingProducerMiddleware(log *logger.Logger) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()
		err := next(ctx, msg)

		if err != nil {
			log.Error("Failed to publish Kafka message",
				"topic", msg.Topic,
				"key", msg.Key,
				"event_id", msg.GetEventID(),
				"event_type", msg.GetEventType(),
				"correlation_id", msg.GetCorrelationID(),
				"duration_ms", time.Since(start).Milliseconds(),
				"error", err,
			)
			return err
		}

		log.Debug("Published Kafka message",
			"topic", msg.Topic,
			"key", msg.Key,
			"event_id", msg.GetEventID(),
			"event_type", msg.GetEventType(),
			"correlation_id", msg.GetCorrelationID(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}
}

func LoggingConsumerMiddleware(log *logger.Logger) kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()
		err := next(ctx, msg)

		if err != nil {
			log.Warn("Failed to process Kafka message",
				"topic", msg.Topic,
				"partition", msg.Partition,
				"offset", msg.Offset,
				"event_id", msg.GetEventID(),
				"event_type", msg.GetEventType(),
				"retry_count", msg.GetRetryCount(),
				"duration_ms", time.Since(start).Milliseconds(),
				"error", err,
			)
			return err
		}

		log.Info("Processed Kafka message",
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
			"event_id", msg.GetEventID(),
			"event_type", msg.GetEventType(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}
}
