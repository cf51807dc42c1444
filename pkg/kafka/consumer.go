package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	kafka_config "hotelms/pkg/kafka/config"
	"hotelms/pkg/logger"

	"github.com/segmentio/kafka-go"
)

// messageReader is the subset of *kafka.Reader the consumer uses.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Consumer struct {
	reader       messageReader
	dlqWriter    messageWriter
	topic        string
	groupID      string
	maxRetries   int
	retryBackoff time.Duration
	handler      MessageHandler
	middleware   []ConsumerMiddleware
	log          *logger.Logger
	closed       bool
	mu           sync.RWMutex
	wg           sync.WaitGroup
}

type ConsumerMiddleware func(ctx context.Context, msg Message, next MessageHandler) error

func NewConsumer(cfg *kafka_config.Config, topic string, groupID string, dlqTopic string, handler MessageHandler, log *logger.Logger) (*Consumer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}

	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	if groupID == "" {
		return nil, fmt.Errorf("group ID cannot be empty")
	}

	if handler == nil {
		return nil, fmt.Errorf("message handler cannot be nil")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:           cfg.Brokers,
		Topic:             topic,
		GroupID:           groupID,
		MinBytes:          cfg.ConsumerMinBytes,
		MaxBytes:          cfg.ConsumerMaxBytes,
		MaxWait:           cfg.ConsumerMaxWait,
		CommitInterval:    cfg.ConsumerCommitInterval,
		HeartbeatInterval: cfg.ConsumerHeartbeatInterval,
		SessionTimeout:    cfg.ConsumerSessionTimeout,
		RebalanceTimeout:  cfg.ConsumerRebalanceTimeout,
		StartOffset:       cfg.ConsumerStartOffset,
		ErrorLogger:       errorLogger(log),
	})

	consumer := &Consumer{
		reader:       reader,
		topic:        topic,
		groupID:      groupID,
		maxRetries:   cfg.ConsumerMaxRetries,
		retryBackoff: cfg.ConsumerRetryBackoff,
		handler:      handler,
		middleware:   make([]ConsumerMiddleware, 0),
		log:          log,
	}

	if dlqTopic != "" {
		consumer.dlqWriter = newDLQWriter(cfg.Brokers, dlqTopic, compressionCodec(cfg.ProducerCompression), log)
	}

	return consumer, nil
}

func (c *Consumer) Use(middleware ConsumerMiddleware) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.middleware = append(c.middleware, middleware)
}

// Start consumes until ctx is cancelled. Offsets are committed once a message
// has been handled or parked on the DLQ.
func (c *Consumer) Start(ctx context.Context) error {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return ErrConsumerClosed
	}
	c.wg.Add(1)
	c.mu.RUnlock()
	defer c.wg.Done()

	c.log.Info("Kafka consumer started", "topic", c.topic, "group_id", c.groupID)

	for {
		kafkaMsg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				return ErrConsumerClosed
			}
			c.log.Error("Kafka consumer failed to fetch message", "topic", c.topic, "error", err)
			if !sleepCtx(ctx, time.Second) {
				return ctx.Err()
			}
			continue
		}

		msg := convertMessage(kafkaMsg)

		if err := c.processMessage(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error("Kafka consumer failed to process message",
				"topic", msg.Topic,
				"partition", msg.Partition,
				"offset", msg.Offset,
				"event_id", msg.GetEventID(),
				"error", err,
			)
		}

		if err := c.reader.CommitMessages(ctx, kafkaMsg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error("Kafka consumer failed to commit offset", "topic", c.topic, "offset", kafkaMsg.Offset, "error", err)
		}
	}
}

func (c *Consumer) buildChain() MessageHandler {
	c.mu.RLock()
	defer c.mu.RUnlock()

	handler := c.handler
	for i := len(c.middleware) - 1; i >= 0; i-- {
		middleware := c.middleware[i]
		next := handler
		handler = func(ctx context.Context, m Message) error {
			return middleware(ctx, m, next)
		}
	}
	return handler
}

// processMessage retries transient failures in place with a linear backoff
// and parks everything else on the DLQ.
func (c *Consumer) processMessage(ctx context.Context, msg Message) error {
	handler := c.buildChain()

	for {
		err := handler(ctx, msg)
		if err == nil {
			return nil
		}

		retries := msg.GetRetryCount()
		if ShouldRetry(err, retries, c.maxRetries) {
			msg.IncrementRetryCount()
			c.log.Warn("Retrying Kafka message",
				"event_id", msg.GetEventID(),
				"attempt", retries+1,
				"max_retries", c.maxRetries,
				"error", err,
			)
			if !sleepCtx(ctx, c.retryBackoff*time.Duration(retries+1)) {
				return ctx.Err()
			}
			continue
		}

		if c.dlqWriter != nil {
			if dlqErr := c.sendToDLQ(ctx, msg, err); dlqErr != nil {
				return fmt.Errorf("failed to send message to DLQ: %v (original error: %w)", dlqErr, err)
			}
			c.log.Warn("Kafka message sent to DLQ", "event_id", msg.GetEventID(), "retries", retries, "error", err)
		}
		return err
	}
}

func (c *Consumer) sendToDLQ(ctx context.Context, msg Message, originalErr error) error {
	msg.Headers[HeaderOriginalTopic] = c.topic
	msg.Headers[HeaderDLQError] = originalErr.Error()
	msg.Headers[HeaderDLQTimestamp] = time.Now().UTC().Format(time.RFC3339)
	msg.Headers[HeaderDLQGroup] = c.groupID

	return c.dlqWriter.WriteMessages(ctx, toKafkaMessage(msg, time.Now()))
}

func convertMessage(kafkaMsg kafka.Message) Message {
	msg := Message{
		Key:       string(kafkaMsg.Key),
		Value:     kafkaMsg.Value,
		Headers:   make(map[string]string, len(kafkaMsg.Headers)),
		Topic:     kafkaMsg.Topic,
		Partition: kafkaMsg.Partition,
		Offset:    kafkaMsg.Offset,
		Timestamp: kafkaMsg.Time,
	}

	for _, header := range kafkaMsg.Headers {
		msg.Headers[header.Key] = string(header.Value)
	}

	return msg
}

// Close waits for Start to return, so cancel its context first.
func (c *Consumer) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.wg.Wait()

	var err error
	if c.reader != nil {
		err = c.reader.Close()
	}

	if c.dlqWriter != nil {
		dlqErr := c.dlqWriter.Close()
		if err == nil {
			err = dlqErr
		}
	}

	return err
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
