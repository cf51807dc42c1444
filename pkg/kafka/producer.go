package kafka

import (
	"context"
	"fmt"
	"sync"
	"time"

	kafka_config "hotelms/pkg/kafka/config"
	"hotelms/pkg/logger"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"
)

// messageWriter is the subset of *kafka.Writer the producer and consumer use.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer     messageWriter
	dlqWriter  messageWriter
	topic      string
	dlqTopic   string
	log        *logger.Logger
	middleware []ProducerMiddleware
	closed     bool
	mu         sync.RWMutex
}

// ProducerMiddleware allows intercepting publish operations
type ProducerMiddleware func(ctx context.Context, msg Message, next func(ctx context.Context, msg Message) error) error

func NewProducer(cfg *kafka_config.Config, topic string, dlqTopic string, log *logger.Logger) (*Producer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}

	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	compression := compressionCodec(cfg.ProducerCompression)

	var requiredAcks kafka.RequiredAcks
	switch cfg.ProducerRequireAcks {
	case 0:
		requiredAcks = kafka.RequireNone
	case 1:
		requiredAcks = kafka.RequireOne
	default:
		requiredAcks = kafka.RequireAll
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{}, // Same booking, same partition
		RequiredAcks:           requiredAcks,
		Compression:            compression,
		MaxAttempts:            cfg.ProducerMaxAttempts,
		BatchTimeout:           cfg.ProducerBatchTimeout,
		AllowAutoTopicCreation: true,
		ErrorLogger:            errorLogger(log),
	}

	producer := &Producer{
		writer:     writer,
		topic:      topic,
		dlqTopic:   dlqTopic,
		log:        log,
		middleware: make([]ProducerMiddleware, 0),
	}

	if dlqTopic != "" {
		producer.dlqWriter = newDLQWriter(cfg.Brokers, dlqTopic, compression, log)
	}

	return producer, nil
}

func newDLQWriter(brokers []string, topic string, compression kafka.Compression, log *logger.Logger) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		Compression:            compression,
		MaxAttempts:            3,
		AllowAutoTopicCreation: true,
		ErrorLogger:            errorLogger(log),
	}
}

func compressionCodec(name string) kafka.Compression {
	switch name {
	case "none":
		return 0
	case "gzip":
		return compress.Gzip
	case "lz4":
		return compress.Lz4
	case "zstd":
		return compress.Zstd
	default:
		return compress.Snappy
	}
}

func errorLogger(log *logger.Logger) kafka.Logger {
	return kafka.LoggerFunc(func(msg string, args ...any) {
		log.Error(fmt.Sprintf(msg, args...), "component", "kafka-go")
	})
}

func (p *Producer) Use(middleware ProducerMiddleware) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.middleware = append(p.middleware, middleware)
}

func (p *Producer) Publish(ctx context.Context, msg Message) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrProducerClosed
	}
	chain := p.middleware
	p.mu.RUnlock()

	if msg.Key == "" {
		return ErrEmptyKey
	}
	if len(msg.Value) == 0 {
		return ErrEmptyValue
	}
	msg.Topic = p.topic

	handler := p.publishInternal
	for i := len(chain) - 1; i >= 0; i-- {
		middleware := chain[i]
		next := handler
		handler = func(ctx context.Context, m Message) error {
			return middleware(ctx, m, next)
		}
	}

	return handler(ctx, msg)
}

func (p *Producer) publishInternal(ctx context.Context, msg Message) error {
	err := p.writer.WriteMessages(ctx, toKafkaMessage(msg, msg.Timestamp))
	if err == nil {
		return nil
	}

	if p.dlqWriter != nil {
		if dlqErr := p.sendToDLQ(ctx, msg, err); dlqErr != nil {
			return fmt.Errorf("failed to send to DLQ: %v (original error: %w)", dlqErr, err)
		}
	}
	return err
}

func (p *Producer) sendToDLQ(ctx context.Context, msg Message, originalErr error) error {
	headers := make(map[string]string, len(msg.Headers)+3)
	for k, v := range msg.Headers {
		headers[k] = v
	}
	headers[HeaderOriginalTopic] = p.topic
	headers[HeaderDLQError] = originalErr.Error()
	headers[HeaderDLQTimestamp] = time.Now().UTC().Format(time.RFC3339)
	msg.Headers = headers

	return p.dlqWriter.WriteMessages(ctx, toKafkaMessage(msg, time.Now()))
}

func toKafkaMessage(msg Message, ts time.Time) kafka.Message {
	kafkaMsg := kafka.Message{
		Key:   []byte(msg.Key),
		Value: msg.Value,
		Time:  ts,
	}
	for k, v := range msg.Headers {
		kafkaMsg.Headers = append(kafkaMsg.Headers, kafka.Header{
			Key:   k,
			Value: []byte(v),
		})
	}
	return kafkaMsg
}

func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}

	p.closed = true

	var err error
	if p.writer != nil {
		err = p.writer.Close()
	}

	if p.dlqWriter != nil {
		dlqErr := p.dlqWriter.Close()
		if err == nil {
			err = dlqErr
		}
	}

	return err
}
