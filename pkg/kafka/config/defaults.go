package kafka_config

import "time"

const (
	// Kafka is off unless brokers are configured
	DefaultKafkaBrokers = ""

	DefaultEventsTopic    = "hotel-events"
	DefaultEventsDLQTopic = "hotel-events-dlq"
	DefaultConsumerGroup  = "hotel-notifier"

	// Producer defaults
	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerRequireAcks  = -1 // Require all replicas
	DefaultProducerCompression  = "snappy"

	// Consumer defaults
	DefaultConsumerStartOffset       = -2 // Oldest, so a fresh notifier replays history
	DefaultConsumerMinBytes          = 1
	DefaultConsumerMaxBytes          = 10 * 1024 * 1024 // 10MB
	DefaultConsumerMaxWait           = 500 * time.Millisecond
	DefaultConsumerCommitInterval    = 1 * time.Second
	DefaultConsumerHeartbeatInterval = 3 * time.Second
	DefaultConsumerSessionTimeout    = 10 * time.Second
	DefaultConsumerRebalanceTimeout  = 60 * time.Second
	DefaultConsumerMaxRetries        = 3
	DefaultConsumerRetryBackoff      = 200 * time.Millisecond
)
