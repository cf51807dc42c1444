package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hotelms/pkg/logger"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestMessageBuilder(t *testing.T) {
	msg, err := NewMessage().
		WithKey("booking-1").
		WithValue(map[string]string{"type": "booking.created"}).
		WithEventType("booking.created").
		WithSource("hotel-api").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "booking-1", msg.Key)
	assert.JSONEq(t, `{"type":"booking.created"}`, string(msg.Value))
	assert.NotEmpty(t, msg.GetEventID())
	assert.Equal(t, "booking.created", msg.GetEventType())
	assert.NotEmpty(t, msg.Headers[HeaderTimestamp])
}

func TestMessageBuilder_EncodingError(t *testing.T) {
	_, err := NewMessage().WithKey("k").WithValue(make(chan int)).Build()
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestMessage_RetryCount(t *testing.T) {
	msg := Message{Headers: map[string]string{}}
	assert.Equal(t, 0, msg.GetRetryCount())

	for i := 0; i < 12; i++ {
		msg.IncrementRetryCount()
	}
	assert.Equal(t, 12, msg.GetRetryCount())
	assert.Equal(t, "12", msg.Headers[HeaderRetryCount])
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{name: "nil", err: nil, want: ErrorTypeUnknown},
		{name: "tagged transient", err: NewTransientError("db down", errors.New("x")), want: ErrorTypeTransient},
		{name: "tagged permanent", err: NewPermanentError("bad payload", nil), want: ErrorTypePermanent},
		{name: "deadline", err: context.DeadlineExceeded, want: ErrorTypeTransient},
		{name: "network text", err: errors.New("dial tcp: Connection Refused"), want: ErrorTypeTransient},
		{name: "unknown", err: errors.New("something odd"), want: ErrorTypePermanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyError(tt.err))
		})
	}
}

func TestProducer_Publish(t *testing.T) {
	writer := &fakeWriter{}
	p := &Producer{writer: writer, topic: "hotel-events", log: logger.Discard()}

	var seen []string
	p.Use(func(ctx context.Context, msg Message, next func(context.Context, Message) error) error {
		seen = append(seen, msg.Topic)
		return next(ctx, msg)
	})

	msg, err := NewMessage().WithKey("b1").WithValue(map[string]int{"n": 1}).Build()
	require.NoError(t, err)
	require.NoError(t, p.Publish(context.Background(), msg))

	require.Len(t, writer.messages, 1)
	assert.Equal(t, "b1", string(writer.messages[0].Key))
	assert.Equal(t, []string{"hotel-events"}, seen)
}

func TestProducer_PublishValidation(t *testing.T) {
	p := &Producer{writer: &fakeWriter{}, topic: "hotel-events", log: logger.Discard()}

	assert.ErrorIs(t, p.Publish(context.Background(), Message{Value: []byte("{}")}), ErrEmptyKey)
	assert.ErrorIs(t, p.Publish(context.Background(), Message{Key: "k"}), ErrEmptyValue)

	require.NoError(t, p.Close())
	assert.ErrorIs(t, p.Publish(context.Background(), Message{Key: "k", Value: []byte("{}")}), ErrProducerClosed)
}

func TestProducer_FailedWriteGoesToDLQ(t *testing.T) {
	writeErr := errors.New("leader not available")
	dlq := &fakeWriter{}
	p := &Producer{writer: &fakeWriter{err: writeErr}, dlqWriter: dlq, topic: "hotel-events", log: logger.Discard()}

	msg, err := NewMessage().WithKey("b1").WithValue("x").Build()
	require.NoError(t, err)

	err = p.Publish(context.Background(), msg)
	assert.ErrorIs(t, err, writeErr)
	require.Len(t, dlq.messages, 1)
	assert.Equal(t, "hotel-events", header(dlq.messages[0], HeaderOriginalTopic))
	assert.Equal(t, writeErr.Error(), header(dlq.messages[0], HeaderDLQError))
	_, mutated := msg.Headers[HeaderDLQError]
	assert.False(t, mutated, "caller's headers must not be modified")
}

func TestConsumer_ProcessMessage(t *testing.T) {
	tests := []struct {
		name      string
		failures  []error
		wantCalls int
		wantDLQ   int
		wantErr   bool
	}{
		{name: "success", wantCalls: 1},
		{name: "transient then success", failures: []error{NewTransientError("db", nil)}, wantCalls: 2},
		{name: "transient exhausted", failures: []error{
			NewTransientError("db", nil), NewTransientError("db", nil), NewTransientError("db", nil),
		}, wantCalls: 3, wantDLQ: 1, wantErr: true},
		{name: "permanent", failures: []error{NewPermanentError("bad", nil)}, wantCalls: 1, wantDLQ: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			handler := func(ctx context.Context, msg Message) error {
				calls++
				if calls <= len(tt.failures) {
					return tt.failures[calls-1]
				}
				return nil
			}
			dlq := &fakeWriter{}
			c := &Consumer{
				dlqWriter:    dlq,
				topic:        "hotel-events",
				groupID:      "hotel-notifier",
				maxRetries:   2,
				retryBackoff: time.Millisecond,
				handler:      handler,
				log:          logger.Discard(),
			}

			err := c.processMessage(context.Background(), Message{Key: "b1", Headers: map[string]string{}})
			assert.Equal(t, tt.wantErr, err != nil)
			assert.Equal(t, tt.wantCalls, calls)
			assert.Len(t, dlq.messages, tt.wantDLQ)
			if tt.wantDLQ > 0 {
				assert.Equal(t, "hotel-notifier", header(dlq.messages[0], HeaderDLQGroup))
			}
		})
	}
}

type fakeReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []int64
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.queue) > 0 {
		msg := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error { return nil }

func TestConsumer_StartCommitsEveryMessage(t *testing.T) {
	reader := &fakeReader{queue: []kafka.Message{
		{Key: []byte("b1"), Value: []byte(`{}`), Offset: 1},
		{Key: []byte("b2"), Value: []byte(`{}`), Offset: 2},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var handled []string
	var mu sync.Mutex
	c := &Consumer{
		reader: reader,
		topic:  "hotel-events",
		handler: func(ctx context.Context, msg Message) error {
			mu.Lock()
			defer mu.Unlock()
			handled = append(handled, msg.Key)
			if len(handled) == 2 {
				cancel()
			}
			return nil
		},
		log: logger.Discard(),
	}

	err := c.Start(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"b1", "b2"}, handled)
	assert.Contains(t, reader.committed, int64(1))
	require.NoError(t, c.Close())
}
