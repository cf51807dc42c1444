package events

import (
	"context"
	"errors"
	"fmt"

	mongodb "hotelms/pkg/db/mongo"
	"hotelms/pkg/kafka"
	"hotelms/pkg/logger"
	"hotelms/pkg/middleware"
	"hotelms/pkg/model"
)

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Recorder stores notifications. The notifications repository satisfies it.
type Recorder interface {
	Insert(ctx context.Context, n *model.Notification) error
}

// KafkaPublisher sends events to the events topic keyed by booking id, so
// every event of one booking lands on the same partition in order.
type KafkaPublisher struct {
	producer *kafka.Producer
	source   string
}

func NewKafkaPublisher(producer *kafka.Producer, source string) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		source:   source,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev Event) error {
	msg, err := eventMessage(ctx, ev, p.source)
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, msg)
}

func eventMessage(ctx context.Context, ev Event, source string) (kafka.Message, error) {
	builder := kafka.NewMessage().
		WithKey(ev.BookingID).
		WithValue(ev).
		WithEventID(ev.ID).
		WithEventType(ev.Type).
		WithCorrelationID(middleware.RequestIDFromContext(ctx)).
		WithSchemaVersion(SchemaVersion).
		WithSource(source).
		WithTimestamp(ev.OccurredAt)
	if ev.RoomID != "" {
		builder = builder.WithHeader(HeaderRoomID, ev.RoomID)
	}

	msg, err := builder.Build()
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to build event message: %w", err)
	}
	return msg, nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// DirectPublisher stores the notification in-process. It is used when no
// Kafka brokers are configured.
type DirectPublisher struct {
	recorder Recorder
}

func NewDirectPublisher(recorder Recorder) *DirectPublisher {
	return &DirectPublisher{recorder: recorder}
}

func (p *DirectPublisher) Publish(ctx context.Context, ev Event) error {
	n, err := ev.Notification()
	if err != nil {
		return err
	}
	if err := p.recorder.Insert(ctx, n); err != nil && !mongodb.IsDuplicateKey(err) {
		return err
	}
	return nil
}

// Handler turns events consumed from Kafka into notifications. Redelivered
// events hit the unique eventId index and are acknowledged as done.
func Handler(recorder Recorder, log *logger.Logger) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		var ev Event
		if err := msg.DecodeValue(&ev); err != nil {
			return err
		}
		if ev.ID == "" {
			ev.ID = msg.GetEventID()
		}
		if ev.RoomID == "" {
			if roomID, ok := msg.GetHeader(HeaderRoomID); ok {
				ev.RoomID = roomID
			}
		}

		n, err := ev.Notification()
		if err != nil {
			return kafka.NewPermanentError("invalid event payload", err)
		}

		if err := recorder.Insert(ctx, n); err != nil {
			if mongodb.IsDuplicateKey(err) {
				log.Debug("Duplicate event ignored", "event_id", ev.ID, "event_type", ev.Type)
				return nil
			}
			if errors.Is(err, context.Canceled) {
				return err
			}
			return kafka.NewTransientError("failed to store notification", err)
		}

		log.Info("Notification stored", "event_id", ev.ID, "event_type", ev.Type, "booking_id", ev.BookingID)
		return nil
	}
}
