package events

import (
	"fmt"
	"time"

	"hotelms/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TypeBookingCreated        = "booking.created"
	TypeBookingCheckedIn      = "booking.checked_in"
	TypeBookingCheckedOut     = "booking.checked_out"
	TypeBookingPaymentUpdated = "booking.payment_updated"
	TypeBookingPaid           = "booking.paid"

	SchemaVersion = "1"

	// HeaderRoomID lets consumers route on the room without decoding the value.
	HeaderRoomID = "room-id"
)

// Event is the payload published for every booking lifecycle transition.
type Event struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	BookingID    string    `json:"bookingId"`
	RoomID       string    `json:"roomId,omitempty"`
	CustomerName string    `json:"customerName,omitempty"`
	Message      string    `json:"message"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// NewBookingEvent describes a transition of booking.
func NewBookingEvent(eventType string, bookingID, roomID primitive.ObjectID, core *model.BookingCore) Event {
	ev := Event{
		ID:           uuid.NewString(),
		Type:         eventType,
		BookingID:    bookingID.Hex(),
		CustomerName: core.CustomerName,
		OccurredAt:   time.Now().UTC(),
	}
	if !roomID.IsZero() {
		ev.RoomID = roomID.Hex()
	}
	ev.Message = describe(eventType, core)
	return ev
}

func describe(eventType string, core *model.BookingCore) string {
	name := core.CustomerName
	switch eventType {
	case TypeBookingCreated:
		return fmt.Sprintf("New booking for %s from %s to %s", name, core.CheckIn.Format(time.DateOnly), core.CheckOut.Format(time.DateOnly))
	case TypeBookingCheckedIn:
		return fmt.Sprintf("%s checked in", name)
	case TypeBookingCheckedOut:
		return fmt.Sprintf("%s checked out", name)
	case TypeBookingPaymentUpdated:
		return fmt.Sprintf("Payment for %s marked %s", name, core.PaymentStatus)
	case TypeBookingPaid:
		method := ""
		if core.PaymentMethod != nil {
			method = " via " + *core.PaymentMethod
		}
		return fmt.Sprintf("Payment received from %s%s", name, method)
	default:
		return fmt.Sprintf("Booking event %s for %s", eventType, name)
	}
}

// Notification converts ev into the stored notification document.
func (ev Event) Notification() (*model.Notification, error) {
	n := &model.Notification{
		Type:    ev.Type,
		Message: ev.Message,
		EventID: ev.ID,
		Date:    ev.OccurredAt,
	}
	if n.Date.IsZero() {
		n.Date = time.Now().UTC()
	}

	if ev.BookingID != "" {
		id, err := primitive.ObjectIDFromHex(ev.BookingID)
		if err != nil {
			return nil, fmt.Errorf("invalid booking id %q: %w", ev.BookingID, err)
		}
		n.BookingID = &id
	}
	if ev.RoomID != "" {
		id, err := primitive.ObjectIDFromHex(ev.RoomID)
		if err != nil {
			return nil, fmt.Errorf("invalid room id %q: %w", ev.RoomID, err)
		}
		n.RoomID = &id
	}
	return n, nil
}
