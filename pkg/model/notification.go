package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Notification struct {
	ID        primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	Type      string              `json:"type" bson:"type"`
	Message   string              `json:"message" bson:"message"`
	BookingID *primitive.ObjectID `json:"bookingId,omitempty" bson:"bookingId,omitempty"`
	RoomID    *primitive.ObjectID `json:"roomId,omitempty" bson:"roomId,omitempty"`
	EventID   string              `json:"-" bson:"eventId,omitempty"`
	Date      time.Time           `json:"date" bson:"date"`
}
