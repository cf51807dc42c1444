package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Room struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	RoomNumber int                `json:"roomNumber" bson:"roomNumber"`
	Type       primitive.ObjectID `json:"type" bson:"type"`
	Status     string             `json:"status" bson:"status"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// RoomView is a Room with its type resolved. Type is nil when the room type
// was deleted after the room was created.
type RoomView struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id"`
	RoomNumber int                `json:"roomNumber" bson:"roomNumber"`
	Type       *RoomType          `json:"type" bson:"type,omitempty"`
	Status     string             `json:"status" bson:"status"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type RoomRequest struct {
	RoomNumber *FlexInt `json:"roomNumber" validate:"required,min=1"`
	Type       string   `json:"type" validate:"required,mongodb"`
	Status     string   `json:"status" validate:"omitempty,oneof=available occupied cleaning maintenance"`
}

type RoomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available occupied cleaning maintenance"`
}

type RoomCreatedResponse struct {
	Message string `json:"message"`
	Room    *Room  `json:"room"`
}

type RoomStatusResponse struct {
	Message string `json:"message"`
	Updated *Room  `json:"updated"`
}
