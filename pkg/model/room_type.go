package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RoomType struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Price     float64            `json:"price" bson:"price"`
	MaxGuests int                `json:"maxGuests" bson:"maxGuests"`
	Features  []string           `json:"features" bson:"features"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type RoomTypeRequest struct {
	Name      string     `json:"name" validate:"required,max=100"`
	Price     *FlexFloat `json:"price" validate:"required,gte=0"`
	MaxGuests *FlexInt   `json:"maxGuests" validate:"required,min=1,max=50"`
	Features  []string   `json:"features" validate:"omitempty,max=50,dive,max=100"`
}

type RoomTypeCreatedResponse struct {
	Message string    `json:"message"`
	Type    *RoomType `json:"type"`
}
