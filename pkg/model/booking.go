package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is the payment sub-record of a booking. It is stored flat on the
// booking document.
type Payment struct {
	PaymentStatus string     `json:"paymentStatus" bson:"paymentStatus"`
	PaymentMethod *string    `json:"paymentMethod" bson:"paymentMethod"`
	PaidAmount    float64    `json:"paidAmount" bson:"paidAmount"`
	PaymentDate   *time.Time `json:"paymentDate" bson:"paymentDate"`
}

// BookingCore holds the fields shared by every booking shape. The shapes
// differ only in how the room reference is resolved.
type BookingCore struct {
	CustomerName  string    `json:"customerName" bson:"customerName"`
	CustomerPhone string    `json:"customerPhone" bson:"customerPhone"`
	CheckIn       time.Time `json:"checkIn" bson:"checkIn"`
	CheckOut      time.Time `json:"checkOut" bson:"checkOut"`
	Guests        int       `json:"guests" bson:"guests"`
	Status        string    `json:"status" bson:"status"`
	Payment       `bson:",inline"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Booking struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Room        primitive.ObjectID `json:"room" bson:"room"`
	BookingCore `bson:",inline"`
}

// BookingView is a booking with its room resolved. Room is nil when the
// room was deleted.
type BookingView struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Room        *Room              `json:"room" bson:"room,omitempty"`
	BookingCore `bson:",inline"`
}

// InvoiceBooking resolves both the room and the room's type.
type InvoiceBooking struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Room        *RoomView          `json:"room" bson:"room,omitempty"`
	BookingCore `bson:",inline"`
}

type BookingRequest struct {
	CustomerName  string    `json:"customerName" validate:"required,max=200"`
	CustomerPhone string    `json:"customerPhone" validate:"required,max=50"`
	Room          string    `json:"room" validate:"required,mongodb"`
	CheckIn       *FlexTime `json:"checkIn" validate:"required"`
	CheckOut      *FlexTime `json:"checkOut" validate:"required"`
	Guests        *FlexInt  `json:"guests" validate:"required,min=1"`
}

type PaymentUpdateRequest struct {
	PaymentStatus string     `json:"paymentStatus" validate:"required,oneof=pending paid"`
	PaymentMethod *string    `json:"paymentMethod" validate:"omitempty,payment_method"`
	PaidAmount    *FlexFloat `json:"paidAmount" validate:"omitempty,gte=0"`
	PaymentDate   *FlexTime  `json:"paymentDate"`
}

type PayRequest struct {
	Method string     `json:"method" validate:"required,payment_method"`
	Amount *FlexFloat `json:"amount" validate:"omitempty,gte=0"`
}

type BookingResponse struct {
	Message string       `json:"message"`
	Booking *BookingView `json:"booking"`
}

type Invoice struct {
	Booking   *InvoiceBooking `json:"booking"`
	Price     float64         `json:"price"`
	Nights    int             `json:"nights"`
	Amount    float64         `json:"amount"`
	Tax       float64         `json:"tax"`
	Total     float64         `json:"total"`
	UPIString string          `json:"upiString"`
	QR        string          `json:"qr"`
}

type Dashboard struct {
	TotalRooms        int64          `json:"totalRooms"`
	AvailableRooms    int64          `json:"availableRooms"`
	OccupiedRooms     int64          `json:"occupiedRooms"`
	CleaningRooms     int64          `json:"cleaningRooms"`
	MaintenanceRooms  int64          `json:"maintenanceRooms"`
	TodaysBookings    int64          `json:"todaysBookings"`
	UpcomingCheckIns  []*BookingView `json:"upcomingCheckIns"`
	UpcomingCheckOuts []*BookingView `json:"upcomingCheckOuts"`
}
