package model

const (
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

const (
	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusCleaning    = "cleaning"
	RoomStatusMaintenance = "maintenance"
)

const (
	BookingStatusBooked     = "booked"
	BookingStatusCheckedIn  = "checked-in"
	BookingStatusCheckedOut = "checked-out"
	BookingStatusCancelled  = "cancelled"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

const (
	PaymentMethodCash       = "cash"
	PaymentMethodUPI        = "upi"
	PaymentMethodCard       = "card"
	PaymentMethodNetBanking = "netbanking"
)

// RoomStatuses lists every room status in display order.
var RoomStatuses = []string{
	RoomStatusAvailable,
	RoomStatusOccupied,
	RoomStatusCleaning,
	RoomStatusMaintenance,
}
