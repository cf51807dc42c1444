package service

import (
	"context"
	"errors"

	bookingserrors "hotelms/internal/bookings/errors"
	"hotelms/internal/bookings/repository"
	"hotelms/internal/bookings/validator"
	"hotelms/internal/events"
	roomserrors "hotelms/internal/rooms/errors"
	roomsrepo "hotelms/internal/rooms/repository"
	"hotelms/pkg/config"
	apperrors "hotelms/pkg/errors"
	"hotelms/pkg/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	MsgCreated    = "Booking created"
	MsgCheckedIn  = "Guest checked-in!"
	MsgCheckedOut = "Guest checked-out!"

	MsgRoomNotAvailable = "Room is not available"
	MsgInvalidID        = "Invalid booking ID"
)

type BookingService interface {
	List(ctx context.Context) ([]*model.BookingView, error)
	Create(ctx context.Context, req *model.BookingRequest) (*model.BookingView, error)
	CheckIn(ctx context.Context, id string) (*model.BookingView, error)
	CheckOut(ctx context.Context, id string) (*model.BookingView, error)
}

// transition describes one booking status change and the room status that
// goes with it. Transitions apply whatever the current booking status is.
type transition struct {
	to         string
	roomStatus string
	eventType  string
}

var (
	checkIn = transition{
		to:         model.BookingStatusCheckedIn,
		roomStatus: model.RoomStatusOccupied,
		eventType:  events.TypeBookingCheckedIn,
	}
	checkOut = transition{
		to:         model.BookingStatusCheckedOut,
		roomStatus: model.RoomStatusAvailable,
		eventType:  events.TypeBookingCheckedOut,
	}
)

type bookingService struct {
	repo      repository.BookingRepository
	rooms     roomsrepo.RoomRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	rooms roomsrepo.RoomRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		rooms:     rooms,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) List(ctx context.Context) ([]*model.BookingView, error) {
	bookings, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

// Create claims the room and stores the booking in one transaction.
func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.BookingView, error) {
	if err := s.validator.ValidateCreate(req); err != nil {
		return nil, err
	}

	roomID, err := primitive.ObjectIDFromHex(req.Room)
	if err != nil {
		return nil, apperrors.InvalidInput("room must be a valid id")
	}

	booking := &model.Booking{
		Room: roomID,
		BookingCore: model.BookingCore{
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			CheckIn:       req.CheckIn.UTC(),
			CheckOut:      req.CheckOut.UTC(),
			Guests:        req.Guests.Int,
			Status:        model.BookingStatusBooked,
			Payment: model.Payment{
				PaymentStatus: model.PaymentStatusPending,
			},
		},
	}

	var room, claimed *model.Room
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		booking.ID = primitive.NilObjectID
		claimed = nil

		var err error
		claimed, err = s.rooms.ClaimAvailable(sessCtx, roomID)
		if err != nil {
			switch {
			case errors.Is(err, roomserrors.ErrNotFound):
				return apperrors.NotFoundWithID("Room", req.Room)
			case errors.Is(err, roomserrors.ErrNotAvailable):
				return apperrors.InvalidInput(MsgRoomNotAvailable)
			}
			return err
		}

		if err := s.repo.Create(sessCtx, booking); err != nil {
			return err
		}
		room = claimed
		return nil
	})
	if err != nil {
		if claimed != nil && !s.cfg.MongoTransactions {
			s.releaseRoom(roomID)
		}
		return nil, s.transactionError("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID.Hex(),
		"room_id", roomID.Hex(),
		"check_in", booking.CheckIn,
		"check_out", booking.CheckOut,
	)
	s.publish(ctx, events.TypeBookingCreated, booking)

	return &model.BookingView{ID: booking.ID, Room: room, BookingCore: booking.BookingCore}, nil
}

func (s *bookingService) CheckIn(ctx context.Context, id string) (*model.BookingView, error) {
	return s.transition(ctx, id, checkIn)
}

// CheckOut also accepts bookings that were never checked in or were already
// checked out.
func (s *bookingService) CheckOut(ctx context.Context, id string) (*model.BookingView, error) {
	return s.transition(ctx, id, checkOut)
}

func (s *bookingService) transition(ctx context.Context, id string, t transition) (*model.BookingView, error) {
	var booking *model.Booking
	var room *model.Room

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		updated, err := s.repo.SetStatus(sessCtx, id, t.to)
		if err != nil {
			switch {
			case errors.Is(err, bookingserrors.ErrInvalidID):
				return apperrors.InvalidInput(MsgInvalidID)
			case errors.Is(err, bookingserrors.ErrNotFound):
				return apperrors.NotFoundWithID("Booking", id)
			}
			return err
		}

		// The room may have been deleted since the booking was made.
		roomDoc, err := s.rooms.SetStatus(sessCtx, updated.Room, t.roomStatus)
		if err != nil && !errors.Is(err, roomserrors.ErrNotFound) {
			return err
		}

		booking, room = updated, roomDoc
		return nil
	})
	if err != nil {
		return nil, s.transactionError("Failed to update booking status", err)
	}

	s.cfg.Log.Info("Booking status updated",
		"id", id,
		"status", booking.Status,
		"room_id", booking.Room.Hex(),
		"room_found", room != nil,
	)
	s.publish(ctx, t.eventType, booking)

	return &model.BookingView{ID: booking.ID, Room: room, BookingCore: booking.BookingCore}, nil
}

// releaseRoom undoes a claim whose booking insert failed. Only needed when
// writes commit one by one.
func (s *bookingService) releaseRoom(roomID primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.WriteTimeout)
	defer cancel()
	if _, err := s.rooms.SetStatus(ctx, roomID, model.RoomStatusAvailable); err != nil {
		s.cfg.Log.Error("Failed to release claimed room", "room_id", roomID.Hex(), "error", err)
	}
}

func (s *bookingService) transactionError(message string, err error) error {
	if apperrors.IsAppError(err) {
		return err
	}
	s.cfg.Log.Error(message, "error", err)
	return apperrors.Internal(message, err)
}

// publish runs after commit. Failures are logged and never reach the client.
func (s *bookingService) publish(ctx context.Context, eventType string, booking *model.Booking) {
	ev := events.NewBookingEvent(eventType, booking.ID, booking.Room, &booking.BookingCore)
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.cfg.Log.Error("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", booking.ID.Hex(),
			"error", err,
		)
	}
}
