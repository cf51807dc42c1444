package service

import (
	"context"
	"errors"
	"time"

	bookingserrors "hotelms/internal/bookings/errors"
	"hotelms/internal/bookings/repository"
	"hotelms/internal/bookings/validator"
	"hotelms/internal/events"
	"hotelms/pkg/config"
	apperrors "hotelms/pkg/errors"
	"hotelms/pkg/model"
)

const (
	MsgPaymentUpdated   = "Payment updated"
	MsgPaymentCompleted = "Payment completed"
)

// PaymentService records payments on bookings. Payment state is independent
// of the booking status.
type PaymentService interface {
	UpdatePayment(ctx context.Context, id string, req *model.PaymentUpdateRequest) (*model.BookingView, error)
	Pay(ctx context.Context, id string, req *model.PayRequest) (*model.BookingView, error)
}

type paymentService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
	now       func() time.Time
}

func NewPaymentService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) PaymentService {
	return &paymentService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

// UpdatePayment replaces the whole payment record.
func (s *paymentService) UpdatePayment(ctx context.Context, id string, req *model.PaymentUpdateRequest) (*model.BookingView, error) {
	if err := s.validator.ValidatePaymentUpdate(req); err != nil {
		return nil, err
	}

	amount := 0.0
	if req.PaidAmount.Present() {
		amount = req.PaidAmount.Float
	}
	change := repository.PaymentChange{
		PaymentStatus: req.PaymentStatus,
		PaymentMethod: req.PaymentMethod,
		PaidAmount:    &amount,
	}
	if req.PaymentDate.Present() {
		date := req.PaymentDate.UTC()
		change.PaymentDate = &date
	}

	return s.apply(ctx, id, change, events.TypeBookingPaymentUpdated)
}

// Pay marks the booking paid now. The paid amount is only written when the
// request carries one.
func (s *paymentService) Pay(ctx context.Context, id string, req *model.PayRequest) (*model.BookingView, error) {
	if err := s.validator.ValidatePay(req); err != nil {
		return nil, err
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	method := req.Method
	change := repository.PaymentChange{
		PaymentStatus: model.PaymentStatusPaid,
		PaymentMethod: &method,
		PaymentDate:   &now,
	}
	if req.Amount.Present() {
		change.PaidAmount = &req.Amount.Float
	}

	return s.apply(ctx, id, change, events.TypeBookingPaid)
}

func (s *paymentService) apply(ctx context.Context, id string, change repository.PaymentChange, eventType string) (*model.BookingView, error) {
	booking, err := s.repo.UpdatePayment(ctx, id, change)
	if err != nil {
		return nil, s.mapError(id, err)
	}

	s.cfg.Log.Info("Payment recorded",
		"id", id,
		"payment_status", booking.PaymentStatus,
		"paid_amount", booking.PaidAmount,
	)

	ev := events.NewBookingEvent(eventType, booking.ID, booking.Room, &booking.BookingCore)
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.cfg.Log.Error("Failed to publish payment event", "event_type", eventType, "booking_id", id, "error", err)
	}

	view, err := s.repo.FindViewByID(ctx, booking.ID)
	if err != nil {
		s.cfg.Log.Warn("Failed to resolve booking room", "id", id, "error", err)
		return &model.BookingView{ID: booking.ID, BookingCore: booking.BookingCore}, nil
	}
	return view, nil
}

func (s *paymentService) mapError(id string, err error) error {
	switch {
	case errors.Is(err, bookingserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Booking", id)
	case errors.Is(err, bookingserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid booking ID")
	}
	s.cfg.Log.Error("Failed to record payment", "id", id, "error", err)
	return apperrors.Internal("Failed to record payment", err)
}
