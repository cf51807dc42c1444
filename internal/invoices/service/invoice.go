package service

import (
	"context"
	"errors"

	bookingserrors "hotelms/internal/bookings/errors"
	"hotelms/internal/bookings/repository"
	"hotelms/pkg/config"
	apperrors "hotelms/pkg/errors"
	"hotelms/pkg/model"
)

type InvoiceService interface {
	Get(ctx context.Context, id string) (*model.Invoice, error)
}

type invoiceService struct {
	repo  repository.BookingRepository
	payee PayeeSettings
	cfg   *config.Config
}

func NewInvoiceService(repo repository.BookingRepository, cfg *config.Config) InvoiceService {
	return &invoiceService{
		repo: repo,
		payee: PayeeSettings{
			UPIID:        cfg.UPIID,
			ReceiverName: cfg.UPIReceiverName,
			QRBaseURL:    cfg.QRBaseURL,
		},
		cfg: cfg,
	}
}

func (s *invoiceService) Get(ctx context.Context, id string) (*model.Invoice, error) {
	booking, err := s.repo.FindInvoice(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, bookingserrors.ErrNotFound):
			return nil, apperrors.NotFoundWithID("Booking", id)
		case errors.Is(err, bookingserrors.ErrInvalidID):
			return nil, apperrors.InvalidInput("Invalid booking ID")
		}
		s.cfg.Log.Error("Failed to load invoice booking", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to load invoice", err)
	}

	if booking.Room == nil {
		return nil, apperrors.NotFound("Room")
	}
	if booking.Room.Type == nil {
		return nil, apperrors.NotFound("Room type")
	}

	invoice := Compute(booking, s.payee)
	s.cfg.Log.Debug("Invoice computed", "id", id, "nights", invoice.Nights, "total", invoice.Total)
	return invoice, nil
}
