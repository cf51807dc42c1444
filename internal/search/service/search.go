package service

import (
	"context"
	"strings"

	"hotelms/internal/bookings/repository"
	"hotelms/pkg/config"
	apperrors "hotelms/pkg/errors"
	"hotelms/pkg/model"
)

type SearchService interface {
	Bookings(ctx context.Context, query string) ([]*model.BookingView, error)
}

type searchService struct {
	repo repository.BookingRepository
	cfg  *config.Config
}

func NewSearchService(repo repository.BookingRepository, cfg *config.Config) SearchService {
	return &searchService{
		repo: repo,
		cfg:  cfg,
	}
}

// Bookings returns bookings whose customer name or phone contains query,
// ignoring case. The result is not paginated.
func (s *searchService) Bookings(ctx context.Context, query string) ([]*model.BookingView, error) {
	bookings, err := s.repo.Search(ctx, strings.TrimSpace(query))
	if err != nil {
		s.cfg.Log.Error("Failed to search bookings", "error", err)
		return nil, apperrors.Internal("Failed to search bookings", err)
	}
	return bookings, nil
}
