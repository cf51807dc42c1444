package service

import (
	"context"
	"errors"

	roomtypeserrors "hotelms/internal/roomtypes/errors"
	"hotelms/internal/roomtypes/repository"
	"hotelms/pkg/cache"
	"hotelms/pkg/config"
	apperrors "hotelms/pkg/errors"
	"hotelms/pkg/model"
	"hotelms/pkg/sanitizer"
	"hotelms/pkg/validation"
)

const (
	CacheKey = "roomtypes"

	MsgCreated   = "Room type added"
	MsgDeleted   = "Room type deleted"
	MsgDuplicate = "Room type already exists"
)

type RoomTypeService interface {
	List(ctx context.Context) ([]*model.RoomType, error)
	Create(ctx context.Context, req *model.RoomTypeRequest) (*model.RoomType, error)
	Delete(ctx context.Context, id string) error
}

type roomTypeService struct {
	repo      repository.RoomTypeRepository
	cache     cache.Cache
	validator *validation.Validator
	cfg       *config.Config
}

func NewRoomTypeService(
	repo repository.RoomTypeRepository,
	cache cache.Cache,
	validator *validation.Validator,
	cfg *config.Config,
) RoomTypeService {
	return &roomTypeService{
		repo:      repo,
		cache:     cache,
		validator: validator,
		cfg:       cfg,
	}
}

// List serves from the cache when possible. Cache failures fall through to
// the database.
func (s *roomTypeService) List(ctx context.Context) ([]*model.RoomType, error) {
	var cached []*model.RoomType
	hit, err := s.cache.Get(ctx, CacheKey, &cached)
	if err != nil {
		s.cfg.Log.Warn("Room type cache read failed", "error", err)
	}
	if hit && cached != nil {
		return cached, nil
	}

	roomTypes, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list room types", "error", err)
		return nil, apperrors.Internal("Failed to retrieve room types", err)
	}

	if err := s.cache.Set(ctx, CacheKey, roomTypes); err != nil {
		s.cfg.Log.Warn("Room type cache write failed", "error", err)
	}
	return roomTypes, nil
}

func (s *roomTypeService) Create(ctx context.Context, req *model.RoomTypeRequest) (*model.RoomType, error) {
	req.Name = sanitizer.NormalizeName(req.Name)
	req.Features = sanitizer.NormalizeFeatures(req.Features)
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.AppError(err)
	}

	roomType := &model.RoomType{
		Name:      req.Name,
		Price:     req.Price.Float,
		MaxGuests: req.MaxGuests.Int,
		Features:  req.Features,
	}
	if err := s.repo.Create(ctx, roomType); err != nil {
		if errors.Is(err, roomtypeserrors.ErrDuplicate) {
			return nil, apperrors.Duplicate(MsgDuplicate)
		}
		s.cfg.Log.Error("Failed to create room type", "error", err)
		return nil, apperrors.Internal("Failed to create room type", err)
	}

	s.invalidate(ctx)
	s.cfg.Log.Info("Room type created successfully", "id", roomType.ID.Hex(), "name", roomType.Name)
	return roomType, nil
}

func (s *roomTypeService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, roomtypeserrors.ErrNotFound):
			return apperrors.NotFoundWithID("Room type", id)
		case errors.Is(err, roomtypeserrors.ErrInvalidID):
			return apperrors.InvalidInput("Invalid room type ID")
		}
		s.cfg.Log.Error("Failed to delete room type", "id", id, "error", err)
		return apperrors.Internal("Failed to delete room type", err)
	}

	s.invalidate(ctx)
	s.cfg.Log.Info("Room type deleted successfully", "id", id)
	return nil
}

func (s *roomTypeService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, CacheKey); err != nil {
		s.cfg.Log.Warn("Room type cache invalidation failed", "error", err)
	}
}
