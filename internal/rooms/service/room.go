package service

import (
	"context"
	"errors"

	roomserrors "hotelms/internal/rooms/errors"
	"hotelms/internal/rooms/repository"
	"hotelms/pkg/config"
	apperrors "hotelms/pkg/errors"
	"hotelms/pkg/model"
	"hotelms/pkg/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MsgCreated       = "Room added"
	MsgStatusUpdated = "Room status updated"
	MsgDeleted       = "Room deleted"
	MsgDuplicate     = "Room number already exists"
)

type RoomService interface {
	List(ctx context.Context) ([]*model.RoomView, error)
	Create(ctx context.Context, req *model.RoomRequest) (*model.Room, error)
	UpdateStatus(ctx context.Context, id string, req *model.RoomStatusRequest) (*model.Room, error)
	Delete(ctx context.Context, id string) error
}

type roomService struct {
	repo      repository.RoomRepository
	validator *validation.Validator
	cfg       *config.Config
}

func NewRoomService(repo repository.RoomRepository, validator *validation.Validator, cfg *config.Config) RoomService {
	return &roomService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *roomService) List(ctx context.Context) ([]*model.RoomView, error) {
	rooms, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list rooms", "error", err)
		return nil, apperrors.Internal("Failed to retrieve rooms", err)
	}
	return rooms, nil
}

// Create accepts any well-formed type id; the type is not required to exist.
func (s *roomService) Create(ctx context.Context, req *model.RoomRequest) (*model.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.AppError(err)
	}

	typeID, err := primitive.ObjectIDFromHex(req.Type)
	if err != nil {
		return nil, apperrors.InvalidInput("type must be a valid id")
	}

	status := req.Status
	if status == "" {
		status = model.RoomStatusAvailable
	}

	room := &model.Room{
		RoomNumber: req.RoomNumber.Int,
		Type:       typeID,
		Status:     status,
	}
	if err := s.repo.Create(ctx, room); err != nil {
		if errors.Is(err, roomserrors.ErrDuplicate) {
			return nil, apperrors.Duplicate(MsgDuplicate)
		}
		s.cfg.Log.Error("Failed to create room", "error", err)
		return nil, apperrors.Internal("Failed to create room", err)
	}

	s.cfg.Log.Info("Room created successfully",
		"id", room.ID.Hex(),
		"room_number", room.RoomNumber,
		"status", room.Status,
	)
	return room, nil
}

func (s *roomService) UpdateStatus(ctx context.Context, id string, req *model.RoomStatusRequest) (*model.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.AppError(err)
	}

	room, err := s.repo.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		if mapped := mapRepoError(id, err); mapped != nil {
			return nil, mapped
		}
		s.cfg.Log.Error("Failed to update room status", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update room status", err)
	}

	s.cfg.Log.Info("Room status updated", "id", id, "status", room.Status)
	return room, nil
}

// Delete does not check for open bookings on the room.
func (s *roomService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if mapped := mapRepoError(id, err); mapped != nil {
			return mapped
		}
		s.cfg.Log.Error("Failed to delete room", "id", id, "error", err)
		return apperrors.Internal("Failed to delete room", err)
	}

	s.cfg.Log.Info("Room deleted successfully", "id", id)
	return nil
}

func mapRepoError(id string, err error) error {
	switch {
	case errors.Is(err, roomserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Room", id)
	case errors.Is(err, roomserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid room ID")
	}
	return nil
}
