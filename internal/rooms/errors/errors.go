package errors

import "errors"

var (
	ErrNotFound = errors.New("room not found")

	ErrInvalidID = errors.New("invalid room ID format")

	ErrDuplicate = errors.New("room number already exists")

	ErrNotAvailable = errors.New("room is not available")
)
