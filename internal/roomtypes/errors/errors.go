package errors

import "errors"

var (
	ErrNotFound = errors.New("room type not found")

	ErrInvalidID = errors.New("invalid room type ID format")

	ErrDuplicate = errors.New("room type already exists")
)
