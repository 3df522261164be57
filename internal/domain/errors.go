package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateKey indicates an insert collided with an existing ID.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrInvalidArgument indicates a caller-supplied value was out of range or malformed.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInsufficientStock indicates a requested quantity exceeds available stock.
	ErrInsufficientStock = errors.New("insufficient stock")
)
