package usecase

import "errors"

// Booking outcomes the boundary maps to HTTP statuses.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTicketType = errors.New("ticket must be paid, in person and include a hotel")
	ErrInvalidBooking    = errors.New("booking does not exist or belongs to another user")
	ErrOutOfCapacity     = errors.New("selected room is out of capacity")
	ErrAlreadyBooked     = errors.New("user already has a booking")
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
