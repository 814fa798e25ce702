package bookings

import "errors"

var (
	ErrMalformed        = errors.New("confirmation is missing required fields")
	ErrSignatureInvalid = errors.New("payment signature verification failed")
	ErrListingNotFound  = errors.New("listing not found")
	ErrUserNotFound     = errors.New("no user for payer email")
	ErrAlreadyBooked    = errors.New("listing is already booked")
)
