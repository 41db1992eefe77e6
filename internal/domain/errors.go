package domain

import "errors"

var (
	ErrUserAlreadyExists       = errors.New("user already exists")
	ErrRecordNotFound          = errors.New("record not found")
	ErrInvalidDateRange        = errors.New("check-out date must be after check-in date")
	ErrPastCheckInDate         = errors.New("cannot book dates in the past")
	ErrSelfBooking             = errors.New("cannot book your own listing")
	ErrBookingConflict         = errors.New("listing is not available for the selected dates")
	ErrBookingAlreadyCancelled = errors.New("booking is already cancelled")
)
