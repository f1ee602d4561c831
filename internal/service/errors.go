package service

import "errors"

// Error taxonomy shared by all services. Handlers translate these to HTTP
// status codes; anything else surfaces as an internal error.
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")

	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidState = errors.New("invalid state transition")

	ErrInvalidAmount       = errors.New("payout amount must be positive")
	ErrBelowMinPayout      = errors.New("payout amount is below the minimum")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrInsufficientStock   = errors.New("insufficient stock")

	ErrEmailTaken        = errors.New("email already registered")
	ErrInvalidCredential = errors.New("invalid email or password")
	ErrSellerNotVerified = errors.New("seller is not verified")
	ErrAlreadySeller     = errors.New("seller application already exists")
)
