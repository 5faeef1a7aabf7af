package services

import "errors"

// Sentinel errors shared by every service. Controllers map these to HTTP
// statuses with errors.Is at the boundary.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrOutOfStock      = errors.New("out of stock")
	ErrValidation      = errors.New("validation failed")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrPaymentRejected = errors.New("payment rejected by gateway")
)
