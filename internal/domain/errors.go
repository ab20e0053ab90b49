package domain

import "errors"

var (
	// Record construction errors
	ErrMalformedRecord = errors.New("malformed record")
	ErrMissingAmount   = errors.New("missing amount")
	ErrInvalidAmount   = errors.New("cannot parse amount as decimal number")
	ErrUnknownKind     = errors.New("unknown transaction type")

	// Replay errors
	ErrInsufficientFunds  = errors.New("insufficient available funds")
	ErrUnknownTransaction = errors.New("unknown transaction reference")
	ErrAccountNotFound    = errors.New("account not found")
)
