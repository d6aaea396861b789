package domain

import "errors"

var (
	ErrUnknownDenomination = errors.New("unknown denomination")
	ErrInvalidCount        = errors.New("count must be a non-negative integer")
	ErrInvalidAmount       = errors.New("amount must be a non-negative number")
	ErrInvalidDate         = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrInvalidStatus       = errors.New("invalid order status")
	ErrOrderNotFound       = errors.New("order not found")
)
