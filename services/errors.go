package services

import "errors"

// Expected, user-facing failure conditions. Controllers map these to specific
// responses; anything else is treated as an infrastructure failure and
// surfaced generically.
var (
	// ErrNotFound means the entity is absent or not owned by the caller.
	ErrNotFound = errors.New("not found")
	// ErrNotAvailable means the listing is absent or not in active status.
	ErrNotAvailable = errors.New("listing not available")
	// ErrInsufficientBalance means the account balance does not cover the amount.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInvalidType means the transaction is not of a refundable type.
	ErrInvalidType = errors.New("only purchases can be refunded")
	// ErrAlreadyRequested means a refund request already exists for the transaction.
	ErrAlreadyRequested = errors.New("refund already requested")
	// ErrAlreadyProcessed means the refund or check was already decided.
	ErrAlreadyProcessed = errors.New("already processed")
	// ErrWindowExpired means the auto-check window has passed.
	ErrWindowExpired = errors.New("check window expired")
	// ErrInvalidAmount means the amount is zero, negative or malformed.
	ErrInvalidAmount = errors.New("invalid amount")
)
