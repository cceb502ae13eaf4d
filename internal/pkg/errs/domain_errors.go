package errs

import "errors"

// Domain-specific sentinel errors shared by the usecase layers. Handlers map
// these onto HTTP statuses; commands mark them onto the underlying domain
// errors so the original chain stays inspectable.
var (
	// Allocation errors
	ErrInvalidInput     = errors.New("invalid input")
	ErrTicketOutOfRange = errors.New("ticket id out of range")
	ErrTicketConflict   = errors.New("tickets unavailable")

	// Ledger errors
	ErrPurchaseNotFound = errors.New("purchase not found")
	ErrPurchaseRejected = errors.New("purchase already rejected")

	// Capacity errors
	ErrCapacityTooLow = errors.New("capacity below active ticket high-water mark")
)
