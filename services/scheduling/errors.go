package scheduling

import "errors"

// Sentinel errors mapped to HTTP statuses at the handler boundary. Nothing
// below the handlers knows about status codes.
var (
	// ErrNotFound covers unknown accounts and unknown or hidden services.
	ErrNotFound = errors.New("resource not found")
	// ErrNotBookable means the account exists but its page is not public.
	// Public handlers present it identically to ErrNotFound.
	ErrNotBookable = errors.New("booking is not enabled for this account")
	// ErrInvalid covers missing or malformed booking request fields.
	ErrInvalid = errors.New("invalid booking request")
	// ErrConflict means the slot is no longer available. The caller re-checks
	// availability and picks another slot; it is never retried here.
	ErrConflict = errors.New("slot is not available")
)
