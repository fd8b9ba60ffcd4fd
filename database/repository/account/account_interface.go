package accountRepo

import (
	"errors"

	"bookable/models"
)

// ErrSubdomainTaken is returned when a subdomain write loses the uniqueness
// race. The subdomain generator treats it as "try the next candidate".
var ErrSubdomainTaken = errors.New("subdomain already taken")

// AccountRepository defines persistence operations for accounts. Lookups
// return (nil, nil) when no account matches.
type AccountRepository interface {
	Create(account *models.Account) error
	GetByID(id string) (*models.Account, error)
	GetByEmail(email string) (*models.Account, error)
	GetBySubdomain(subdomain string) (*models.Account, error)
	// SetSubdomain assigns a subdomain to an account. Returns
	// ErrSubdomainTaken when the label is already held by another account.
	SetSubdomain(accountID, subdomain string) error
	SubdomainExists(subdomain string) (bool, error)
	// ListMissingSubdomain returns accounts that have no subdomain yet,
	// for the one-time backfill.
	ListMissingSubdomain() ([]models.Account, error)
	UpdateBookingPage(accountID string, page *models.BookingPage) error
}
