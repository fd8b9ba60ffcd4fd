// Package tenant maps public subdomain labels to accounts and owns the
// subdomain lifecycle (generation, backfill).
package tenant

import (
	"regexp"

	accountRepo "bookable/database/repository/account"
	"bookable/models"
)

// labelRe is the subdomain grammar: 3-63 lowercase alphanumeric-and-hyphen
// characters with no leading or trailing hyphen.
var labelRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,61}[a-z0-9]$`)

// Resolver maps an inbound subdomain (or explicit account ID) to an account
// record with its booking-page configuration.
type Resolver struct {
	Accounts accountRepo.AccountRepository
}

// NewResolver creates a tenant resolver over the account repository.
func NewResolver(accounts accountRepo.AccountRepository) *Resolver {
	return &Resolver{Accounts: accounts}
}

// ValidLabel reports whether s matches the subdomain grammar.
func ValidLabel(s string) bool {
	return labelRe.MatchString(s)
}

// Resolve looks up an account by subdomain label, falling back to account ID.
// A syntactically invalid label resolves to nothing without touching storage.
// Returns (nil, nil) when no account matches.
func (r *Resolver) Resolve(subdomainOrID string) (*models.Account, error) {
	if !ValidLabel(subdomainOrID) {
		return nil, nil
	}

	account, err := r.Accounts.GetBySubdomain(subdomainOrID)
	if err != nil {
		return nil, err
	}
	if account != nil {
		return account, nil
	}

	// UUIDs satisfy the label grammar, so an explicit account ID lands here.
	return r.Accounts.GetByID(subdomainOrID)
}

// IsPubliclyBookable reports whether the account can take public bookings.
// Absence of a booking-page configuration means booking is disabled. Callers
// re-check this on every request; the flag is never cached.
func (r *Resolver) IsPubliclyBookable(account *models.Account) bool {
	return account != nil && account.BookingPage != nil && account.BookingPage.IsPublic
}
