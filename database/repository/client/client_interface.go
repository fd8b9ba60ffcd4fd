package clientRepo

import (
	"errors"

	"bookable/models"
)

// ErrClientExists is returned when a create loses the (account, email)
// uniqueness race. The caller re-fetches and reuses the existing client.
var ErrClientExists = errors.New("client already exists for this account and email")

// ClientRepository defines persistence operations for end clients. Lookups
// return (nil, nil) when no client matches.
type ClientRepository interface {
	// Create inserts a client. Returns ErrClientExists when another insert
	// for the same (account, email) won the race.
	Create(client *models.Client) error
	GetByEmail(accountID, email string) (*models.Client, error)
}
