package models

import "time"

// Client is an end customer of an account, created lazily on first booking.
// At most one client exists per account per email.
type Client struct {
	ID        string    `bson:"id" json:"id"`
	AccountID string    `bson:"account_id" json:"account_id"`
	FirstName string    `bson:"first_name" json:"first_name"`
	LastName  string    `bson:"last_name" json:"last_name"`
	Email     string    `bson:"email" json:"email"` // Lowercased, dedup key with account_id
	Phone     string    `bson:"phone" json:"phone"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// DisplayName returns the client's full name for confirmation payloads.
func (c Client) DisplayName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
