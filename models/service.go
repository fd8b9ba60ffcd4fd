package models

import "time"

// Service is a bookable offering owned by an account. Only visible services
// appear on the public page.
type Service struct {
	ID          string    `bson:"id" json:"id"`
	AccountID   string    `bson:"account_id" json:"account_id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Duration    int       `bson:"duration" json:"duration"` // Minutes, must be > 0
	Price       float64   `bson:"price" json:"price"`       // Non-negative
	Visible     bool      `bson:"visible" json:"visible"`
	CategoryID  string    `bson:"category_id,omitempty" json:"category_id,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
