package models

import "time"

// Account is a service provider's tenant record, addressed publicly via a
// subdomain label.
type Account struct {
	ID           string       `bson:"id" json:"id"`                         // Unique account identifier (UUID)
	Email        string       `bson:"email" json:"email"`                   // Owner login email
	PasswordHash string       `bson:"password_hash" json:"-"`               // bcrypt hash, never serialized
	BusinessName string       `bson:"business_name" json:"business_name"`   // Display name, source for the subdomain
	Subdomain    string       `bson:"subdomain,omitempty" json:"subdomain"` // Unique lowercase label, immutable once assigned
	BookingPage  *BookingPage `bson:"booking_page,omitempty" json:"booking_page,omitempty"`
	CreatedAt    time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `bson:"updated_at" json:"updated_at"`
}

// BookingPage holds an account's public booking-page configuration. A missing
// configuration means booking is disabled.
type BookingPage struct {
	IsPublic bool                `bson:"is_public" json:"is_public"`
	Hours    map[string]DayHours `bson:"hours" json:"hours"`       // Keyed by lowercase weekday name, seven entries
	Timezone string              `bson:"timezone" json:"timezone"` // IANA identifier, stored opaquely
	Display  DisplayOptions      `bson:"display" json:"display"`
}

// DayHours is one weekday's opening configuration, local times as "HH:MM".
type DayHours struct {
	Open  bool   `bson:"open" json:"open"`
	Start string `bson:"start,omitempty" json:"start,omitempty"`
	End   string `bson:"end,omitempty" json:"end,omitempty"`
}

// DisplayOptions are cosmetic settings for the public page.
type DisplayOptions struct {
	HeaderColor string `bson:"header_color,omitempty" json:"header_color,omitempty"`
	Tagline     string `bson:"tagline,omitempty" json:"tagline,omitempty"`
	ShowPrices  bool   `bson:"show_prices" json:"show_prices"`
}

// WeekdayKey maps a time.Weekday to the key used in BookingPage.Hours.
func WeekdayKey(d time.Weekday) string {
	switch d {
	case time.Sunday:
		return "sunday"
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	default:
		return "saturday"
	}
}
