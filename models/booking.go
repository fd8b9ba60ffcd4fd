package models

// BookingRequest is the public booking-creation input. The end time is never
// part of it; the server derives it from the service duration.
type BookingRequest struct {
	ServiceID string `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"` // "YYYY-MM-DD", account-local
	Time      string `json:"time" binding:"required"` // "HH:MM", account-local
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
}

// BookingConfirmation is the denormalized payload returned after a successful
// commit, for immediate display. It is not separately persisted.
type BookingConfirmation struct {
	Appointment     Appointment `json:"appointment"`
	ServiceName     string      `json:"service_name"`
	ServiceDuration int         `json:"service_duration"`
	ServicePrice    float64     `json:"service_price"`
	ClientName      string      `json:"client_name"`
	ClientEmail     string      `json:"client_email"`
	ClientPhone     string      `json:"client_phone"`
}
