package appointmentRepo

import (
	"time"

	"bookable/models"
)

// AppointmentRepository defines persistence operations for appointments.
// Appointments are never deleted; lifecycle changes go through UpdateStatus.
type AppointmentRepository interface {
	Insert(appointment *models.Appointment) error
	GetByID(accountID, id string) (*models.Appointment, error)
	// FindLiveOverlapping returns the account's SCHEDULED/CONFIRMED
	// appointments whose [start, end) intersects the given half-open window.
	FindLiveOverlapping(accountID string, start, end time.Time) ([]models.Appointment, error)
	ListByAccount(accountID string, from, to time.Time) ([]models.Appointment, error)
	UpdateStatus(accountID, id, status string) error
}
