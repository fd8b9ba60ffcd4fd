package models

import "time"

// Appointment statuses. Only SCHEDULED and CONFIRMED occupy a time slot.
const (
	AppointmentScheduled = "SCHEDULED"
	AppointmentConfirmed = "CONFIRMED"
	AppointmentCancelled = "CANCELLED"
	AppointmentCompleted = "COMPLETED"
)

// LiveStatuses are the statuses that count toward slot conflicts.
var LiveStatuses = []string{AppointmentScheduled, AppointmentConfirmed}

// Appointment is a committed reservation of a [Start, End) slot. Appointments
// are never deleted, only status-transitioned.
type Appointment struct {
	ID        string    `bson:"id" json:"id"`
	AccountID string    `bson:"account_id" json:"account_id"`
	ServiceID string    `bson:"service_id" json:"service_id"`
	ClientID  string    `bson:"client_id" json:"client_id"`
	Title     string    `bson:"title" json:"title"` // Service name snapshot at booking time
	Start     time.Time `bson:"start" json:"start"`
	End       time.Time `bson:"end" json:"end"` // Always Start + service duration, server-computed
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsLive reports whether the appointment occupies its slot.
func (a Appointment) IsLive() bool {
	return a.Status == AppointmentScheduled || a.Status == AppointmentConfirmed
}

// Overlaps reports whether two half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
