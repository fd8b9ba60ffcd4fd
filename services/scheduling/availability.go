// Package scheduling holds the availability engine and the booking commit
// path, the two halves of the double-booking guard.
package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	appointmentRepo "bookable/database/repository/appointment"
	"bookable/models"
)

// Engine answers "is this window free" questions. It never mutates storage;
// its answer is advisory for display. The authoritative re-check happens
// inside BookingService.Commit under the account lock.
type Engine struct {
	Appointments appointmentRepo.AppointmentRepository
}

// NewEngine creates an availability engine over the appointment repository.
func NewEngine(appointments appointmentRepo.AppointmentRepository) *Engine {
	return &Engine{Appointments: appointments}
}

// IsAvailable reports whether [start, start+duration) is inside the account's
// business hours and free of live appointments.
func (e *Engine) IsAvailable(account *models.Account, service *models.Service, start time.Time) (bool, error) {
	end := start.Add(time.Duration(service.Duration) * time.Minute)

	ok, err := e.WithinBusinessHours(account, service, start)
	if err != nil || !ok {
		return false, err
	}

	conflict, err := e.HasConflict(account.ID, start, end)
	if err != nil {
		return false, err
	}
	return !conflict, nil
}

// WithinBusinessHours checks the window against the weekday's local opening
// interval. The weekday is resolved under the account's timezone. A window
// that would run past the day's closing time is rejected even if the next
// day is open; appointments do not span midnight.
func (e *Engine) WithinBusinessHours(account *models.Account, service *models.Service, start time.Time) (bool, error) {
	page := account.BookingPage
	if page == nil {
		return false, nil
	}

	loc, err := time.LoadLocation(page.Timezone)
	if err != nil {
		// A broken timezone identifier fails closed.
		return false, fmt.Errorf("account %s has an invalid timezone %q: %w", account.ID, page.Timezone, err)
	}

	local := start.In(loc)
	day, ok := page.Hours[models.WeekdayKey(local.Weekday())]
	if !ok || !day.Open {
		return false, nil
	}

	openMin, err := parseClock(day.Start)
	if err != nil {
		return false, fmt.Errorf("account %s has invalid opening time %q: %w", account.ID, day.Start, err)
	}
	closeMin, err := parseClock(day.End)
	if err != nil {
		return false, fmt.Errorf("account %s has invalid closing time %q: %w", account.ID, day.End, err)
	}

	startMin := local.Hour()*60 + local.Minute()
	endMin := startMin + service.Duration

	// End is exclusive, so finishing exactly at closing time is allowed.
	return startMin >= openMin && endMin <= closeMin, nil
}

// HasConflict reports whether any live appointment overlaps [start, end).
func (e *Engine) HasConflict(accountID string, start, end time.Time) (bool, error) {
	existing, err := e.Appointments.FindLiveOverlapping(accountID, start, end)
	if err != nil {
		return false, fmt.Errorf("failed to query live appointments: %w", err)
	}

	for _, appt := range existing {
		if overlapsExisting(start, end, appt) {
			return true, nil
		}
	}
	return false, nil
}

// overlapsExisting checks the candidate window against one appointment.
// All three overlap shapes are covered: the candidate starts during the
// appointment, ends during it, or fully contains it (overlap is symmetric,
// so containment the other way falls out of the first two).
func overlapsExisting(start, end time.Time, appt models.Appointment) bool {
	startsDuring := !start.Before(appt.Start) && start.Before(appt.End)
	endsDuring := end.After(appt.Start) && !end.After(appt.End)
	contains := !start.After(appt.Start) && !end.Before(appt.End)
	return startsDuring || endsDuring || contains
}

// parseClock converts "HH:MM" to minutes from local midnight.
func parseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}
