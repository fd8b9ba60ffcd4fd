package scheduling

import (
	"errors"
	"fmt"
	"strings"
	"time"

	appointmentRepo "bookable/database/repository/appointment"
	clientRepo "bookable/database/repository/client"
	serviceRepo "bookable/database/repository/service"
	"bookable/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingService commits public bookings. The conflict re-check and the
// appointment insert run under a per-account lock, closing the race between
// the advisory availability check and the write.
type BookingService struct {
	Services     serviceRepo.ServiceRepository
	Clients      clientRepo.ClientRepository
	Appointments appointmentRepo.AppointmentRepository
	Engine       *Engine
	Logger       *zap.Logger

	locks *accountLocks
}

// NewBookingService wires a booking committer.
func NewBookingService(
	services serviceRepo.ServiceRepository,
	clients clientRepo.ClientRepository,
	appointments appointmentRepo.AppointmentRepository,
	engine *Engine,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		Services:     services,
		Clients:      clients,
		Appointments: appointments,
		Engine:       engine,
		Logger:       logger,
		locks:        newAccountLocks(),
	}
}

// Commit validates the request, re-runs the conflict check authoritatively,
// finds or creates the client, and inserts a SCHEDULED appointment. A
// detected conflict is terminal for this request; retrying is the caller's
// decision.
func (s *BookingService) Commit(account *models.Account, req models.BookingRequest) (*models.BookingConfirmation, error) {
	if account == nil {
		return nil, ErrNotFound
	}
	if account.BookingPage == nil || !account.BookingPage.IsPublic {
		return nil, ErrNotBookable
	}

	service, err := s.Services.GetByID(req.ServiceID)
	if err != nil {
		return nil, err
	}
	if service == nil || service.AccountID != account.ID || !service.Visible {
		return nil, ErrNotFound
	}

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(account.BookingPage.Timezone)
	if err != nil {
		// The account's timezone identifier is stored opaquely; if it does
		// not resolve, the page cannot take bookings.
		s.Logger.Warn("booking rejected: unresolvable timezone",
			zap.String("account_id", account.ID),
			zap.String("timezone", account.BookingPage.Timezone))
		return nil, ErrNotBookable
	}
	start, err := time.ParseInLocation("2006-01-02 15:04", req.Date+" "+req.Time, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed date or time", ErrInvalid)
	}
	// The end instant comes from the service's current duration, never from
	// the request.
	end := start.Add(time.Duration(service.Duration) * time.Minute)

	unlock := s.locks.acquire(account.ID)
	defer unlock()

	withinHours, err := s.Engine.WithinBusinessHours(account, service, start)
	if err != nil {
		s.Logger.Warn("booking rejected: business hours unresolvable",
			zap.String("account_id", account.ID), zap.Error(err))
		return nil, ErrNotBookable
	}
	if !withinHours {
		return nil, ErrConflict
	}

	conflict, err := s.Engine.HasConflict(account.ID, start, end)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrConflict
	}

	client, err := s.findOrCreateClient(account.ID, req)
	if err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		ID:        uuid.New().String(),
		AccountID: account.ID,
		ServiceID: service.ID,
		ClientID:  client.ID,
		Title:     service.Name,
		Start:     start,
		End:       end,
		Status:    models.AppointmentScheduled,
	}
	if err := s.Appointments.Insert(appointment); err != nil {
		return nil, err
	}

	s.Logger.Info("booking committed",
		zap.String("account_id", account.ID),
		zap.String("appointment_id", appointment.ID),
		zap.Time("start", start))

	return &models.BookingConfirmation{
		Appointment:     *appointment,
		ServiceName:     service.Name,
		ServiceDuration: service.Duration,
		ServicePrice:    service.Price,
		ClientName:      client.DisplayName(),
		ClientEmail:     client.Email,
		ClientPhone:     client.Phone,
	}, nil
}

// findOrCreateClient reuses the (account, email) client if one exists. An
// existing client's name and phone are left as they are; a new booking does
// not rewrite identity data.
func (s *BookingService) findOrCreateClient(accountID string, req models.BookingRequest) (*models.Client, error) {
	email := normalizeEmail(req.Email)

	client, err := s.Clients.GetByEmail(accountID, email)
	if err != nil {
		return nil, err
	}
	if client != nil {
		return client, nil
	}

	client = &models.Client{
		ID:        uuid.New().String(),
		AccountID: accountID,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     email,
		Phone:     strings.TrimSpace(req.Phone),
	}
	if err := s.Clients.Create(client); err != nil {
		if errors.Is(err, clientRepo.ErrClientExists) {
			// Lost the unique-index race to a concurrent booking; reuse the winner.
			return s.Clients.GetByEmail(accountID, email)
		}
		return nil, err
	}
	return client, nil
}

func validateRequest(req models.BookingRequest) error {
	fields := map[string]string{
		"service_id": req.ServiceID,
		"date":       req.Date,
		"time":       req.Time,
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"email":      req.Email,
		"phone":      req.Phone,
	}
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: missing %s", ErrInvalid, name)
		}
	}
	if !strings.Contains(req.Email, "@") {
		return fmt.Errorf("%w: malformed email", ErrInvalid)
	}
	return nil
}

// ParseStart resolves a local date and clock time to an instant under the
// given timezone identifier.
func ParseStart(timezone, date, clock string) (time.Time, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	start, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date or time: %w", err)
	}
	return start, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
