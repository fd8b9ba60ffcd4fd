package scheduling

import (
	"sync"
	"time"

	clientRepo "bookable/database/repository/client"
	"bookable/models"
)

// fakeAppointmentRepo is an in-memory AppointmentRepository for tests.
type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments []models.Appointment
}

func (f *fakeAppointmentRepo) Insert(a *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	f.appointments = append(f.appointments, *a)
	return nil
}

func (f *fakeAppointmentRepo) GetByID(accountID, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.appointments {
		if f.appointments[i].ID == id && f.appointments[i].AccountID == accountID {
			a := f.appointments[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) FindLiveOverlapping(accountID string, start, end time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.AccountID == accountID && a.IsLive() && a.Start.Before(end) && a.End.After(start) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) ListByAccount(accountID string, from, to time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.AccountID != accountID {
			continue
		}
		if !from.IsZero() && a.Start.Before(from) {
			continue
		}
		if !to.IsZero() && !a.Start.Before(to) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(accountID, id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.appointments {
		if f.appointments[i].ID == id && f.appointments[i].AccountID == accountID {
			f.appointments[i].Status = status
			return nil
		}
	}
	return nil
}

// fakeServiceRepo is an in-memory ServiceRepository for tests.
type fakeServiceRepo struct {
	mu       sync.Mutex
	services map[string]*models.Service
}

func newFakeServiceRepo(services ...*models.Service) *fakeServiceRepo {
	f := &fakeServiceRepo{services: make(map[string]*models.Service)}
	for _, s := range services {
		f.services[s.ID] = s
	}
	return f
}

func (f *fakeServiceRepo) Create(s *models.Service) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.services[s.ID] = s
	return nil
}

func (f *fakeServiceRepo) Update(s *models.Service) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.services[s.ID] = s
	return nil
}

func (f *fakeServiceRepo) GetByID(id string) (*models.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, nil
}

func (f *fakeServiceRepo) ListByAccount(accountID string) ([]models.Service, error) {
	return f.list(accountID, false)
}

func (f *fakeServiceRepo) ListVisibleByAccount(accountID string) ([]models.Service, error) {
	return f.list(accountID, true)
}

func (f *fakeServiceRepo) list(accountID string, visibleOnly bool) ([]models.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Service
	for _, s := range f.services {
		if s.AccountID == accountID && (!visibleOnly || s.Visible) {
			out = append(out, *s)
		}
	}
	return out, nil
}

// fakeClientRepo is an in-memory ClientRepository enforcing the
// (account, email) uniqueness constraint like the Mongo index does.
type fakeClientRepo struct {
	mu      sync.Mutex
	clients map[string]*models.Client // account_id + ":" + email
	creates int
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[string]*models.Client)}
}

func (f *fakeClientRepo) Create(c *models.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := c.AccountID + ":" + c.Email
	if _, ok := f.clients[key]; ok {
		return clientRepo.ErrClientExists
	}
	f.creates++
	f.clients[key] = c
	return nil
}

func (f *fakeClientRepo) GetByEmail(accountID, email string) (*models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.clients[accountID+":"+email]; ok {
		return c, nil
	}
	return nil, nil
}

// testAccount returns a bookable account open Mondays 09:00-17:00 UTC.
func testAccount() *models.Account {
	return &models.Account{
		ID:           "acct-1",
		BusinessName: "Acme",
		Subdomain:    "acme",
		BookingPage: &models.BookingPage{
			IsPublic: true,
			Timezone: "UTC",
			Hours: map[string]models.DayHours{
				"monday":    {Open: true, Start: "09:00", End: "17:00"},
				"tuesday":   {Open: false},
				"wednesday": {Open: true, Start: "10:00", End: "14:00"},
			},
		},
	}
}

// testService returns a visible service owned by testAccount.
func testService(duration int) *models.Service {
	return &models.Service{
		ID:        "svc-1",
		AccountID: "acct-1",
		Name:      "Haircut",
		Duration:  duration,
		Price:     35,
		Visible:   true,
	}
}

// mondayAt builds an instant on Monday 2026-01-05 UTC.
func mondayAt(hour, min int) time.Time {
	return time.Date(2026, 1, 5, hour, min, 0, 0, time.UTC)
}
