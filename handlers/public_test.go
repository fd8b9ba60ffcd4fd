package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	clientRepo "bookable/database/repository/client"
	"bookable/models"
	"bookable/services/scheduling"
	"bookable/services/tenant"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ---- in-memory repository fakes ----

type stubAccountRepo struct {
	accounts map[string]*models.Account // keyed by ID
}

func (s *stubAccountRepo) Create(a *models.Account) error { s.accounts[a.ID] = a; return nil }

func (s *stubAccountRepo) GetByID(id string) (*models.Account, error) {
	if a, ok := s.accounts[id]; ok {
		return a, nil
	}
	return nil, nil
}

func (s *stubAccountRepo) GetByEmail(email string) (*models.Account, error) {
	for _, a := range s.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, nil
}

func (s *stubAccountRepo) GetBySubdomain(subdomain string) (*models.Account, error) {
	for _, a := range s.accounts {
		if a.Subdomain == subdomain {
			return a, nil
		}
	}
	return nil, nil
}

func (s *stubAccountRepo) SetSubdomain(accountID, subdomain string) error {
	s.accounts[accountID].Subdomain = subdomain
	return nil
}

func (s *stubAccountRepo) SubdomainExists(subdomain string) (bool, error) {
	a, _ := s.GetBySubdomain(subdomain)
	return a != nil, nil
}

func (s *stubAccountRepo) ListMissingSubdomain() ([]models.Account, error) { return nil, nil }

func (s *stubAccountRepo) UpdateBookingPage(accountID string, page *models.BookingPage) error {
	s.accounts[accountID].BookingPage = page
	return nil
}

type stubServiceRepo struct {
	services map[string]*models.Service
}

func (s *stubServiceRepo) Create(svc *models.Service) error { s.services[svc.ID] = svc; return nil }
func (s *stubServiceRepo) Update(svc *models.Service) error { s.services[svc.ID] = svc; return nil }

func (s *stubServiceRepo) GetByID(id string) (*models.Service, error) {
	if svc, ok := s.services[id]; ok {
		return svc, nil
	}
	return nil, nil
}

func (s *stubServiceRepo) ListByAccount(accountID string) ([]models.Service, error) {
	return s.list(accountID, false)
}

func (s *stubServiceRepo) ListVisibleByAccount(accountID string) ([]models.Service, error) {
	return s.list(accountID, true)
}

func (s *stubServiceRepo) list(accountID string, visibleOnly bool) ([]models.Service, error) {
	var out []models.Service
	for _, svc := range s.services {
		if svc.AccountID == accountID && (!visibleOnly || svc.Visible) {
			out = append(out, *svc)
		}
	}
	return out, nil
}

type stubClientRepo struct {
	mu      sync.Mutex
	clients map[string]*models.Client
}

func (s *stubClientRepo) Create(c *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := c.AccountID + ":" + c.Email
	if _, ok := s.clients[key]; ok {
		return clientRepo.ErrClientExists
	}
	s.clients[key] = c
	return nil
}

func (s *stubClientRepo) GetByEmail(accountID, email string) (*models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.clients[accountID+":"+email]; ok {
		return c, nil
	}
	return nil, nil
}

type stubAppointmentRepo struct {
	mu           sync.Mutex
	appointments []models.Appointment
}

func (s *stubAppointmentRepo) Insert(a *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appointments = append(s.appointments, *a)
	return nil
}

func (s *stubAppointmentRepo) GetByID(accountID, id string) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.appointments {
		if s.appointments[i].AccountID == accountID && s.appointments[i].ID == id {
			a := s.appointments[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (s *stubAppointmentRepo) FindLiveOverlapping(accountID string, start, end time.Time) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Appointment
	for _, a := range s.appointments {
		if a.AccountID == accountID && a.IsLive() && a.Start.Before(end) && a.End.After(start) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubAppointmentRepo) ListByAccount(accountID string, from, to time.Time) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Appointment
	for _, a := range s.appointments {
		if a.AccountID == accountID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubAppointmentRepo) UpdateStatus(accountID, id, status string) error { return nil }

// ---- fixtures ----

// publicFixture wires a router with one bookable account "acme" (open Monday
// 09:00-17:00 UTC), one private account "hidden", and one visible service.
type publicFixture struct {
	router       *gin.Engine
	accounts     *stubAccountRepo
	services     *stubServiceRepo
	appointments *stubAppointmentRepo
}

func newPublicFixture(t *testing.T) *publicFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	accounts := &stubAccountRepo{accounts: map[string]*models.Account{
		"acct-1": {
			ID:           "acct-1",
			Email:        "owner@acme.test",
			BusinessName: "Acme",
			Subdomain:    "acme",
			BookingPage: &models.BookingPage{
				IsPublic: true,
				Timezone: "UTC",
				Hours: map[string]models.DayHours{
					"monday": {Open: true, Start: "09:00", End: "17:00"},
				},
			},
		},
		"acct-2": {
			ID:           "acct-2",
			Email:        "owner@hidden.test",
			BusinessName: "Hidden Co",
			Subdomain:    "hidden",
			BookingPage: &models.BookingPage{
				IsPublic: false,
				Timezone: "UTC",
				Hours: map[string]models.DayHours{
					"monday": {Open: true, Start: "09:00", End: "17:00"},
				},
			},
		},
	}}
	services := &stubServiceRepo{services: map[string]*models.Service{
		"svc-1": {ID: "svc-1", AccountID: "acct-1", Name: "Haircut", Duration: 30, Price: 35, Visible: true},
		"svc-2": {ID: "svc-2", AccountID: "acct-1", Name: "Internal", Duration: 15, Visible: false},
	}}
	clients := &stubClientRepo{clients: make(map[string]*models.Client)}
	appointments := &stubAppointmentRepo{}

	logger := zap.NewNop()
	resolver := tenant.NewResolver(accounts)
	engine := scheduling.NewEngine(appointments)
	booking := scheduling.NewBookingService(services, clients, appointments, engine, logger)
	handler := NewPublicHandler(resolver, engine, booking, services, logger)

	router := gin.New()
	public := router.Group("/api/public/:account")
	{
		public.GET("/hours", handler.GetBusinessHours)
		public.GET("/services", handler.ListServices)
		public.GET("/availability", handler.CheckAvailability)
		public.POST("/bookings", handler.CreateBooking)
	}

	return &publicFixture{router: router, accounts: accounts, services: services, appointments: appointments}
}

func (f *publicFixture) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *publicFixture) postJSON(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func bookingBody() map[string]string {
	return map[string]string{
		"service_id": "svc-1",
		"date":       "2026-01-05",
		"time":       "10:00",
		"first_name": "Jane",
		"last_name":  "Doe",
		"email":      "jane@example.com",
		"phone":      "+15550100",
	}
}

// ---- tests ----

func TestGetBusinessHours(t *testing.T) {
	f := newPublicFixture(t)

	w := f.get(t, "/api/public/acme/hours")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Subdomain string                    `json:"subdomain"`
		Business  string                    `json:"business"`
		Timezone  string                    `json:"timezone"`
		Hours     map[string]models.DayHours `json:"hours"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "acme", body.Subdomain)
	require.Equal(t, "Acme", body.Business)
	require.Equal(t, "UTC", body.Timezone)
	require.True(t, body.Hours["monday"].Open)
}

func TestUnknownAndPrivateAccountsAreIndistinguishable(t *testing.T) {
	f := newPublicFixture(t)

	missing := f.get(t, "/api/public/no-such-account/hours")
	private := f.get(t, "/api/public/hidden/hours")

	require.Equal(t, http.StatusNotFound, missing.Code)
	require.Equal(t, http.StatusNotFound, private.Code)
	require.JSONEq(t, missing.Body.String(), private.Body.String(),
		"a private page must not be tellable apart from a missing one")
}

func TestResolveByAccountID(t *testing.T) {
	f := newPublicFixture(t)

	// Account IDs are also accepted as the path identifier.
	w := f.get(t, "/api/public/acct-1/hours")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestListServicesVisibleOnly(t *testing.T) {
	f := newPublicFixture(t)

	w := f.get(t, "/api/public/acme/services")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Services []models.Service `json:"services"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Services, 1)
	require.Equal(t, "svc-1", body.Services[0].ID)
}

func TestListServicesEmptyIsAnArray(t *testing.T) {
	f := newPublicFixture(t)
	f.services.services = map[string]*models.Service{}

	w := f.get(t, "/api/public/acme/services")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"services":[]}`, w.Body.String())
}

func TestCheckAvailability(t *testing.T) {
	f := newPublicFixture(t)

	t.Run("open slot", func(t *testing.T) {
		w := f.get(t, "/api/public/acme/availability?service_id=svc-1&date=2026-01-05&time=10:00")
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"available":true}`, w.Body.String())
	})

	t.Run("closed day", func(t *testing.T) {
		w := f.get(t, "/api/public/acme/availability?service_id=svc-1&date=2026-01-06&time=10:00")
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"available":false}`, w.Body.String())
	})

	t.Run("missing params", func(t *testing.T) {
		w := f.get(t, "/api/public/acme/availability?service_id=svc-1")
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("hidden service", func(t *testing.T) {
		w := f.get(t, "/api/public/acme/availability?service_id=svc-2&date=2026-01-05&time=10:00")
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCreateBooking(t *testing.T) {
	f := newPublicFixture(t)

	w := f.postJSON(t, "/api/public/acme/bookings", bookingBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Success      bool                       `json:"success"`
		Confirmation models.BookingConfirmation `json:"confirmation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Equal(t, models.AppointmentScheduled, body.Confirmation.Appointment.Status)
	require.Equal(t, "Haircut", body.Confirmation.ServiceName)
	require.Equal(t, "Jane Doe", body.Confirmation.ClientName)
	require.Len(t, f.appointments.appointments, 1)
}

func TestCreateBookingErrors(t *testing.T) {
	t.Run("malformed body", func(t *testing.T) {
		f := newPublicFixture(t)
		req := httptest.NewRequest(http.MethodPost, "/api/public/acme/bookings", bytes.NewBufferString("{not json"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing field", func(t *testing.T) {
		f := newPublicFixture(t)
		body := bookingBody()
		delete(body, "email")
		w := f.postJSON(t, "/api/public/acme/bookings", body)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("private page", func(t *testing.T) {
		f := newPublicFixture(t)
		w := f.postJSON(t, "/api/public/hidden/bookings", bookingBody())
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("conflicting slot", func(t *testing.T) {
		f := newPublicFixture(t)
		first := f.postJSON(t, "/api/public/acme/bookings", bookingBody())
		require.Equal(t, http.StatusCreated, first.Code)

		second := f.postJSON(t, "/api/public/acme/bookings", bookingBody())
		require.Equal(t, http.StatusConflict, second.Code)

		var resp struct {
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
		require.Equal(t, "Slot is no longer available", resp.Message)
		require.Len(t, f.appointments.appointments, 1)
	})
}
