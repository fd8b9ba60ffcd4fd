package handlers

import (
	"net/http"
	"time"

	accountRepo "bookable/database/repository/account"
	appointmentRepo "bookable/database/repository/appointment"
	serviceRepo "bookable/database/repository/service"
	"bookable/middleware"
	"bookable/models"
	"bookable/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// legalTransitions are the permitted appointment status changes. CANCELLED
// and COMPLETED are terminal; appointments are never deleted.
var legalTransitions = map[string][]string{
	models.AppointmentScheduled: {models.AppointmentConfirmed, models.AppointmentCancelled, models.AppointmentCompleted},
	models.AppointmentConfirmed: {models.AppointmentCancelled, models.AppointmentCompleted},
}

// OwnerHandler serves the authenticated dashboard endpoints: appointments,
// services, and booking-page settings.
type OwnerHandler struct {
	Accounts     accountRepo.AccountRepository
	Services     serviceRepo.ServiceRepository
	Appointments appointmentRepo.AppointmentRepository
	Logger       *zap.Logger
}

// NewOwnerHandler wires the owner dashboard handler.
func NewOwnerHandler(
	accounts accountRepo.AccountRepository,
	services serviceRepo.ServiceRepository,
	appointments appointmentRepo.AppointmentRepository,
	logger *zap.Logger,
) *OwnerHandler {
	return &OwnerHandler{
		Accounts:     accounts,
		Services:     services,
		Appointments: appointments,
		Logger:       logger,
	}
}

func accountID(c *gin.Context) string {
	return c.GetString(middleware.AccountIDKey)
}

// ListAppointments returns the owner's appointments, optionally bounded by
// from/to query instants (RFC 3339).
func (h *OwnerHandler) ListAppointments(c *gin.Context) {
	var from, to time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Malformed from instant", "")
			return
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Malformed to instant", "")
			return
		}
		to = t
	}

	appointments, err := h.Appointments.ListByAccount(accountID(c), from, to)
	if err != nil {
		h.Logger.Error("failed to list appointments", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	if appointments == nil {
		appointments = []models.Appointment{}
	}

	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateAppointmentStatus transitions an appointment through its lifecycle.
func (h *OwnerHandler) UpdateAppointmentStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing status", "")
		return
	}

	appointment, err := h.Appointments.GetByID(accountID(c), c.Param("id"))
	if err != nil {
		h.Logger.Error("failed to fetch appointment", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	if appointment == nil {
		utils.JSONError(c, http.StatusNotFound, "Appointment not found", "")
		return
	}

	if !transitionAllowed(appointment.Status, req.Status) {
		utils.JSONError(c, http.StatusBadRequest, "Illegal status transition", "")
		return
	}

	if err := h.Appointments.UpdateStatus(accountID(c), appointment.ID, req.Status); err != nil {
		h.Logger.Error("failed to update appointment status", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	appointment.Status = req.Status

	c.JSON(http.StatusOK, gin.H{"appointment": appointment})
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range legalTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type serviceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Duration    int     `json:"duration" binding:"required,gt=0"`
	Price       float64 `json:"price" binding:"gte=0"`
	Visible     bool    `json:"visible"`
	CategoryID  string  `json:"category_id"`
}

// ListServices returns all of the owner's services, hidden ones included.
func (h *OwnerHandler) ListServices(c *gin.Context) {
	services, err := h.Services.ListByAccount(accountID(c))
	if err != nil {
		h.Logger.Error("failed to list services", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	if services == nil {
		services = []models.Service{}
	}

	c.JSON(http.StatusOK, gin.H{"services": services})
}

// CreateService adds a service to the owner's catalogue.
func (h *OwnerHandler) CreateService(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing or malformed service fields", "")
		return
	}

	service := &models.Service{
		ID:          uuid.New().String(),
		AccountID:   accountID(c),
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
		Price:       req.Price,
		Visible:     req.Visible,
		CategoryID:  req.CategoryID,
	}
	if err := h.Services.Create(service); err != nil {
		h.Logger.Error("failed to create service", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"service": service})
}

// UpdateService modifies one of the owner's services.
func (h *OwnerHandler) UpdateService(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing or malformed service fields", "")
		return
	}

	existing, err := h.Services.GetByID(c.Param("id"))
	if err != nil {
		h.Logger.Error("failed to fetch service", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	if existing == nil || existing.AccountID != accountID(c) {
		utils.JSONError(c, http.StatusNotFound, "Service not found", "")
		return
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.Duration = req.Duration
	existing.Price = req.Price
	existing.Visible = req.Visible
	existing.CategoryID = req.CategoryID

	if err := h.Services.Update(existing); err != nil {
		h.Logger.Error("failed to update service", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"service": existing})
}

// GetBookingPage returns the owner's page settings.
func (h *OwnerHandler) GetBookingPage(c *gin.Context) {
	account, err := h.Accounts.GetByID(accountID(c))
	if err != nil || account == nil {
		h.Logger.Error("failed to fetch account", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subdomain":    account.Subdomain,
		"booking_page": account.BookingPage,
	})
}

// UpdateBookingPage replaces the owner's page settings. The timezone
// identifier is stored as given; it is validated when bookings resolve it.
func (h *OwnerHandler) UpdateBookingPage(c *gin.Context) {
	var page models.BookingPage
	if err := c.ShouldBindJSON(&page); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing or malformed page settings", "")
		return
	}

	if err := h.Accounts.UpdateBookingPage(accountID(c), &page); err != nil {
		h.Logger.Error("failed to update booking page", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking_page": page})
}
