package handlers

import (
	"errors"
	"net/http"

	serviceRepo "bookable/database/repository/service"
	"bookable/models"
	"bookable/services/scheduling"
	"bookable/services/tenant"
	"bookable/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PublicHandler serves the unauthenticated booking-page endpoints. Every
// request re-resolves the account and re-checks its public flag; nothing is
// cached across requests.
type PublicHandler struct {
	Resolver *tenant.Resolver
	Engine   *scheduling.Engine
	Booking  *scheduling.BookingService
	Services serviceRepo.ServiceRepository
	Logger   *zap.Logger
}

// NewPublicHandler wires the public booking-page handler.
func NewPublicHandler(
	resolver *tenant.Resolver,
	engine *scheduling.Engine,
	booking *scheduling.BookingService,
	services serviceRepo.ServiceRepository,
	logger *zap.Logger,
) *PublicHandler {
	return &PublicHandler{
		Resolver: resolver,
		Engine:   engine,
		Booking:  booking,
		Services: services,
		Logger:   logger,
	}
}

// resolveBookable resolves the :account path parameter and enforces the
// public flag. A private account and a nonexistent one produce the same
// response, so callers cannot probe for account existence.
func (h *PublicHandler) resolveBookable(c *gin.Context) *models.Account {
	identifier := c.Param("account")

	account, err := h.Resolver.Resolve(identifier)
	if err != nil {
		h.Logger.Error("tenant resolution failed", zap.String("identifier", identifier), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
		return nil
	}
	if !h.Resolver.IsPubliclyBookable(account) {
		utils.JSONError(c, http.StatusNotFound, "Booking page not found", "")
		return nil
	}
	return account
}

// GetBusinessHours returns the page's weekly hours, timezone, and display
// options.
func (h *PublicHandler) GetBusinessHours(c *gin.Context) {
	account := h.resolveBookable(c)
	if account == nil {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subdomain": account.Subdomain,
		"business":  account.BusinessName,
		"timezone":  account.BookingPage.Timezone,
		"hours":     account.BookingPage.Hours,
		"display":   account.BookingPage.Display,
	})
}

// ListServices returns the account's publicly visible services.
func (h *PublicHandler) ListServices(c *gin.Context) {
	account := h.resolveBookable(c)
	if account == nil {
		return
	}

	services, err := h.Services.ListVisibleByAccount(account.ID)
	if err != nil {
		h.Logger.Error("failed to list visible services", zap.String("account_id", account.ID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	if services == nil {
		services = []models.Service{}
	}

	c.JSON(http.StatusOK, gin.H{"services": services})
}

// CheckAvailability is the advisory slot check backing the picker UI. The
// authoritative check runs again inside the booking commit.
func (h *PublicHandler) CheckAvailability(c *gin.Context) {
	account := h.resolveBookable(c)
	if account == nil {
		return
	}

	serviceID := c.Query("service_id")
	date := c.Query("date")
	clock := c.Query("time")
	if serviceID == "" || date == "" || clock == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing service_id, date or time", "")
		return
	}

	service, err := h.Services.GetByID(serviceID)
	if err != nil {
		h.Logger.Error("failed to fetch service", zap.String("service_id", serviceID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	if service == nil || service.AccountID != account.ID || !service.Visible {
		utils.JSONError(c, http.StatusNotFound, "Booking page not found", "")
		return
	}

	start, err := scheduling.ParseStart(account.BookingPage.Timezone, date, clock)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Malformed date or time", "")
		return
	}

	available, err := h.Engine.IsAvailable(account, service, start)
	if err != nil {
		h.Logger.Error("availability check failed", zap.String("account_id", account.ID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": available})
}

// CreateBooking commits a public booking.
func (h *PublicHandler) CreateBooking(c *gin.Context) {
	account := h.resolveBookable(c)
	if account == nil {
		return
	}

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing or malformed booking fields", "")
		return
	}

	confirmation, err := h.Booking.Commit(account, req)
	if err != nil {
		h.writeBookingError(c, account.ID, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"confirmation": confirmation,
	})
}

// writeBookingError maps commit outcomes to status codes. Not-found and
// not-public intentionally share one response body.
func (h *PublicHandler) writeBookingError(c *gin.Context, accountID string, err error) {
	switch {
	case errors.Is(err, scheduling.ErrInvalid):
		utils.JSONError(c, http.StatusBadRequest, "Missing or malformed booking fields", "")
	case errors.Is(err, scheduling.ErrNotFound), errors.Is(err, scheduling.ErrNotBookable):
		utils.JSONError(c, http.StatusNotFound, "Booking page not found", "")
	case errors.Is(err, scheduling.ErrConflict):
		utils.JSONError(c, http.StatusConflict, "Slot is no longer available", "")
	default:
		h.Logger.Error("booking commit failed", zap.String("account_id", accountID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
	}
}
