package handlers

import (
	"net/http"
	"strings"
	"time"

	accountRepo "bookable/database/repository/account"
	"bookable/models"
	"bookable/services/tenant"
	"bookable/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 24 * time.Hour

// AuthHandler serves owner registration and login. Both sit behind the
// auth-attempt rate limiter.
type AuthHandler struct {
	Accounts accountRepo.AccountRepository
	Resolver *tenant.Resolver
	Logger   *zap.Logger
}

// NewAuthHandler wires the owner auth handler.
func NewAuthHandler(accounts accountRepo.AccountRepository, resolver *tenant.Resolver, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Accounts: accounts, Resolver: resolver, Logger: logger}
}

type registerRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	BusinessName string `json:"business_name" binding:"required"`
}

// Register creates an account and assigns it a unique subdomain derived from
// the business name.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing or malformed registration fields", "")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Logger.Error("failed to hash password", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}

	account := &models.Account{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		BusinessName: strings.TrimSpace(req.BusinessName),
	}
	if err := h.Accounts.Create(account); err != nil {
		// Duplicate email surfaces through the unique index.
		utils.JSONError(c, http.StatusConflict, "An account with this email already exists", "")
		return
	}

	subdomain, err := h.Resolver.GenerateUniqueSubdomain(account.ID, account.BusinessName)
	if err != nil {
		// The account exists; the backfill will pick up the subdomain later.
		h.Logger.Warn("subdomain assignment failed at registration",
			zap.String("account_id", account.ID), zap.Error(err))
	}
	account.Subdomain = subdomain

	token, err := utils.GenerateToken(account.ID, account.Email, tokenLifetime)
	if err != nil {
		h.Logger.Error("failed to issue token", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"account": account,
		"token":   token,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates an owner and issues a JWT.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing or malformed credentials", "")
		return
	}

	account, err := h.Accounts.GetByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		h.Logger.Error("login lookup failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	if account == nil || bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)) != nil {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid email or password", "")
		return
	}

	token, err := utils.GenerateToken(account.ID, account.Email, tokenLifetime)
	if err != nil {
		h.Logger.Error("failed to issue token", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"account": account,
		"token":   token,
	})
}
