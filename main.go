// File: bookable/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookable/config"
	"bookable/database"
	accountRepo "bookable/database/repository/account"
	appointmentRepo "bookable/database/repository/appointment"
	clientRepo "bookable/database/repository/client"
	serviceRepo "bookable/database/repository/service"
	"bookable/handlers"
	"bookable/ratelimit"
	"bookable/routes"
	"bookable/services/scheduling"
	"bookable/services/tenant"
	"bookable/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()

	// Rate-limit counters: shared Redis store when configured, otherwise
	// per-process memory.
	var apiStore, authStore, bookingStore ratelimit.CounterStore
	if config.AppConfig.RedisAddr != "" {
		client := utils.GetLimiterClient()
		apiStore = ratelimit.NewRedisStore(client, "rl:api")
		authStore = ratelimit.NewRedisStore(client, "rl:auth")
		bookingStore = ratelimit.NewRedisStore(client, "rl:booking")
	} else {
		apiStore = ratelimit.NewMemoryStore()
		authStore = ratelimit.NewMemoryStore()
		bookingStore = ratelimit.NewMemoryStore()
	}

	limiters := &routes.Limiters{
		API: ratelimit.New(
			config.AppConfig.APIRateLimit,
			time.Duration(config.AppConfig.APIRateWindowSec)*time.Second,
			apiStore, logger),
		Auth: ratelimit.New(
			config.AppConfig.AuthRateLimit,
			time.Duration(config.AppConfig.AuthRateWindowSec)*time.Second,
			authStore, logger),
		Booking: ratelimit.New(
			config.AppConfig.BookingRateLimit,
			time.Duration(config.AppConfig.BookingRateWindowSec)*time.Second,
			bookingStore, logger),
	}

	// Repositories.
	accounts := accountRepo.NewMongoAccountRepo()
	services := serviceRepo.NewMongoServiceRepo()
	clients := clientRepo.NewMongoClientRepo()
	appointments := appointmentRepo.NewMongoAppointmentRepo()

	// Services.
	resolver := tenant.NewResolver(accounts)
	engine := scheduling.NewEngine(appointments)
	booking := scheduling.NewBookingService(services, clients, appointments, engine, logger)

	// Handlers.
	handlerSet := &routes.Handlers{
		Public:   handlers.NewPublicHandler(resolver, engine, booking, services, logger),
		Auth:     handlers.NewAuthHandler(accounts, resolver, logger),
		Owner:    handlers.NewOwnerHandler(accounts, services, appointments, logger),
		Accounts: accounts,
	}

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	routes.RegisterRoutes(router, handlerSet, limiters)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
