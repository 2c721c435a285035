package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"naija-events/internal/config"
	"naija-events/internal/database"
	"naija-events/internal/handlers"
	"naija-events/internal/logger"
	"naija-events/internal/middleware"
	"naija-events/internal/repositories"
	"naija-events/internal/services"
	"naija-events/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.Must(cfg.Log)
	defer log.Sync() //nolint:errcheck

	ctx := context.Background()

	db, err := database.NewConnection(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.RunMigrations(ctx); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Repositories
	store := repositories.NewStore(db.DB)
	userRepo := repositories.NewUserRepository(db.DB)
	eventRepo := repositories.NewEventRepository(db.DB)
	ticketRepo := repositories.NewTicketRepository(db.DB)
	orderRepo := repositories.NewOrderRepository(db.DB)

	// Services
	credentials := services.NewTicketCredentialService(cfg.Tickets.QRCodeSize)
	authService := services.NewAuthService(userRepo, utils.NewPasswordHasher(nil), log)
	eventService := services.NewEventService(eventRepo, ticketRepo, store, cfg.Tickets.Currency, log)
	checkoutService := services.NewCheckoutService(store, eventRepo, credentials, log)
	orderService := services.NewOrderService(orderRepo, eventRepo)
	checkInService := services.NewCheckInService(store, eventRepo, ticketRepo, credentials, log)
	dashboardService := services.NewDashboardService(orderRepo, eventRepo)
	pdfService := services.NewPDFService(credentials, cfg.Tickets.Currency)

	// Sessions and login throttling
	sessionManager := middleware.NewSessionManager(middleware.NewSessionStore(cfg.Session), cfg.Session.Name, authService, log)
	loginLimiter := middleware.NewLoginRateLimiter(5, 15*time.Minute)
	defer loginLimiter.Stop()

	router := handlers.NewRouter(handlers.RouterConfig{
		Log:            log,
		Sessions:       sessionManager,
		LoginLimiter:   loginLimiter,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RequestTimeout: cfg.Server.WriteTimeout,
		Health:         handlers.NewHealthHandler(db, log),
		Public:         handlers.NewPublicHandler(eventService, checkoutService, log),
		Auth:           handlers.NewAuthHandler(authService, sessionManager, log),
		Orders:         handlers.NewOrderHandler(orderService, pdfService, log),
		Organizer:      handlers.NewOrganizerEventHandler(eventService, log),
		Dashboard:      handlers.NewDashboardHandler(dashboardService, log),
		CheckIn:        handlers.NewCheckInHandler(checkInService, log),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Server.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
