package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"guestpass-backend/config"
	"guestpass-backend/handlers"
	"guestpass-backend/mailer"
	"guestpass-backend/services"
	"guestpass-backend/store"
	"guestpass-backend/token"
)

// openStore connects the configured backend. The returned func releases its connections.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pool, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		pg := store.NewPostgresStore(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return pg, pool.Close, nil

	case config.BackendRedis:
		client, err := store.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return store.NewRedisStore(client), func() { client.Close() }, nil

	default:
		log.Warn("Using in-memory store, registrations will not survive a restart")
		return store.NewMemoryStore(), func() {}, nil
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.SetupLogging()
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	guestStore, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("unable to open %s store: %w", cfg.StoreBackend, err)
	}
	defer closeStore()

	// Services
	checkinService := services.NewCheckinService(guestStore, cfg.EventDays)
	registrationService := services.NewRegistrationService(guestStore, token.NewUUIDIssuer(), mailer.NewLogMailer(), cfg.CheckInBaseURL, cfg.QRSize)
	statsService := services.NewStatsService(guestStore, cfg.EventDays)

	router := handlers.SetupRouter(handlers.RouterConfig{
		Registration: handlers.NewRegistrationHandler(registrationService),
		Checkin:      handlers.NewCheckinHandler(checkinService),
		Guest:        handlers.NewGuestHandler(checkinService, cfg.CheckInBaseURL, cfg.QRSize),
		Dashboard:    handlers.NewDashboardHandler(statsService),
		Health:       guestStore,
		CORSOrigins:  cfg.CORSOrigins,
		AdminToken:   cfg.AdminToken,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{
			"port":    cfg.Port,
			"backend": cfg.StoreBackend,
			"days":    cfg.EventDays,
		}).Info("Server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutdown signal received, cleaning up...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
