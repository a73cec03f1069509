package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"legal_intake_backend/internal/conversation"
	"legal_intake_backend/internal/conversation/flow"
	convrepo "legal_intake_backend/internal/conversation/repository"
	"legal_intake_backend/internal/conversation/service"
	"legal_intake_backend/internal/email"
	"legal_intake_backend/internal/events"
	apphttp "legal_intake_backend/internal/http"
	"legal_intake_backend/internal/http/router"
	leadrepo "legal_intake_backend/internal/leads/repository"
	"legal_intake_backend/internal/notification"
	"legal_intake_backend/internal/scheduler"
	"legal_intake_backend/internal/textgen"
	"legal_intake_backend/internal/webhook"
	"legal_intake_backend/internal/whatsapp"
	"legal_intake_backend/migrations"
	"legal_intake_backend/platform/config"
	"legal_intake_backend/platform/db"
	"legal_intake_backend/platform/logger"
	"legal_intake_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	sessions := initSessionStore(cfg, log)
	leadStore, pool := initLeadStore(ctx, cfg, log)

	health := []apphttp.HealthChecker{sessions}
	if pool != nil {
		defer pool.Close()
		health = append(health, db.NewPoolAdapter(pool))
	}

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)
	events.SubscribeAuditLog(eventBus, log)

	// Shared validator instance for dependency injection
	val := validator.New()

	whatsappClient := whatsapp.NewClient(cfg, log)
	if whatsappClient == nil {
		log.Warn("WHATSAPP_SERVICE_URL not configured; outbound messages disabled")
	}

	emailSender := email.NewSMTPSender(cfg)
	if emailSender == nil {
		log.Info("email alerts disabled")
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	intakeFlow, err := flow.New(cfg)
	if err != nil {
		log.Error("failed to load conversation flow", "error", err)
		panic("failed to load conversation flow: " + err.Error())
	}

	notifySink := notification.NewService(whatsappClient, emailSender, cfg, log)

	svc := service.New(sessions, leadStore, notifySink, whatsappClient, intakeFlow, eventBus, log)

	if gemini := initGemini(ctx, cfg, log); gemini != nil {
		svc.SetTextGenerator(gemini)
	}

	followUps, closeFollowUps := initFollowUpScheduler(cfg, log)
	if closeFollowUps != nil {
		defer closeFollowUps()
	}
	if followUps != nil {
		svc.SetFollowUpScheduler(followUps, cfg.FollowUpDelay)
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   apphttp.ComposeHealth(health...),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			conversation.NewModule(svc, val),
			webhook.NewModule(svc, val, log),
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initSessionStore prefers Redis and falls back to the in-memory store so
// the service still runs in development without infrastructure.
func initSessionStore(cfg *config.Config, log *logger.Logger) service.SessionStore {
	if cfg.RedisURL == "" {
		log.Warn("REDIS_URL not configured; using in-memory session store")
		return convrepo.NewMemorySessionStore(cfg.SessionTTL)
	}

	store, err := convrepo.NewRedisSessionStore(cfg)
	if err != nil {
		log.Error("failed to initialize redis session store", "error", err)
		panic("failed to initialize redis session store: " + err.Error())
	}
	log.Info("redis session store initialized", "ttl", cfg.SessionTTL)
	return store
}

// initLeadStore connects to Postgres when configured, running migrations
// first; otherwise lead snapshots stay in memory.
func initLeadStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (service.LeadStore, *pgxpool.Pool) {
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not configured; using in-memory lead store")
		return leadrepo.NewMemory(), nil
	}

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	log.Info("database connection established")

	return leadrepo.NewPostgres(pool), pool
}

func initGemini(ctx context.Context, cfg config.GeminiConfig, log *logger.Logger) *textgen.Gemini {
	if !cfg.IsGeminiEnabled() {
		log.Info("gemini text generation disabled")
		return nil
	}

	gemini, err := textgen.NewGemini(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize gemini client", "error", err)
		return nil
	}
	log.Info("gemini text generation initialized", "model", cfg.GetGeminiModel())
	return gemini
}

func initFollowUpScheduler(cfg config.SchedulerConfig, log *logger.Logger) (service.FollowUpScheduler, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; follow-up messages disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize follow-up scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
