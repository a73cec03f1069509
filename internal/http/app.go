// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"context"

	"legal_intake_backend/internal/events"
	"legal_intake_backend/platform/config"
	"legal_intake_backend/platform/logger"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
	config.WebhookConfig
}

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type multiHealth []HealthChecker

func (m multiHealth) Ping(ctx context.Context) error {
	for _, check := range m {
		if check == nil {
			continue
		}
		if err := check.Ping(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ComposeHealth combines several checkers into one that pings each in order
// and reports the first failure. Nil entries are ignored.
func ComposeHealth(checks ...HealthChecker) HealthChecker {
	return multiHealth(checks)
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration.
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health is used for readiness/health checks (session store ping plus
	// the database pool when one is configured).
	Health HealthChecker
	// EventBus is the domain event bus for cross-module communication.
	EventBus events.Bus
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
