// Package webhook provides the inbound WhatsApp webhook bounded context.
package webhook

import (
	"legal_intake_backend/internal/conversation/service"
	apphttp "legal_intake_backend/internal/http"
	"legal_intake_backend/platform/logger"
	"legal_intake_backend/platform/validator"
)

// Module is the webhook bounded context module implementing http.Module.
type Module struct {
	handler *Handler
}

// NewModule creates the webhook module on top of the conversation service.
func NewModule(svc *service.Service, val *validator.Validator, log *logger.Logger) *Module {
	return &Module{
		handler: NewHandler(svc, val, log),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "webhook"
}

// RegisterRoutes mounts webhook routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/webhook")
	group.Use(ctx.WebhookRateLimiter.RateLimit())
	group.Use(APIKeyAuthMiddleware(ctx.Config))
	group.POST("/whatsapp", m.handler.HandleInbound)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
