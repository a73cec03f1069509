// Package conversation provides the guided intake bounded context module.
package conversation

import (
	"legal_intake_backend/internal/conversation/handler"
	"legal_intake_backend/internal/conversation/service"
	apphttp "legal_intake_backend/internal/http"
	"legal_intake_backend/platform/validator"
)

// Module is the conversation bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule wires the conversation handler on top of an initialized service.
func NewModule(svc *service.Service, val *validator.Validator) *Module {
	return &Module{
		handler: handler.New(svc, val),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "conversation"
}

// RegisterRoutes mounts conversation routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/conversation")
	group.POST("/start", m.handler.HandleStart)
	group.POST("/respond", m.handler.HandleRespond)
	group.POST("/submit-phone", m.handler.HandleSubmitPhone)
	group.GET("/status/:session_id", m.handler.HandleStatus)
	group.DELETE("/reset-session/:session_id", m.handler.HandleReset)
	group.GET("/service-status", m.handler.HandleServiceStatus)
	group.GET("/flow", m.handler.HandleFlow)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
