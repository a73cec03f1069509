// Package handler exposes the conversation API over HTTP.
package handler

import (
	"net/http"

	"legal_intake_backend/internal/conversation/domain"
	"legal_intake_backend/internal/conversation/service"
	"legal_intake_backend/internal/conversation/transport"
	"legal_intake_backend/platform/httpkit"
	"legal_intake_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	errInvalidRequest = "invalid request body"
	errValidation     = "validation error"
)

type Handler struct {
	service *service.Service
	val     *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{service: svc, val: val}
}

// HandleStart opens a conversation and returns the greeting.
// POST /api/v1/conversation/start
func (h *Handler) HandleStart(c *gin.Context) {
	sessionID, greeting := h.service.StartConversation()

	httpkit.OK(c, transport.StartResponse{
		SessionID: sessionID,
		Response:  greeting,
	})
}

// HandleRespond processes one user message.
// POST /api/v1/conversation/respond
func (h *Handler) HandleRespond(c *gin.Context) {
	var req transport.RespondRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	platform := domain.ParsePlatform(req.Platform)
	result := h.service.ProcessMessage(c.Request.Context(), req.Message, req.SessionID, platform, req.PhoneNumber)

	httpkit.OK(c, result)
}

// HandleSubmitPhone stores a phone number and finalizes the session.
// POST /api/v1/conversation/submit-phone
func (h *Handler) HandleSubmitPhone(c *gin.Context) {
	var req transport.SubmitPhoneRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	result, err := h.service.SubmitPhone(c.Request.Context(), req.SessionID, req.PhoneNumber)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// HandleStatus returns the stored state of one session.
// GET /api/v1/conversation/status/:session_id
func (h *Handler) HandleStatus(c *gin.Context) {
	status, err := h.service.SessionStatus(c.Request.Context(), c.Param("session_id"))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, status)
}

// HandleReset discards a session.
// DELETE /api/v1/conversation/reset-session/:session_id
func (h *Handler) HandleReset(c *gin.Context) {
	if err := h.service.ResetSession(c.Request.Context(), c.Param("session_id")); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"status": "reset"})
}

// HandleServiceStatus reports collaborator health.
// GET /api/v1/conversation/service-status
func (h *Handler) HandleServiceStatus(c *gin.Context) {
	httpkit.OK(c, h.service.ServiceStatus(c.Request.Context()))
}

// HandleFlow describes the scripted question sequence.
// GET /api/v1/conversation/flow
func (h *Handler) HandleFlow(c *gin.Context) {
	httpkit.OK(c, gin.H{"steps": h.service.FlowSteps()})
}

func (h *Handler) bindAndValidate(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, errInvalidRequest, err.Error())
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, errValidation, err.Error())
		return false
	}
	return true
}
