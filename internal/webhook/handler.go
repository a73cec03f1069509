package webhook

import (
	"net/http"
	"strings"

	"legal_intake_backend/internal/conversation/domain"
	"legal_intake_backend/internal/conversation/service"
	"legal_intake_backend/platform/httpkit"
	"legal_intake_backend/platform/logger"
	"legal_intake_backend/platform/phone"
	"legal_intake_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// InboundMessage is the payload posted by the WhatsApp bridge for each
// received message. PhoneNumber may be raw digits or a full JID.
type InboundMessage struct {
	PhoneNumber string `json:"phone_number" validate:"required,min=10,max=64"`
	Message     string `json:"message" validate:"required,min=1,max=4000"`
	PushName    string `json:"push_name" validate:"omitempty,max=128"`
}

// Handler receives inbound WhatsApp messages and feeds them into the
// conversation flow.
type Handler struct {
	service *service.Service
	val     *validator.Validator
	log     *logger.Logger
}

func NewHandler(svc *service.Service, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{service: svc, val: val, log: log}
}

// HandleInbound processes one message from the bridge. The session is keyed
// by the sender's phone so the same contact always resumes their flow. The
// bot reply is returned in the HTTP response body; the bridge relays it back
// to the sender, so no outbound send happens here.
// POST /api/v1/webhook/whatsapp
func (h *Handler) HandleInbound(c *gin.Context) {
	var req InboundMessage
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.val.Struct(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	digits := phone.Digits(stripJID(req.PhoneNumber))
	if len(digits) < 10 {
		httpkit.Error(c, http.StatusBadRequest, "validation error", "phone number too short")
		return
	}

	sessionID := "whatsapp_" + digits
	h.log.Debug("webhook message received", "session_id", sessionID, "push_name", req.PushName)

	result := h.service.ProcessMessage(c.Request.Context(), req.Message, sessionID, domain.PlatformWhatsApp, digits)

	httpkit.OK(c, gin.H{
		"session_id": result.SessionID,
		"response":   result.Response,
	})
}

func stripJID(phoneNumber string) string {
	if at := strings.IndexByte(phoneNumber, '@'); at >= 0 {
		return phoneNumber[:at]
	}
	return phoneNumber
}
