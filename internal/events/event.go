// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"legal_intake_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Conversation Domain Events
// =============================================================================

// ConversationCompleted is published when a session reaches the terminal step
// with all intake answers collected.
type ConversationCompleted struct {
	BaseEvent
	SessionID    string  `json:"sessionId"`
	Platform     string  `json:"platform"`
	MessageCount int     `json:"messageCount"`
	Score        float64 `json:"score"`
}

func (e ConversationCompleted) EventName() string { return "conversation.completed" }

// LeadCaptured is published when a finalized lead snapshot is persisted.
type LeadCaptured struct {
	BaseEvent
	LeadID    uuid.UUID `json:"leadId"`
	SessionID string    `json:"sessionId"`
	Platform  string    `json:"platform"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Area      string    `json:"area"`
	Score     float64   `json:"score"`
}

func (e LeadCaptured) EventName() string { return "conversation.lead.captured" }

// LawyersNotified is published when the notification gate fires and the
// lawyer pool alert is delivered.
type LawyersNotified struct {
	BaseEvent
	SessionID      string  `json:"sessionId"`
	Platform       string  `json:"platform"`
	NotificationID string  `json:"notificationId"`
	Score          float64 `json:"score"`
	Urgency        string  `json:"urgency"`
}

func (e LawyersNotified) EventName() string { return "conversation.lawyers.notified" }

// SessionReset is published when a session is explicitly discarded.
type SessionReset struct {
	BaseEvent
	SessionID string `json:"sessionId"`
}

func (e SessionReset) EventName() string { return "conversation.session.reset" }
