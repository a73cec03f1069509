package service

import (
	"context"
	"time"

	"legal_intake_backend/internal/conversation/domain"
)

// SessionStore is the keyed persistence collaborator for conversation state.
// Get returns apperr.KindNotFound when the session does not exist.
// No transactional semantics are assumed.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, sessionID string) error
	Ping(ctx context.Context) error
}

// LeadStore persists finalized lead snapshots.
type LeadStore interface {
	Save(ctx context.Context, lead *domain.Lead) error
}

// Alert is the structured payload delivered to the lawyer pool when a
// session qualifies.
type Alert struct {
	Name         string          `json:"name"`
	Phone        string          `json:"phone"`
	Category     string          `json:"category"`
	CaseDetails  string          `json:"case_details"`
	ContactInfo  string          `json:"contact_info"`
	Email        string          `json:"email"`
	Urgency      string          `json:"urgency"`
	Platform     domain.Platform `json:"platform"`
	Score        float64         `json:"qualification_score"`
	SessionID    string          `json:"session_id"`
	MessageCount int             `json:"message_count"`
	CurrentStep  domain.Step     `json:"current_step"`
}

// NotificationSink delivers a lead alert to the human operator pool and
// returns a delivery identifier.
type NotificationSink interface {
	Notify(ctx context.Context, alert Alert) (string, error)
}

// MessageSender delivers a text message to a phone-number-addressed identity.
type MessageSender interface {
	Send(ctx context.Context, phoneNumber, text string) error
	Health(ctx context.Context) error
}

// TextGenerator is the text-generation collaborator. The orchestrator uses it
// only as a liveness probe; conversation content is fully scripted.
type TextGenerator interface {
	Generate(ctx context.Context, prompt, sessionID string) (string, error)
}

// FollowUpScheduler enqueues a delayed check-in message for a finalized lead.
type FollowUpScheduler interface {
	ScheduleFollowUp(ctx context.Context, sessionID, phoneNumber, firstName string, runAt time.Time) error
}
