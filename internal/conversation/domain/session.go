// Package domain holds the conversation aggregate: the session record that
// accumulates intake answers and the lead snapshot produced at finalization.
package domain

import (
	"strings"
	"time"
)

// Platform identifies the channel a conversation arrives on.
type Platform string

const (
	PlatformWeb      Platform = "web"
	PlatformWhatsApp Platform = "whatsapp"
)

// ParsePlatform maps a raw platform string onto a known channel,
// defaulting to web.
func ParsePlatform(raw string) Platform {
	if strings.EqualFold(strings.TrimSpace(raw), string(PlatformWhatsApp)) {
		return PlatformWhatsApp
	}
	return PlatformWeb
}

// Step is one state in the fixed intake question sequence.
type Step string

const (
	StepGreeting        Step = "greeting"
	StepName            Step = "step1_name"
	StepContact         Step = "step2_contact"
	StepArea            Step = "step3_area"
	StepDetails         Step = "step4_details"
	StepConfirmation    Step = "step5_confirmation"
	StepPhoneCollection Step = "phone_collection"
	StepCompleted       Step = "completed"
)

// LeadData is the set of answers collected over a conversation.
// Fields are populated incrementally and never cleared.
type LeadData struct {
	Identification    string `json:"identification,omitempty"`
	ContactInfo       string `json:"contact_info,omitempty"`
	AreaQualification string `json:"area_qualification,omitempty"`
	CaseDetails       string `json:"case_details,omitempty"`
	Confirmation      string `json:"confirmation,omitempty"`
	Phone             string `json:"phone,omitempty"`
	Email             string `json:"email,omitempty"`
}

// FirstName returns the first token of the collected identification.
func (d LeadData) FirstName() string {
	fields := strings.Fields(d.Identification)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Session is one conversation's accumulated state, keyed by an opaque
// identifier supplied by the caller. It is mutated only by the orchestrator.
type Session struct {
	ID               string    `json:"session_id"`
	Platform         Platform  `json:"platform"`
	CurrentStep      Step      `json:"current_step"`
	LeadData         LeadData  `json:"lead_data"`
	PhoneNumber      string    `json:"phone_number,omitempty"`
	MessageCount     int       `json:"message_count"`
	FlowCompleted    bool      `json:"flow_completed"`
	PhoneSubmitted   bool      `json:"phone_submitted"`
	LawyersNotified  bool      `json:"lawyers_notified"`
	FirstInteraction bool      `json:"first_interaction"`
	CreatedAt        time.Time `json:"created_at"`
	LastUpdated      time.Time `json:"last_updated"`
}

// NewSession creates a fresh session positioned at the greeting step.
func NewSession(id string, platform Platform, phoneNumber string, now time.Time) *Session {
	return &Session{
		ID:               id,
		Platform:         platform,
		CurrentStep:      StepGreeting,
		PhoneNumber:      phoneNumber,
		FirstInteraction: true,
		CreatedAt:        now,
		LastUpdated:      now,
	}
}

// Touch records one processed inbound message.
func (s *Session) Touch(now time.Time) {
	s.MessageCount++
	s.LastUpdated = now
}
