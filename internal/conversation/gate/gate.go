// Package gate decides when the lawyer pool is alerted about a session.
// Evaluation is pure; executing the notification and persisting the latch is
// the orchestrator's job. The criteria are asymmetric on purpose: the web
// widget collects everything in one uninterrupted flow so it qualifies on the
// completed flow, while WhatsApp conversations qualify on sustained engagement
// plus partial data because a clean completion signal may never arrive there.
package gate

import (
	"strings"
	"unicode/utf8"

	"legal_intake_backend/internal/conversation/domain"
	"legal_intake_backend/internal/conversation/scoring"
)

const (
	webScoreThreshold      = 0.8
	whatsappScoreThreshold = 0.7
	whatsappMinMessages    = 4
	minIdentificationLen   = 3
	minAreaLen             = 3
	minDetailsLen          = 15
)

// Decision reasons surfaced to callers and logs.
const (
	ReasonAlreadyNotified        = "already_notified"
	ReasonQualified              = "qualified"
	ReasonFlowNotCompleted       = "flow_not_completed"
	ReasonIncompleteLeadData     = "incomplete_lead_data"
	ReasonScoreBelowThreshold    = "score_below_threshold"
	ReasonInsufficientEngagement = "insufficient_engagement"
	ReasonTooEarlyInFlow         = "too_early_in_flow"
)

// Decision is the outcome of one gate evaluation.
type Decision struct {
	ShouldNotify bool    `json:"should_notify"`
	Reason       string  `json:"reason"`
	Score        float64 `json:"qualification_score"`
}

// Evaluate applies the per-platform qualification criteria to the session.
// The already-notified latch short-circuits everything else.
func Evaluate(s *domain.Session) Decision {
	score := scoring.Score(s.LeadData, s.Platform)

	if s.LawyersNotified {
		return Decision{ShouldNotify: false, Reason: ReasonAlreadyNotified, Score: score}
	}

	if s.Platform == domain.PlatformWhatsApp {
		return evaluateWhatsApp(s, score)
	}
	return evaluateWeb(s, score)
}

func evaluateWeb(s *domain.Session, score float64) Decision {
	if !s.FlowCompleted {
		return Decision{Reason: ReasonFlowNotCompleted, Score: score}
	}

	data := s.LeadData
	complete := runeLen(data.Identification) >= minIdentificationLen &&
		strings.TrimSpace(data.ContactInfo) != "" &&
		strings.TrimSpace(data.AreaQualification) != "" &&
		runeLen(data.CaseDetails) >= minDetailsLen
	if !complete {
		return Decision{Reason: ReasonIncompleteLeadData, Score: score}
	}

	if score < webScoreThreshold {
		return Decision{Reason: ReasonScoreBelowThreshold, Score: score}
	}

	return Decision{ShouldNotify: true, Reason: ReasonQualified, Score: score}
}

func evaluateWhatsApp(s *domain.Session, score float64) Decision {
	if s.MessageCount < whatsappMinMessages {
		return Decision{Reason: ReasonInsufficientEngagement, Score: score}
	}

	data := s.LeadData
	complete := runeLen(data.Identification) >= minIdentificationLen &&
		strings.TrimSpace(data.ContactInfo) != "" &&
		runeLen(data.AreaQualification) >= minAreaLen
	if !complete {
		return Decision{Reason: ReasonIncompleteLeadData, Score: score}
	}

	switch s.CurrentStep {
	case domain.StepDetails, domain.StepConfirmation, domain.StepCompleted:
	default:
		return Decision{Reason: ReasonTooEarlyInFlow, Score: score}
	}

	if score < whatsappScoreThreshold {
		return Decision{Reason: ReasonScoreBelowThreshold, Score: score}
	}

	return Decision{ShouldNotify: true, Reason: ReasonQualified, Score: score}
}

func runeLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}
