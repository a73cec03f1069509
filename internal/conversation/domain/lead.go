package domain

import (
	"time"

	"github.com/google/uuid"
)

// Answer field identifiers used in the persisted lead snapshot.
// 99 is the synthetic entry carrying the extracted phone digits.
const (
	FieldIdentification    = 1
	FieldContactInfo       = 2
	FieldAreaQualification = 3
	FieldCaseDetails       = 4
	FieldConfirmation      = 5
	FieldExtractedPhone    = 99
)

// LeadAnswer is one collected answer keyed by its field identifier.
type LeadAnswer struct {
	FieldID int    `json:"field_id"`
	Answer  string `json:"answer"`
}

// Lead is the immutable snapshot of a qualified session, produced once at
// finalization and never mutated afterwards.
type Lead struct {
	ID        uuid.UUID    `json:"id"`
	SessionID string       `json:"session_id"`
	Platform  Platform     `json:"platform"`
	Phone     string       `json:"phone"`
	Score     float64      `json:"qualification_score"`
	Answers   []LeadAnswer `json:"answers"`
	CreatedAt time.Time    `json:"created_at"`
}

// SnapshotLead builds the lead record from the session's collected answers.
// Only non-empty fields are included; the extracted phone digits are appended
// as a synthetic extra entry.
func SnapshotLead(s *Session, phone string, score float64, now time.Time) *Lead {
	ordered := []struct {
		id    int
		value string
	}{
		{FieldIdentification, s.LeadData.Identification},
		{FieldContactInfo, s.LeadData.ContactInfo},
		{FieldAreaQualification, s.LeadData.AreaQualification},
		{FieldCaseDetails, s.LeadData.CaseDetails},
		{FieldConfirmation, s.LeadData.Confirmation},
	}

	answers := make([]LeadAnswer, 0, len(ordered)+1)
	for _, entry := range ordered {
		if entry.value != "" {
			answers = append(answers, LeadAnswer{FieldID: entry.id, Answer: entry.value})
		}
	}
	if phone != "" {
		answers = append(answers, LeadAnswer{FieldID: FieldExtractedPhone, Answer: phone})
	}

	return &Lead{
		ID:        uuid.New(),
		SessionID: s.ID,
		Platform:  s.Platform,
		Phone:     phone,
		Score:     score,
		Answers:   answers,
		CreatedAt: now,
	}
}
