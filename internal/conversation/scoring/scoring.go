// Package scoring derives the lead qualification score from collected
// answers. The score is a pure projection of the current lead data, always in
// [0, 1], and monotonically non-decreasing as fields are filled in. Each field
// contributes independently for presence and again for richness, so the gate
// can safely re-evaluate it after every single answer.
package scoring

import (
	"strings"
	"unicode/utf8"

	"legal_intake_backend/internal/conversation/domain"
	"legal_intake_backend/internal/conversation/extract"
)

const (
	presenceWeight = 0.1
	maxScore       = 1.0
)

// areaKeywords marks answers that name one of the supported practice areas.
var areaKeywords = []string{"penal", "saude", "saúde", "criminal", "liminar", "medic", "plano"}

// Score computes the qualification score for the collected lead data.
// The platform does not change the weighting today; it is part of the
// contract so channel-specific models can be introduced without touching
// call sites.
func Score(data domain.LeadData, _ domain.Platform) float64 {
	score := identificationScore(data.Identification) +
		contactScore(data.ContactInfo) +
		areaScore(data.AreaQualification) +
		detailsScore(data.CaseDetails)

	return clampScore(score)
}

func identificationScore(name string) float64 {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < 3 {
		return 0
	}

	score := presenceWeight
	if len(strings.Fields(name)) >= 2 {
		score += presenceWeight
	}
	return score
}

func contactScore(contact string) float64 {
	if strings.TrimSpace(contact) == "" {
		return 0
	}

	score := presenceWeight
	if extract.HasPhone(contact) {
		score += presenceWeight
	}
	if extract.HasEmail(contact) {
		score += presenceWeight
	}
	return score
}

func areaScore(area string) float64 {
	if strings.TrimSpace(area) == "" {
		return 0
	}

	score := presenceWeight
	lower := strings.ToLower(area)
	for _, keyword := range areaKeywords {
		if strings.Contains(lower, keyword) {
			score += presenceWeight
			break
		}
	}
	return score
}

func detailsScore(details string) float64 {
	details = strings.TrimSpace(details)
	if details == "" {
		return 0
	}

	score := presenceWeight
	if utf8.RuneCountInString(details) >= 20 {
		score += presenceWeight
	}
	if utf8.RuneCountInString(details) >= 50 {
		score += presenceWeight
	}
	return score
}

func clampScore(score float64) float64 {
	if score > maxScore {
		return maxScore
	}
	if score < 0 {
		return 0
	}
	return score
}
