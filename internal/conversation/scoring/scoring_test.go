package scoring

import (
	"testing"

	"legal_intake_backend/internal/conversation/domain"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		data domain.LeadData
		want float64
	}{
		{
			name: "empty data scores zero",
			data: domain.LeadData{},
			want: 0,
		},
		{
			name: "full name only",
			data: domain.LeadData{Identification: "João Silva"},
			want: 0.2,
		},
		{
			name: "short single name",
			data: domain.LeadData{Identification: "Jo"},
			want: 0,
		},
		{
			name: "contact with phone and email",
			data: domain.LeadData{ContactInfo: "11999999999 joao@email.com"},
			want: 0.3,
		},
		{
			name: "contact without phone or email still counts presence",
			data: domain.LeadData{ContactInfo: "me liga depois"},
			want: 0.1,
		},
		{
			name: "area with keyword",
			data: domain.LeadData{AreaQualification: "Direito Penal"},
			want: 0.2,
		},
		{
			name: "area without keyword",
			data: domain.LeadData{AreaQualification: "trabalhista"},
			want: 0.1,
		},
		{
			name: "long details",
			data: domain.LeadData{CaseDetails: "Fui vítima de um crime patrimonial há duas semanas em São Paulo"},
			want: 0.3,
		},
		{
			name: "fully qualified lead caps at one",
			data: domain.LeadData{
				Identification:    "João Silva",
				ContactInfo:       "11999999999 joao@email.com",
				AreaQualification: "Direito Penal",
				CaseDetails:       "Fui vítima de um crime patrimonial há duas semanas em São Paulo",
			},
			want: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.data, domain.PlatformWeb)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Fatalf("Score = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreMonotonic(t *testing.T) {
	steps := []domain.LeadData{
		{},
		{Identification: "João Silva"},
		{Identification: "João Silva", ContactInfo: "11999999999 joao@email.com"},
		{Identification: "João Silva", ContactInfo: "11999999999 joao@email.com", AreaQualification: "Direito Penal"},
		{Identification: "João Silva", ContactInfo: "11999999999 joao@email.com", AreaQualification: "Direito Penal", CaseDetails: "Fui vítima de um crime patrimonial há duas semanas em São Paulo"},
	}

	for _, platform := range []domain.Platform{domain.PlatformWeb, domain.PlatformWhatsApp} {
		prev := -1.0
		for i, data := range steps {
			got := Score(data, platform)
			if got < prev {
				t.Fatalf("score decreased at step %d on %s: %v -> %v", i, platform, prev, got)
			}
			prev = got
		}
	}
}
