package gate

import (
	"testing"

	"legal_intake_backend/internal/conversation/domain"
)

func qualifiedData() domain.LeadData {
	return domain.LeadData{
		Identification:    "João Silva",
		ContactInfo:       "11999999999 joao@email.com",
		AreaQualification: "Direito Penal",
		CaseDetails:       "Fui vítima de um crime patrimonial há duas semanas em São Paulo",
	}
}

func TestEvaluateWebQualifies(t *testing.T) {
	s := &domain.Session{
		Platform:      domain.PlatformWeb,
		CurrentStep:   domain.StepCompleted,
		FlowCompleted: true,
		LeadData:      qualifiedData(),
	}

	d := Evaluate(s)
	if !d.ShouldNotify {
		t.Fatalf("expected notification, got reason %q (score %v)", d.Reason, d.Score)
	}
	if d.Score < 0.8 {
		t.Fatalf("expected score >= 0.8, got %v", d.Score)
	}
}

func TestEvaluateWebRequiresCompletedFlow(t *testing.T) {
	s := &domain.Session{
		Platform:    domain.PlatformWeb,
		CurrentStep: domain.StepConfirmation,
		LeadData:    qualifiedData(),
	}

	d := Evaluate(s)
	if d.ShouldNotify {
		t.Fatal("web session must not notify before flow completion")
	}
	if d.Reason != ReasonFlowNotCompleted {
		t.Fatalf("reason = %q, want %q", d.Reason, ReasonFlowNotCompleted)
	}
}

func TestEvaluateWhatsAppEarlyQualification(t *testing.T) {
	data := qualifiedData()
	data.CaseDetails = ""

	s := &domain.Session{
		Platform:     domain.PlatformWhatsApp,
		CurrentStep:  domain.StepDetails,
		MessageCount: 4,
		LeadData:     data,
	}

	d := Evaluate(s)
	if !d.ShouldNotify {
		t.Fatalf("expected whatsapp early qualification, got reason %q (score %v)", d.Reason, d.Score)
	}
}

func TestEvaluateWhatsAppNeedsEngagement(t *testing.T) {
	s := &domain.Session{
		Platform:     domain.PlatformWhatsApp,
		CurrentStep:  domain.StepDetails,
		MessageCount: 3,
		LeadData:     qualifiedData(),
	}

	d := Evaluate(s)
	if d.ShouldNotify {
		t.Fatal("whatsapp session must not notify below the message threshold")
	}
	if d.Reason != ReasonInsufficientEngagement {
		t.Fatalf("reason = %q, want %q", d.Reason, ReasonInsufficientEngagement)
	}
}

func TestEvaluateWhatsAppTooEarlyInFlow(t *testing.T) {
	s := &domain.Session{
		Platform:     domain.PlatformWhatsApp,
		CurrentStep:  domain.StepArea,
		MessageCount: 5,
		LeadData:     qualifiedData(),
	}

	d := Evaluate(s)
	if d.ShouldNotify {
		t.Fatal("whatsapp session must not notify before the details step")
	}
	if d.Reason != ReasonTooEarlyInFlow {
		t.Fatalf("reason = %q, want %q", d.Reason, ReasonTooEarlyInFlow)
	}
}

func TestEvaluateAlreadyNotifiedShortCircuits(t *testing.T) {
	s := &domain.Session{
		Platform:        domain.PlatformWeb,
		CurrentStep:     domain.StepCompleted,
		FlowCompleted:   true,
		LawyersNotified: true,
		LeadData:        qualifiedData(),
	}

	d := Evaluate(s)
	if d.ShouldNotify {
		t.Fatal("latched session must never notify again")
	}
	if d.Reason != ReasonAlreadyNotified {
		t.Fatalf("reason = %q, want %q", d.Reason, ReasonAlreadyNotified)
	}
}
