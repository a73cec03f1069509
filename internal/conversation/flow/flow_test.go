package flow

import (
	"strings"
	"testing"
	"time"

	"legal_intake_backend/internal/conversation/domain"
)

type testConfig struct{}

func (testConfig) GetFirmName() string { return "m.lima Advogados Associados" }

func newTestFlow(t *testing.T) *Flow {
	t.Helper()
	f, err := New(testConfig{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f
}

func TestValidate(t *testing.T) {
	f := newTestFlow(t)

	tests := []struct {
		name   string
		step   domain.Step
		answer string
		ok     bool
	}{
		{"full name passes", domain.StepName, "João Silva", true},
		{"single token fails", domain.StepName, "Maria", false},
		{"too short fails", domain.StepName, "a", false},
		{"phone passes contact", domain.StepContact, "11999999999", true},
		{"email passes contact", domain.StepContact, "joao@email.com", true},
		{"neither fails contact", domain.StepContact, "me liga depois", false},
		{"penal keyword passes", domain.StepArea, "Direito Penal", true},
		{"saude keyword passes", domain.StepArea, "problema com plano de saúde", true},
		{"unknown area fails", domain.StepArea, "trabalhista", false},
		{"long details pass", domain.StepDetails, "Fui vítima de um crime patrimonial", true},
		{"short details fail", domain.StepDetails, "processo", false},
		{"sim confirms", domain.StepConfirmation, "sim, pode prosseguir", true},
		{"unrelated answer fails confirmation", domain.StepConfirmation, "talvez depois", false},
		{"valid phone digits", domain.StepPhoneCollection, "(11) 99999-9999", true},
		{"short phone fails", domain.StepPhoneCollection, "999999", false},
		{"long phone fails", domain.StepPhoneCollection, "55119999999990000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errMsg, ok := f.Validate(tt.step, tt.answer)
			if ok != tt.ok {
				t.Fatalf("Validate(%s, %q) ok = %v, want %v (msg %q)", tt.step, tt.answer, ok, tt.ok, errMsg)
			}
			if !ok && errMsg == "" {
				t.Fatal("failed validation must carry an error message")
			}
		})
	}
}

func TestAdvanceWritesTrimmedAnswer(t *testing.T) {
	f := newTestFlow(t)
	s := domain.NewSession("s1", domain.PlatformWeb, "", time.Now())
	s.FirstInteraction = false
	s.CurrentStep = domain.StepName

	res := f.Advance(s, "  João Silva  ")
	if res.Invalid {
		t.Fatalf("unexpected validation failure: %s", res.Reply)
	}
	if s.LeadData.Identification != "João Silva" {
		t.Fatalf("identification = %q, want trimmed input", s.LeadData.Identification)
	}
	if s.CurrentStep != domain.StepContact {
		t.Fatalf("current step = %s, want %s", s.CurrentStep, domain.StepContact)
	}
	if !strings.Contains(res.Reply, "João") {
		t.Fatalf("next question should greet by first name, got %q", res.Reply)
	}
}

func TestAdvanceInvalidKeepsState(t *testing.T) {
	f := newTestFlow(t)
	s := domain.NewSession("s1", domain.PlatformWeb, "", time.Now())
	s.FirstInteraction = false
	s.CurrentStep = domain.StepName

	res := f.Advance(s, "Maria")
	if !res.Invalid {
		t.Fatal("single-token name must fail validation")
	}
	if s.CurrentStep != domain.StepName {
		t.Fatalf("step advanced on invalid input: %s", s.CurrentStep)
	}
	if s.LeadData.Identification != "" {
		t.Fatalf("lead data mutated on invalid input: %q", s.LeadData.Identification)
	}
}

func TestAdvanceContactExtraction(t *testing.T) {
	f := newTestFlow(t)
	s := domain.NewSession("s1", domain.PlatformWeb, "", time.Now())
	s.FirstInteraction = false
	s.CurrentStep = domain.StepContact
	s.LeadData.Identification = "João Silva"

	res := f.Advance(s, "11999999999 joao@email.com")
	if res.Invalid {
		t.Fatalf("unexpected validation failure: %s", res.Reply)
	}
	if s.LeadData.Phone != "11999999999" {
		t.Fatalf("phone = %q, want extracted run", s.LeadData.Phone)
	}
	if s.LeadData.Email != "joao@email.com" {
		t.Fatalf("email = %q, want extracted address", s.LeadData.Email)
	}
}

func TestAdvanceFirstInteractionSkipsValidation(t *testing.T) {
	f := newTestFlow(t)
	s := domain.NewSession("s1", domain.PlatformWeb, "", time.Now())

	res := f.Advance(s, "oi")
	if res.Invalid || res.Finalize {
		t.Fatal("first interaction must emit the scripted first question")
	}
	if s.FirstInteraction {
		t.Fatal("first interaction flag must be consumed")
	}
	if s.CurrentStep != domain.StepName {
		t.Fatalf("current step = %s, want %s", s.CurrentStep, domain.StepName)
	}
}

func TestAdvanceTerminalStepTriggersFinalize(t *testing.T) {
	f := newTestFlow(t)
	s := domain.NewSession("s1", domain.PlatformWeb, "", time.Now())
	s.FirstInteraction = false
	s.CurrentStep = domain.StepConfirmation
	s.LeadData = domain.LeadData{
		Identification:    "João Silva",
		ContactInfo:       "11999999999 joao@email.com",
		AreaQualification: "Direito Penal",
		CaseDetails:       "Fui vítima de um crime patrimonial há duas semanas em São Paulo",
		Phone:             "11999999999",
	}

	res := f.Advance(s, "sim")
	if !res.Finalize {
		t.Fatal("confirmation must reach the terminal step")
	}
	if !s.FlowCompleted {
		t.Fatal("flow_completed must latch on terminal step")
	}
	if s.CurrentStep != domain.StepCompleted {
		t.Fatalf("current step = %s, want %s", s.CurrentStep, domain.StepCompleted)
	}
	if !res.GateEvaluated {
		t.Fatal("gate must be evaluated on the final answer")
	}
}

func TestAdvanceCompletedWithoutPhoneEntersPhoneCollection(t *testing.T) {
	f := newTestFlow(t)
	s := domain.NewSession("s1", domain.PlatformWeb, "", time.Now())
	s.FirstInteraction = false
	s.CurrentStep = domain.StepCompleted
	s.LeadData.Identification = "João Silva"

	res := f.Advance(s, "oi de novo")
	if s.CurrentStep != domain.StepPhoneCollection {
		t.Fatalf("current step = %s, want %s", s.CurrentStep, domain.StepPhoneCollection)
	}
	if !strings.Contains(res.Reply, "WhatsApp") {
		t.Fatalf("expected phone prompt, got %q", res.Reply)
	}
}

func TestAdvancePhoneCollectionFinalizes(t *testing.T) {
	f := newTestFlow(t)
	s := domain.NewSession("s1", domain.PlatformWeb, "", time.Now())
	s.FirstInteraction = false
	s.CurrentStep = domain.StepPhoneCollection
	s.LeadData.Identification = "João Silva"

	res := f.Advance(s, "(11) 98765-4321")
	if !res.Finalize {
		t.Fatal("valid phone must trigger finalization")
	}
	if s.LeadData.Phone != "11987654321" {
		t.Fatalf("phone = %q, want digit-only value", s.LeadData.Phone)
	}
	if !s.PhoneSubmitted {
		t.Fatal("phone_submitted must latch")
	}
}

func TestAdvanceCorruptedStateResets(t *testing.T) {
	f := newTestFlow(t)
	s := domain.NewSession("s1", domain.PlatformWeb, "", time.Now())
	s.FirstInteraction = false
	s.CurrentStep = domain.Step("garbage")

	res := f.Advance(s, "qualquer coisa")
	if s.CurrentStep != domain.StepGreeting {
		t.Fatalf("corrupted state must reset to greeting, got %s", s.CurrentStep)
	}
	if !s.FirstInteraction {
		t.Fatal("reset must re-arm the first interaction flag")
	}
	if !strings.Contains(res.Reply, "Bem-vindo") {
		t.Fatalf("expected greeting reply, got %q", res.Reply)
	}
}

func TestGreetingVariesByTimeOfDay(t *testing.T) {
	f := newTestFlow(t)

	morning := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 1, 21, 0, 0, 0, time.UTC)

	if !strings.HasPrefix(f.Greeting(morning), "Bom dia") {
		t.Fatalf("morning greeting = %q", f.Greeting(morning))
	}
	if !strings.HasPrefix(f.Greeting(evening), "Boa noite") {
		t.Fatalf("evening greeting = %q", f.Greeting(evening))
	}
	if !strings.Contains(f.Greeting(morning), "m.lima Advogados Associados") {
		t.Fatal("greeting must carry the firm name")
	}
}

func TestStepsOrdered(t *testing.T) {
	f := newTestFlow(t)

	steps := f.Steps()
	if len(steps) != 6 {
		t.Fatalf("expected 6 scripted steps, got %d", len(steps))
	}
	if steps[0].Step != domain.StepName || steps[len(steps)-1].Step != domain.StepPhoneCollection {
		t.Fatalf("unexpected step order: %v", steps)
	}
}
