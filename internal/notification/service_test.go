package notification

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"legal_intake_backend/internal/conversation/domain"
	"legal_intake_backend/internal/conversation/service"
	"legal_intake_backend/internal/email"
	"legal_intake_backend/platform/logger"
)

type fakeMessenger struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]error
}

func (f *fakeMessenger) Send(_ context.Context, phoneNumber, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[phoneNumber]; ok {
		return err
	}
	f.sent = append(f.sent, phoneNumber)
	return nil
}

type fakeEmail struct {
	mu     sync.Mutex
	alerts []email.LeadAlert
}

func (f *fakeEmail) SendLeadAlert(_ context.Context, _ string, alert email.LeadAlert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, alert)
	return nil
}

type testConfig struct {
	phones []string
	email  string
}

func (c testConfig) GetLawyerPhones() []string { return c.phones }
func (c testConfig) GetAlertEmail() string     { return c.email }
func (c testConfig) GetFirmName() string       { return "m.lima Advogados Associados" }

func testAlert() service.Alert {
	return service.Alert{
		Name:        "João Silva",
		Phone:       "11999999999",
		Category:    "Direito Penal",
		CaseDetails: "Fui vítima de um crime patrimonial",
		Urgency:     "high",
		Platform:    domain.PlatformWhatsApp,
		Score:       0.9,
		SessionID:   "s1",
	}
}

func TestNotifyFansOut(t *testing.T) {
	messenger := &fakeMessenger{}
	mail := &fakeEmail{}
	svc := NewService(messenger, mail, testConfig{
		phones: []string{"5511911111111", "5511922222222"},
		email:  "plantao@mlima.adv.br",
	}, logger.New("development"))

	id, err := svc.Notify(context.Background(), testAlert())
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if id == "" {
		t.Fatal("notification id must be set")
	}
	if len(messenger.sent) != 2 {
		t.Fatalf("delivered to %d phones, want 2", len(messenger.sent))
	}
	if len(mail.alerts) != 1 {
		t.Fatalf("email copies = %d, want 1", len(mail.alerts))
	}
	if mail.alerts[0].Name != "João Silva" {
		t.Fatalf("email alert name = %q", mail.alerts[0].Name)
	}
}

func TestNotifyPartialFailureStillSucceeds(t *testing.T) {
	messenger := &fakeMessenger{failFor: map[string]error{
		"5511911111111": errors.New("unreachable"),
	}}
	svc := NewService(messenger, nil, testConfig{
		phones: []string{"5511911111111", "5511922222222"},
	}, logger.New("development"))

	if _, err := svc.Notify(context.Background(), testAlert()); err != nil {
		t.Fatalf("one landed delivery must succeed, got %v", err)
	}
	if len(messenger.sent) != 1 {
		t.Fatalf("delivered = %v", messenger.sent)
	}
}

func TestNotifyTotalFailure(t *testing.T) {
	messenger := &fakeMessenger{failFor: map[string]error{
		"5511911111111": errors.New("unreachable"),
	}}
	svc := NewService(messenger, nil, testConfig{
		phones: []string{"5511911111111"},
	}, logger.New("development"))

	if _, err := svc.Notify(context.Background(), testAlert()); err == nil {
		t.Fatal("all deliveries failing must error")
	}
}

func TestNotifyNoPhonesConfigured(t *testing.T) {
	svc := NewService(&fakeMessenger{}, nil, testConfig{}, logger.New("development"))

	if _, err := svc.Notify(context.Background(), testAlert()); err == nil {
		t.Fatal("missing recipient list must error")
	}
}

func TestAlertTextUrgency(t *testing.T) {
	high := alertText(testAlert())
	if !strings.Contains(high, "URGENTE") {
		t.Fatalf("high urgency must be tagged, got %q", high)
	}

	normal := testAlert()
	normal.Urgency = "normal"
	if strings.Contains(alertText(normal), "URGENTE") {
		t.Fatal("normal urgency must not be tagged urgent")
	}
	if !strings.Contains(alertText(normal), "NOVO LEAD QUALIFICADO") {
		t.Fatal("alert header missing")
	}
}
