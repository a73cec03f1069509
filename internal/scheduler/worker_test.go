package scheduler

import (
	"context"
	"strings"
	"testing"
	"time"

	"legal_intake_backend/internal/conversation/domain"
	"legal_intake_backend/platform/apperr"
	"legal_intake_backend/platform/logger"
)

type fakeSessions struct {
	sessions map[string]*domain.Session
}

func (f *fakeSessions) Get(_ context.Context, sessionID string) (*domain.Session, error) {
	sess, ok := f.sessions[sessionID]
	if !ok {
		return nil, apperr.NotFound("session not found")
	}
	return sess, nil
}

func (f *fakeSessions) Save(_ context.Context, sess *domain.Session) error {
	f.sessions[sess.ID] = sess
	return nil
}

func (f *fakeSessions) Delete(_ context.Context, sessionID string) error {
	delete(f.sessions, sessionID)
	return nil
}

func (f *fakeSessions) Ping(context.Context) error { return nil }

type fakeMessenger struct {
	sent []string
}

func (f *fakeMessenger) Send(_ context.Context, _, text string) error {
	f.sent = append(f.sent, text)
	return nil
}

func newTestWorker(sessions *fakeSessions, sender *fakeMessenger) *Worker {
	return &Worker{
		sessions: sessions,
		sender:   sender,
		log:      logger.New("development"),
	}
}

func TestHandleFollowUpSendsCheckIn(t *testing.T) {
	sess := domain.NewSession("s1", domain.PlatformWeb, "5511999999999", time.Now())
	sessions := &fakeSessions{sessions: map[string]*domain.Session{"s1": sess}}
	sender := &fakeMessenger{}
	w := newTestWorker(sessions, sender)

	task, err := NewFollowUpTask(FollowUpPayload{SessionID: "s1", PhoneNumber: "5511999999999", FirstName: "João"})
	if err != nil {
		t.Fatalf("NewFollowUpTask: %v", err)
	}
	if err := w.handleFollowUp(context.Background(), task); err != nil {
		t.Fatalf("handleFollowUp: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.sent))
	}
	if !strings.Contains(sender.sent[0], "Olá, João!") {
		t.Fatalf("check-in text = %q", sender.sent[0])
	}
}

func TestHandleFollowUpSkipsNotifiedSession(t *testing.T) {
	sess := domain.NewSession("s1", domain.PlatformWeb, "5511999999999", time.Now())
	sess.LawyersNotified = true
	sessions := &fakeSessions{sessions: map[string]*domain.Session{"s1": sess}}
	sender := &fakeMessenger{}
	w := newTestWorker(sessions, sender)

	task, err := NewFollowUpTask(FollowUpPayload{SessionID: "s1", PhoneNumber: "5511999999999"})
	if err != nil {
		t.Fatalf("NewFollowUpTask: %v", err)
	}
	if err := w.handleFollowUp(context.Background(), task); err != nil {
		t.Fatalf("handleFollowUp: %v", err)
	}

	if len(sender.sent) != 0 {
		t.Fatalf("sent %d messages, want 0", len(sender.sent))
	}
}

func TestHandleFollowUpSkipsResetSession(t *testing.T) {
	sessions := &fakeSessions{sessions: map[string]*domain.Session{}}
	sender := &fakeMessenger{}
	w := newTestWorker(sessions, sender)

	task, err := NewFollowUpTask(FollowUpPayload{SessionID: "gone", PhoneNumber: "5511999999999"})
	if err != nil {
		t.Fatalf("NewFollowUpTask: %v", err)
	}
	if err := w.handleFollowUp(context.Background(), task); err != nil {
		t.Fatalf("handleFollowUp must not retry a reset session: %v", err)
	}

	if len(sender.sent) != 0 {
		t.Fatalf("sent %d messages, want 0", len(sender.sent))
	}
}
