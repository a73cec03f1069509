// Package service contains the conversation orchestrator: it owns session
// lifecycle, drives the flow state machine, executes the notification gate's
// decisions and runs lead finalization. All collaborator calls degrade to a
// textual response; nothing in here is fatal to a conversation turn.
package service

import (
	"context"
	"fmt"
	"time"

	"legal_intake_backend/internal/conversation/domain"
	"legal_intake_backend/internal/conversation/extract"
	"legal_intake_backend/internal/conversation/flow"
	"legal_intake_backend/internal/conversation/gate"
	"legal_intake_backend/internal/conversation/scoring"
	"legal_intake_backend/internal/events"
	"legal_intake_backend/platform/apperr"
	"legal_intake_backend/platform/logger"

	"github.com/google/uuid"
)

const (
	collaboratorTimeout = 10 * time.Second
	probeTimeout        = 5 * time.Second
	fallbackReply       = "Como posso ajudá-lo hoje?"
)

// Service is the conversation orchestrator.
type Service struct {
	sessions SessionStore
	leads    LeadStore
	sink     NotificationSink
	sender   MessageSender
	textGen  TextGenerator
	schedule FollowUpScheduler
	flow     *flow.Flow
	bus      events.Bus
	log      *logger.Logger

	followUpDelay time.Duration
	now           func() time.Time
}

// New wires the orchestrator with its required collaborators.
func New(sessions SessionStore, leads LeadStore, sink NotificationSink, sender MessageSender, fl *flow.Flow, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		sessions: sessions,
		leads:    leads,
		sink:     sink,
		sender:   sender,
		flow:     fl,
		bus:      bus,
		log:      log,
		now:      time.Now,
	}
}

// SetTextGenerator attaches the optional text-generation collaborator used
// for liveness probing.
func (s *Service) SetTextGenerator(gen TextGenerator) {
	s.textGen = gen
}

// SetFollowUpScheduler attaches the optional delayed follow-up scheduler.
func (s *Service) SetFollowUpScheduler(scheduler FollowUpScheduler, delay time.Duration) {
	s.schedule = scheduler
	s.followUpDelay = delay
}

// TurnResult is the outcome of one processed inbound message.
type TurnResult struct {
	SessionID          string          `json:"session_id"`
	Platform           domain.Platform `json:"platform"`
	Response           string          `json:"response"`
	CurrentStep        domain.Step     `json:"current_step"`
	FlowCompleted      bool            `json:"flow_completed"`
	LawyersNotified    bool            `json:"lawyers_notified"`
	PhoneSubmitted     bool            `json:"phone_submitted"`
	LeadData           domain.LeadData `json:"lead_data"`
	MessageCount       int             `json:"message_count"`
	QualificationScore float64         `json:"qualification_score"`
}

// ProcessMessage applies one inbound message to the session identified by
// sessionID, creating the session lazily on first contact. It never returns
// an empty response: any internal failure degrades to the scripted greeting.
func (s *Service) ProcessMessage(ctx context.Context, message, sessionID string, platform domain.Platform, phoneNumber string) (result *TurnResult) {
	log := s.log.WithSessionID(sessionID)

	defer func() {
		if r := recover(); r != nil {
			log.Error("conversation turn panicked", "panic", fmt.Sprint(r))
			result = s.fallbackResult(sessionID, platform)
		}
	}()

	sess, err := s.loadOrCreate(ctx, sessionID, platform, phoneNumber)
	if err != nil {
		log.CollaboratorError("session_store", "get", err)
		return s.fallbackResult(sessionID, platform)
	}

	res := s.flow.Advance(sess, message)
	reply := res.Reply

	if res.GateEvaluated && res.Gate.ShouldNotify {
		s.executeGate(ctx, sess, res.Gate)
	}

	if res.Finalize {
		reply = s.finalize(ctx, sess)
	}

	sess.Touch(s.now())
	if err := s.sessions.Save(ctx, sess); err != nil {
		log.CollaboratorError("session_store", "save", err)
	}

	if reply == "" {
		log.Warn("empty reply corrected", "step", string(sess.CurrentStep))
		reply = fallbackReply
	}

	log.ConversationTurn(sess.ID, string(sess.Platform), string(sess.CurrentStep), sess.MessageCount)
	return s.turnResult(sess, reply)
}

// StartConversation returns the scripted greeting and a fresh session
// identifier. The session itself is created lazily on the first inbound
// message, never here.
func (s *Service) StartConversation() (sessionID, greeting string) {
	return uuid.New().String(), s.flow.Greeting(s.now())
}

// SubmitPhone stores a phone number on an existing session and runs
// finalization.
func (s *Service) SubmitPhone(ctx context.Context, sessionID, rawPhone string) (*TurnResult, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.NotFound("sessão não encontrada")
		}
		return nil, apperr.Wrap(apperr.KindUnavailable, "falha ao carregar a sessão", err)
	}

	if errMsg, ok := s.flow.Validate(domain.StepPhoneCollection, rawPhone); !ok {
		return nil, apperr.Validation(errMsg)
	}

	sess.LeadData.Phone = digitsOf(rawPhone)
	sess.PhoneSubmitted = true
	sess.CurrentStep = domain.StepCompleted

	reply := s.finalize(ctx, sess)

	sess.LastUpdated = s.now()
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.log.CollaboratorError("session_store", "save", err)
	}

	return s.turnResult(sess, reply), nil
}

// SessionStatus describes the stored state of one conversation.
type SessionStatus struct {
	SessionID          string          `json:"session_id"`
	Platform           domain.Platform `json:"platform"`
	CurrentStep        domain.Step     `json:"current_step"`
	FlowCompleted      bool            `json:"flow_completed"`
	LawyersNotified    bool            `json:"lawyers_notified"`
	PhoneSubmitted     bool            `json:"phone_submitted"`
	LeadData           domain.LeadData `json:"lead_data"`
	MessageCount       int             `json:"message_count"`
	QualificationScore float64         `json:"qualification_score"`
	CreatedAt          time.Time       `json:"created_at"`
	LastUpdated        time.Time       `json:"last_updated"`
}

// SessionStatus returns the current state of a stored session.
func (s *Service) SessionStatus(ctx context.Context, sessionID string) (*SessionStatus, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.NotFound("sessão não encontrada")
		}
		return nil, apperr.Wrap(apperr.KindUnavailable, "falha ao carregar a sessão", err)
	}

	return &SessionStatus{
		SessionID:          sess.ID,
		Platform:           sess.Platform,
		CurrentStep:        sess.CurrentStep,
		FlowCompleted:      sess.FlowCompleted,
		LawyersNotified:    sess.LawyersNotified,
		PhoneSubmitted:     sess.PhoneSubmitted,
		LeadData:           sess.LeadData,
		MessageCount:       sess.MessageCount,
		QualificationScore: scoring.Score(sess.LeadData, sess.Platform),
		CreatedAt:          sess.CreatedAt,
		LastUpdated:        sess.LastUpdated,
	}, nil
}

// ResetSession discards the stored session entirely.
func (s *Service) ResetSession(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "falha ao reiniciar a sessão", err)
	}

	s.bus.Publish(ctx, events.SessionReset{
		BaseEvent: events.NewBaseEvent(),
		SessionID: sessionID,
	})
	return nil
}

// FlowSteps exposes the scripted question sequence.
func (s *Service) FlowSteps() []flow.StepInfo {
	return s.flow.Steps()
}

func (s *Service) loadOrCreate(ctx context.Context, sessionID string, platform domain.Platform, phoneNumber string) (*domain.Session, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err == nil {
		return sess, nil
	}
	if apperr.Is(err, apperr.KindNotFound) {
		return domain.NewSession(sessionID, platform, phoneNumber, s.now()), nil
	}
	return nil, err
}

// executeGate delivers the lawyer alert for a positive gate decision and
// latches lawyers_notified. Sink failure is logged and the flow continues.
func (s *Service) executeGate(ctx context.Context, sess *domain.Session, decision gate.Decision) {
	if !decision.ShouldNotify || sess.LawyersNotified {
		return
	}

	alert := s.buildAlert(sess, decision)

	notifyCtx, cancel := context.WithTimeout(ctx, collaboratorTimeout)
	defer cancel()

	notificationID, err := s.sink.Notify(notifyCtx, alert)
	if err != nil {
		s.log.CollaboratorError("notification_sink", "notify", err)
		return
	}

	// Re-read the stored session right before persisting the latch; this
	// narrows, without eliminating, the double-notify window under
	// concurrent delivery of the same session.
	if fresh, err := s.sessions.Get(ctx, sess.ID); err == nil && fresh.LawyersNotified {
		sess.LawyersNotified = true
		return
	}

	sess.LawyersNotified = true
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.log.CollaboratorError("session_store", "save", err)
	}

	s.bus.Publish(ctx, events.LawyersNotified{
		BaseEvent:      events.NewBaseEvent(),
		SessionID:      sess.ID,
		Platform:       string(sess.Platform),
		NotificationID: notificationID,
		Score:          decision.Score,
		Urgency:        alert.Urgency,
	})
}

func (s *Service) buildAlert(sess *domain.Session, decision gate.Decision) Alert {
	name := sess.LeadData.Identification
	if name == "" {
		name = "Lead Qualificado"
	}
	category := sess.LeadData.AreaQualification
	if category == "" {
		category = "não especificada"
	}
	details := sess.LeadData.CaseDetails
	if details == "" {
		details = "aguardando mais detalhes"
	}

	phoneDigits := sess.LeadData.Phone
	if phoneDigits == "" {
		phoneDigits, _ = extract.Phone(sess.LeadData.ContactInfo)
	}

	urgency := "normal"
	if sess.Platform == domain.PlatformWhatsApp {
		urgency = "high"
	}

	return Alert{
		Name:         name,
		Phone:        phoneDigits,
		Category:     category,
		CaseDetails:  details,
		ContactInfo:  sess.LeadData.ContactInfo,
		Email:        sess.LeadData.Email,
		Urgency:      urgency,
		Platform:     sess.Platform,
		Score:        decision.Score,
		SessionID:    sess.ID,
		MessageCount: sess.MessageCount,
		CurrentStep:  sess.CurrentStep,
	}
}

func (s *Service) turnResult(sess *domain.Session, reply string) *TurnResult {
	return &TurnResult{
		SessionID:          sess.ID,
		Platform:           sess.Platform,
		Response:           reply,
		CurrentStep:        sess.CurrentStep,
		FlowCompleted:      sess.FlowCompleted,
		LawyersNotified:    sess.LawyersNotified,
		PhoneSubmitted:     sess.PhoneSubmitted,
		LeadData:           sess.LeadData,
		MessageCount:       sess.MessageCount,
		QualificationScore: scoring.Score(sess.LeadData, sess.Platform),
	}
}

func (s *Service) fallbackResult(sessionID string, platform domain.Platform) *TurnResult {
	return &TurnResult{
		SessionID:   sessionID,
		Platform:    platform,
		Response:    s.flow.Greeting(s.now()),
		CurrentStep: domain.StepGreeting,
	}
}

func digitsOf(raw string) string {
	var b []byte
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			b = append(b, raw[i])
		}
	}
	return string(b)
}
