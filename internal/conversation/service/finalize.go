package service

import (
	"context"

	"legal_intake_backend/internal/conversation/domain"
	"legal_intake_backend/internal/conversation/extract"
	"legal_intake_backend/internal/conversation/gate"
	"legal_intake_backend/internal/conversation/scoring"
	"legal_intake_backend/internal/events"
	"legal_intake_backend/platform/phone"
)

// finalize runs the completion pipeline for a session that reached the
// terminal step: phone normalization, late gate re-check, lead snapshot,
// the strategic confirmation message and the delayed follow-up. Every
// collaborator failure degrades the wording of the returned reply instead
// of failing the turn.
func (s *Service) finalize(ctx context.Context, sess *domain.Session) string {
	firstName := sess.LeadData.FirstName()
	if firstName == "" {
		firstName = "Cliente"
	}

	digits := sess.LeadData.Phone
	if digits == "" {
		digits, _ = extract.Phone(sess.LeadData.ContactInfo)
	}
	if len(digits) < 10 {
		sess.CurrentStep = domain.StepPhoneCollection
		return "Para finalizar, " + firstName + ", preciso do seu WhatsApp com DDD (ex: 11999999999):"
	}

	formatted := phone.NormalizeBR(digits)

	if !sess.PhoneSubmitted {
		sess.PhoneSubmitted = true
		sess.LeadData.Phone = digits
		if err := s.sessions.Save(ctx, sess); err != nil {
			s.log.CollaboratorError("session_store", "save", err)
		}
	}

	// A session can reach finalization without ever passing the gate (the
	// phone was the missing piece), so the decision is re-evaluated here.
	decision := gate.Evaluate(sess)
	if decision.ShouldNotify {
		s.executeGate(ctx, sess, decision)
	}

	score := scoring.Score(sess.LeadData, sess.Platform)
	s.saveLead(ctx, sess, digits, score)

	whatsappSent := s.sendStrategicMessage(ctx, sess, firstName, formatted)

	s.scheduleFollowUp(ctx, sess, firstName, formatted)

	s.bus.Publish(ctx, events.ConversationCompleted{
		BaseEvent:    events.NewBaseEvent(),
		SessionID:    sess.ID,
		Platform:     string(sess.Platform),
		MessageCount: sess.MessageCount,
		Score:        score,
	})

	return finalMessage(firstName, sess.LawyersNotified, whatsappSent)
}

func (s *Service) saveLead(ctx context.Context, sess *domain.Session, digits string, score float64) {
	lead := domain.SnapshotLead(sess, digits, score, s.now())

	saveCtx, cancel := context.WithTimeout(ctx, collaboratorTimeout)
	defer cancel()

	if err := s.leads.Save(saveCtx, lead); err != nil {
		s.log.CollaboratorError("lead_store", "save", err)
		return
	}

	s.bus.Publish(ctx, events.LeadCaptured{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		SessionID: sess.ID,
		Platform:  string(sess.Platform),
		Name:      sess.LeadData.Identification,
		Phone:     digits,
		Area:      sess.LeadData.AreaQualification,
		Score:     score,
	})
}

// sendStrategicMessage delivers the confirmation message with one immediate
// retry. Returns whether any attempt succeeded.
func (s *Service) sendStrategicMessage(ctx context.Context, sess *domain.Session, firstName, formatted string) bool {
	text := strategicMessage(firstName, sess.LeadData.AreaQualification)

	sendCtx, cancel := context.WithTimeout(ctx, collaboratorTimeout)
	defer cancel()

	if err := s.sender.Send(sendCtx, formatted, text); err != nil {
		s.log.CollaboratorError("whatsapp", "send", err)
		if err := s.sender.Send(sendCtx, formatted, text); err != nil {
			s.log.CollaboratorError("whatsapp", "send_retry", err)
			return false
		}
	}
	return true
}

func (s *Service) scheduleFollowUp(ctx context.Context, sess *domain.Session, firstName, formatted string) {
	if s.schedule == nil || s.followUpDelay <= 0 {
		return
	}

	runAt := s.now().Add(s.followUpDelay)
	if err := s.schedule.ScheduleFollowUp(ctx, sess.ID, formatted, firstName, runAt); err != nil {
		s.log.CollaboratorError("scheduler", "schedule_followup", err)
	}
}
