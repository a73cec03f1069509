// Package notification fans qualified-lead alerts out to the lawyer pool
// over WhatsApp, with an optional email copy to the firm's alert address.
package notification

import (
	"context"
	"fmt"
	"strings"

	"legal_intake_backend/internal/conversation/service"
	"legal_intake_backend/internal/email"
	"legal_intake_backend/platform/config"
	"legal_intake_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Messenger delivers one WhatsApp text message.
type Messenger interface {
	Send(ctx context.Context, phoneNumber, text string) error
}

// EmailSender delivers the email copy of an alert.
type EmailSender interface {
	SendLeadAlert(ctx context.Context, toEmail string, alert email.LeadAlert) error
}

// Service implements the orchestrator's notification sink.
type Service struct {
	messenger  Messenger
	email      EmailSender
	phones     []string
	alertEmail string
	log        *logger.Logger
}

func NewService(messenger Messenger, emailSender EmailSender, cfg config.NotificationConfig, log *logger.Logger) *Service {
	return &Service{
		messenger:  messenger,
		email:      emailSender,
		phones:     cfg.GetLawyerPhones(),
		alertEmail: cfg.GetAlertEmail(),
		log:        log,
	}
}

// Notify delivers the alert to every configured lawyer phone concurrently.
// It succeeds when at least one WhatsApp delivery lands; the email copy is
// best effort and never fails the alert.
func (s *Service) Notify(ctx context.Context, alert service.Alert) (string, error) {
	if len(s.phones) == 0 {
		return "", fmt.Errorf("no lawyer phones configured")
	}

	notificationID := uuid.New().String()
	text := alertText(alert)

	var delivered int
	g, gctx := errgroup.WithContext(ctx)
	results := make([]error, len(s.phones))

	for i := range s.phones {
		g.Go(func() error {
			results[i] = s.messenger.Send(gctx, s.phones[i], text)
			return nil
		})
	}
	_ = g.Wait()

	for i, err := range results {
		if err != nil {
			s.log.CollaboratorError("whatsapp", "lawyer_alert", err)
			continue
		}
		delivered++
		s.log.Info("lawyer alerted",
			"notification_id", notificationID,
			"phone", s.phones[i],
			"session_id", alert.SessionID,
		)
	}

	if delivered == 0 {
		return "", fmt.Errorf("lawyer alert failed for all %d recipients", len(s.phones))
	}

	s.sendEmailCopy(ctx, alert)
	return notificationID, nil
}

func (s *Service) sendEmailCopy(ctx context.Context, alert service.Alert) {
	if s.email == nil || s.alertEmail == "" {
		return
	}

	err := s.email.SendLeadAlert(ctx, s.alertEmail, email.LeadAlert{
		Name:        alert.Name,
		Phone:       alert.Phone,
		Category:    alert.Category,
		CaseDetails: alert.CaseDetails,
		ContactInfo: alert.ContactInfo,
		Urgency:     alert.Urgency,
		Platform:    string(alert.Platform),
		Score:       alert.Score,
		SessionID:   alert.SessionID,
	})
	if err != nil {
		s.log.CollaboratorError("email", "lead_alert", err)
	}
}

// alertText renders the WhatsApp message sent to each lawyer.
func alertText(alert service.Alert) string {
	urgencyTag := "🔔"
	if alert.Urgency == "high" {
		urgencyTag = "🚨 URGENTE"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s NOVO LEAD QUALIFICADO\n\n", urgencyTag)
	fmt.Fprintf(&b, "👤 Nome: %s\n", alert.Name)
	if alert.Phone != "" {
		fmt.Fprintf(&b, "📱 Telefone: %s\n", alert.Phone)
	}
	if alert.Email != "" {
		fmt.Fprintf(&b, "📧 E-mail: %s\n", alert.Email)
	}
	fmt.Fprintf(&b, "⚖️ Área: %s\n", alert.Category)
	fmt.Fprintf(&b, "📊 Qualificação: %.0f%%\n", alert.Score*100)
	fmt.Fprintf(&b, "🌐 Origem: %s\n\n", alert.Platform)
	fmt.Fprintf(&b, "📋 Caso: %s\n\n", alert.CaseDetails)
	fmt.Fprintf(&b, "Sessão: %s", alert.SessionID)
	return b.String()
}
