// Package email delivers lawyer-facing alert emails over SMTP.
package email

import (
	"context"
	"fmt"
	"net"
	"time"

	"legal_intake_backend/platform/config"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender delivers rendered HTML alerts via a direct SMTP connection.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender returns nil when email delivery is disabled.
func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	if !cfg.GetEmailEnabled() {
		return nil
	}

	return &SMTPSender{
		host:      cfg.GetSMTPHost(),
		port:      cfg.GetSMTPPort(),
		username:  cfg.GetSMTPUsername(),
		password:  cfg.GetSMTPPassword(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
	}
}

// LeadAlert is the rendered payload for a new-lead email.
type LeadAlert struct {
	Name        string
	Phone       string
	Category    string
	CaseDetails string
	ContactInfo string
	Urgency     string
	Platform    string
	Score       float64
	SessionID   string
}

// SendLeadAlert emails a qualified-lead summary to the firm's alert address.
func (s *SMTPSender) SendLeadAlert(ctx context.Context, toEmail string, alert LeadAlert) error {
	if s == nil {
		return nil
	}

	content, err := renderEmailTemplate("lead_alert.html", leadAlertEmailData{
		baseEmailData: baseEmailData{
			Title:   "Novo lead qualificado",
			Heading: "Novo lead qualificado",
		},
		Name:        alert.Name,
		Phone:       alert.Phone,
		Category:    alert.Category,
		CaseDetails: alert.CaseDetails,
		ContactInfo: alert.ContactInfo,
		Urgency:     alert.Urgency,
		Platform:    alert.Platform,
		Score:       fmt.Sprintf("%.0f%%", alert.Score*100),
		SessionID:   alert.SessionID,
	})
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Novo lead qualificado: %s (%s)", alert.Name, alert.Category)
	return s.send(ctx, toEmail, subject, content)
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}
