package events

import (
	"context"

	"legal_intake_backend/platform/logger"
)

// SubscribeAuditLog attaches a structured audit trail to the conversation
// lifecycle events so every lead, notification and reset leaves a log line
// even when no other module is listening.
func SubscribeAuditLog(bus Bus, log *logger.Logger) {
	bus.Subscribe(ConversationCompleted{}.EventName(), HandlerFunc(func(_ context.Context, event Event) error {
		if e, ok := event.(ConversationCompleted); ok {
			log.Info("audit: conversation completed",
				"session_id", e.SessionID,
				"platform", e.Platform,
				"message_count", e.MessageCount,
				"score", e.Score,
			)
		}
		return nil
	}))

	bus.Subscribe(LeadCaptured{}.EventName(), HandlerFunc(func(_ context.Context, event Event) error {
		if e, ok := event.(LeadCaptured); ok {
			log.Info("audit: lead captured",
				"lead_id", e.LeadID.String(),
				"session_id", e.SessionID,
				"platform", e.Platform,
				"area", e.Area,
				"score", e.Score,
			)
		}
		return nil
	}))

	bus.Subscribe(LawyersNotified{}.EventName(), HandlerFunc(func(_ context.Context, event Event) error {
		if e, ok := event.(LawyersNotified); ok {
			log.Info("audit: lawyers notified",
				"session_id", e.SessionID,
				"notification_id", e.NotificationID,
				"urgency", e.Urgency,
				"score", e.Score,
			)
		}
		return nil
	}))

	bus.Subscribe(SessionReset{}.EventName(), HandlerFunc(func(_ context.Context, event Event) error {
		if e, ok := event.(SessionReset); ok {
			log.Info("audit: session reset", "session_id", e.SessionID)
		}
		return nil
	}))
}
