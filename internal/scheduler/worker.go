package scheduler

import (
	"context"
	"fmt"

	"legal_intake_backend/internal/conversation/service"
	"legal_intake_backend/platform/apperr"
	"legal_intake_backend/platform/config"
	"legal_intake_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Messenger delivers one WhatsApp text message.
type Messenger interface {
	Send(ctx context.Context, phoneNumber, text string) error
}

type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	sessions service.SessionStore
	sender   Messenger
	log      *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, sessions service.SessionStore, sender Messenger, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		sessions: sessions,
		sender:   sender,
		log:      log,
	}

	mux.HandleFunc(TaskConversationFollowUp, w.handleFollowUp)

	return w, nil
}

// handleFollowUp sends the delayed check-in message. A session that was
// reset since finalization cancels the follow-up, and one whose lawyers were
// already alerted is skipped because the team owns the contact from there.
func (w *Worker) handleFollowUp(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseFollowUpPayload(task)
	if err != nil {
		return err
	}

	sess, err := w.sessions.Get(ctx, payload.SessionID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			w.log.Info("follow-up skipped, session gone", "session_id", payload.SessionID)
			return nil
		}
		return err
	}

	if sess.LawyersNotified {
		w.log.Info("follow-up skipped, team already engaged", "session_id", payload.SessionID)
		return nil
	}

	firstName := payload.FirstName
	if firstName == "" {
		firstName = "Cliente"
	}

	text := fmt.Sprintf(
		"Olá, %s! 👋 Passando para confirmar: nossa equipe recebeu suas informações e um advogado já está cuidando do seu caso. Se surgiu alguma novidade ou dúvida, é só responder esta mensagem. 🤝",
		firstName,
	)

	if err := w.sender.Send(ctx, payload.PhoneNumber, text); err != nil {
		return fmt.Errorf("send follow-up: %w", err)
	}

	w.log.Info("follow-up sent", "session_id", payload.SessionID)
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
