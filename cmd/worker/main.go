package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	convrepo "legal_intake_backend/internal/conversation/repository"
	"legal_intake_backend/internal/scheduler"
	"legal_intake_backend/internal/whatsapp"
	"legal_intake_backend/platform/config"
	"legal_intake_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting follow-up worker", "env", cfg.Env, "queue", cfg.AsynqQueueName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RedisURL == "" {
		panic("REDIS_URL is required for the follow-up worker")
	}

	sessions, err := convrepo.NewRedisSessionStore(cfg)
	if err != nil {
		log.Error("failed to initialize redis session store", "error", err)
		panic("failed to initialize redis session store: " + err.Error())
	}
	defer func() {
		_ = sessions.Close()
	}()

	sender := whatsapp.NewClient(cfg, log)
	if sender == nil {
		panic("WHATSAPP_SERVICE_URL is required for the follow-up worker")
	}

	worker, err := scheduler.NewWorker(cfg, sessions, sender, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	log.Info("follow-up worker running")
	worker.Run(ctx)
	log.Info("follow-up worker stopped")
}
