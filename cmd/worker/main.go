package main

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"github.com/landaireal/landai-rent/internal/adapters/notify"
	"github.com/landaireal/landai-rent/internal/adapters/observability"
	"github.com/landaireal/landai-rent/internal/shared"
)

func main() {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	if cfg.RedisAddr == "" {
		log.Fatal().Msg("REDIS_ADDR is required for the worker")
	}
	if len(cfg.NotifyTo) == 0 {
		log.Warn().Msg("NOTIFY_TO is empty; notifications have no recipients")
	}

	metricsSrv := observability.Serve(cfg.MetricsAddr, observability.InitRegistry())
	if metricsSrv != nil {
		defer metricsSrv.Close()
	}

	var sender notify.Sender = notify.LogSender{L: log.Logger}
	if cfg.SMTPHost != "" {
		sender = notify.NewSMTPSender(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.SMTPFrom,
		})
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPass, DB: cfg.RedisDB},
		asynq.Config{
			Concurrency: cfg.WorkerConcurrency,
			Queues:      map[string]int{notify.QueueName: 1},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().Err(err).Str("task", task.Type()).Msg("task failed")
			}),
		},
	)
	mux := asynq.NewServeMux()
	notify.NewProcessor(sender, cfg.NotifyTo).Register(mux)

	log.Info().
		Str("redis", cfg.RedisAddr).
		Int("concurrency", cfg.WorkerConcurrency).
		Bool("smtp", cfg.SMTPHost != "").
		Msg("worker starting")

	// Run blocks until SIGINT/SIGTERM
	if err := srv.Run(mux); err != nil {
		log.Fatal().Err(err).Msg("worker failed")
	}
}
