package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	server "github.com/landaireal/landai-rent/internal/adapters/http_server"
	"github.com/landaireal/landai-rent/internal/adapters/notify"
	"github.com/landaireal/landai-rent/internal/adapters/observability"
	redisad "github.com/landaireal/landai-rent/internal/adapters/redis"
	"github.com/landaireal/landai-rent/internal/app"
	"github.com/landaireal/landai-rent/internal/domain"
	"github.com/landaireal/landai-rent/internal/shared"
	"github.com/landaireal/landai-rent/internal/storage"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := observability.InitRegistry()
	metricsSrv := observability.Serve(cfg.MetricsAddr, reg)

	// db
	h, err := storage.Open(ctx, storage.Options{DatabaseURL: cfg.DatabaseURL, AutoMigrate: cfg.AutoMigrate})
	if err != nil {
		log.Fatal().Err(err).Msg("storage open failed")
	}
	defer h.Close()
	log.Info().Str("backend", h.Backend).Msg("storage ready")

	// deps; interfaces stay nil when the backing service is not configured
	var (
		cache    domain.Cache
		notifier domain.InquiryNotifier
	)
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed; cache errors will be logged")
		}
		// a memory store's ids are private to this process
		cache = rc.WithNamespace(h.CacheNamespace)

		if len(cfg.NotifyTo) > 0 {
			qc := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPass, DB: cfg.RedisDB})
			defer qc.Close()
			notifier = notify.NewNotifier(qc)
		}
	}
	q := app.NewQueryService(h.Store, cache, cfg.CacheTTL)
	c := app.NewCommandService(h.Store, cache, notifier)

	if cfg.SeedOnStart {
		if _, err := c.Seed(ctx); err != nil {
			log.Fatal().Err(err).Msg("seed failed")
		}
	}

	handlers := &server.Handlers{Q: q, C: c, AdminSecret: cfg.AdminJWTSecret}
	if cfg.InquiryRPS > 0 {
		handlers.InquiryLimiter = server.NewRateLimiter(cfg.InquiryRPS, cfg.InquiryBurst)
	}

	// http
	srv := server.New(server.Options{Timeout: cfg.RequestTimeout, CORSOrigin: cfg.CORSOrigin, TrustProxy: cfg.TrustProxy})
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(handlers)

	log.Info().Str("addr", cfg.HTTPAddr).Bool("cache", cache != nil).Bool("notify", notifier != nil).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
}
