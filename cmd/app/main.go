// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mindwell-companion/internal/config"
	"mindwell-companion/internal/engine"
	"mindwell-companion/internal/infra/crisis"
	pg "mindwell-companion/internal/infra/db/postgres"
	"mindwell-companion/internal/infra/logging"
	"mindwell-companion/internal/infra/metrics"
	red "mindwell-companion/internal/infra/redis"
	"mindwell-companion/internal/infra/sched"
	"mindwell-companion/internal/infra/web"
	"mindwell-companion/internal/infra/worker"
	"mindwell-companion/internal/usecase"
)

// Set via -ldflags "-X main.version=... -X main.commit=...".
var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("developer mode enabled")
	}
	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()
	if err := pg.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("schema")
	}

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()
	sessionRepo := red.NewSessionRepo(redisClient, cfg.Redis.TTL)
	rateLimiter := red.NewRateLimiter(redisClient)
	locker := red.NewLocker(redisClient)

	// ---- Repositories ----
	userRepo := pg.NewUserRepo(pool)
	historyRepo := pg.NewHistoryRepo(pool)

	// ---- Rule engine ----
	lib, err := loadLibrary(cfg.Engine.TemplatesFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("template library")
	}
	if err := lib.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("template library")
	}
	responder, err := crisis.NewFileResponder(cfg.Engine.CrisisTextFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("crisis responder")
	}
	if cfg.Engine.CrisisTextFile == "" {
		logger.Warn().Msg("engine.crisis_text_file not set; using built-in placeholder text")
	}
	eng := engine.NewEngine(lib, responder, logger)

	// ---- Workers ----
	pool2 := worker.NewPool(4, logger)
	pool2.Start(ctx)
	defer pool2.Stop()

	// ---- Use cases ----
	userUC := usecase.NewUserUseCase(userRepo, logger)
	chatUC := usecase.NewChatUseCase(eng, sessionRepo, historyRepo, pool2, cfg.Engine.HistoryKeep, logger)

	// ---- Retention worker ----
	retention := sched.NewRetentionWorker(cfg.Engine.TrimInterval, cfg.Engine.HistoryKeep, historyRepo, locker, logger)
	go func() { _ = retention.Run(ctx) }()

	// ---- HTTP server ----
	auth := web.NewAuthManager(cfg.Auth.JWTSecret, cfg.Auth.SecureCookie, cfg.Auth.CookieTTL)
	srv := web.NewServer(userUC, chatUC, auth, rateLimiter, cfg.Server.RatePerMinute, logger)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	// Give in-flight tasks a moment before the pool stops.
	time.Sleep(100 * time.Millisecond)
}

func loadLibrary(path string) (*engine.Library, error) {
	if path == "" {
		return engine.DefaultLibrary()
	}
	return engine.LoadLibrary(path)
}
