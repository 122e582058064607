package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	"credforge/internal/app"
	"credforge/internal/credential/handler"
	credmetrics "credforge/internal/credential/metrics"
	"credforge/internal/credential/service"
	"credforge/internal/credential/store"
	"credforge/internal/credential/tracer"
	"credforge/internal/platform/config"
	"credforge/internal/platform/database"
	"credforge/internal/platform/health"
	"credforge/internal/platform/logger"
	"credforge/pkg/platform/middleware/request"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Point DB_PATH at the issuance service's file to verify against a shared
// local database.
func main() {
	cfg, err := config.Load(config.Defaults{
		Addr:         ":3002",
		DBPath:       "data/verification.db",
		WorkerPrefix: "verifier",
	})
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	log.Info("initializing verification service",
		"addr", cfg.Addr,
		"db_path", cfg.DBPath,
		"worker", cfg.WorkerID,
	)

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(db.Writer); err != nil {
		log.Error("run migrations", "error", err)
		os.Exit(1)
	}

	svc := service.NewVerifier(
		store.NewSQLite(db),
		service.WithMetrics(credmetrics.New()),
		service.WithTracer(tracer.NewOTel()),
	)
	verifyHandler := handler.NewVerify(svc, log)

	healthHandler := health.New(cfg.WorkerID)
	healthHandler.RegisterCheck("database", func() error {
		return db.Ping(context.Background())
	})

	a := app.New(cfg, log, healthHandler, request.NewMetrics(), func(r chi.Router) {
		verifyHandler.Register(r)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
