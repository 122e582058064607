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
// Business logic lives in internal/credential.
func main() {
	cfg, err := config.Load(config.Defaults{
		Addr:         ":3001",
		DBPath:       "data/issuance.db",
		WorkerPrefix: "worker",
	})
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	log.Info("initializing issuance service",
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

	svc := service.NewIssuer(
		store.NewSQLite(db),
		cfg.WorkerID,
		service.WithMetrics(credmetrics.New()),
		service.WithTracer(tracer.NewOTel()),
	)
	issueHandler := handler.NewIssue(svc, log)

	healthHandler := health.New(cfg.WorkerID)
	healthHandler.RegisterCheck("database", func() error {
		return db.Ping(context.Background())
	})

	a := app.New(cfg, log, healthHandler, request.NewMetrics(), func(r chi.Router) {
		issueHandler.Register(r)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
