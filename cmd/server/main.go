package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dsocial118/SISOC-sub004/internal/audit"
	"github.com/dsocial118/SISOC-sub004/internal/config"
	"github.com/dsocial118/SISOC-sub004/internal/infra"
	"github.com/dsocial118/SISOC-sub004/internal/model"
	"github.com/dsocial118/SISOC-sub004/internal/repository"
	"github.com/dsocial118/SISOC-sub004/internal/router"
	"github.com/dsocial118/SISOC-sub004/internal/softdelete"
	"github.com/dsocial118/SISOC-sub004/internal/worker"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── Cascade engine and audit wiring (composition root) ──────────────────
	reg := model.NuevoRegistro()
	bus := softdelete.NewBus()
	planner := softdelete.NewPlanner(db, reg)
	engine := softdelete.NewEngine(softdelete.NewGormStore(db), planner, reg, bus)

	dispatcher := worker.NewDispatcher(rdb)
	recorder := audit.NewRecorder(dispatcher, cfg.IgnoredNamespaces())
	// Every cascade flip and restore lands in the audit trail.
	bus.Subscribe(recorder.ObservarCascada)

	// ── Worker pool: audit persistence + notification emails ────────────────
	mailer := infra.NewMailer(cfg)
	mailerCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	historialRepo := repository.NewHistorialRepository(db)

	pool := worker.NewPool(rdb, worker.Handlers{
		Auditoria: worker.NewAuditWorker(historialRepo, rdb),
		Email:     worker.NewEmailWorker(mailer, mailerCB, rdb),
	})
	pool.Start(ctx, cfg.AuditWorkerCount)

	r, informeSvc := router.New(cfg, db, rdb, engine, recorder, dispatcher)

	// Validated informes whose artifact render failed get retried here.
	worker.StartRenderRetryCron(ctx, informeSvc)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("SISOC admisiones listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}

	// Let in-flight audit and email jobs finish before exiting.
	cancel()
	pool.Drain(10 * time.Second)
	log.Info().Msg("server exited")
}
