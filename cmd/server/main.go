package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nejosudo/Restaurante-Mayer/internal/config"
	"github.com/Nejosudo/Restaurante-Mayer/internal/infra"
	"github.com/Nejosudo/Restaurante-Mayer/internal/repository"
	"github.com/Nejosudo/Restaurante-Mayer/internal/router"
	"github.com/Nejosudo/Restaurante-Mayer/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
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

	if err := os.MkdirAll(cfg.PDFStoragePath, 0o755); err != nil {
		log.Fatal().Err(err).Str("path", cfg.PDFStoragePath).Msg("failed to create pdf storage dir")
	}

	// Background workers: PDF generation and email delivery run off redis
	// queues; the retry cron picks up whatever the workers dropped.
	// All wiring happens here (composition root) so the pool has full
	// access to infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	dispatcher := worker.NewDispatcher(rdb)

	facturaRepo := repository.NewFacturaRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	usuarioRepo := repository.NewUsuarioRepository(db)

	handlers := worker.Handlers{
		Factura: worker.NewFacturaWorker(facturaRepo, pedidoRepo, usuarioRepo, dispatcher, cfg.PDFStoragePath, cfg.NombreRestaurante),
		Email:   worker.NewEmailWorker(mailer, smtpCB, cfg.PDFStoragePath),
	}
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, handlers)

	worker.StartRetryCron(ctx, worker.RetryCronConfig{
		FacturaRepo:       facturaRepo,
		PedidoRepo:        pedidoRepo,
		UsuarioRepo:       usuarioRepo,
		Dispatcher:        dispatcher,
		RDB:               rdb,
		PDFStoragePath:    cfg.PDFStoragePath,
		NombreRestaurante: cfg.NombreRestaurante,
	})

	r := router.New(cfg, db, rdb, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("Restaurante Mayer backend listening on :%d", cfg.Port)
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
	log.Info().Msg("server exited")
}
