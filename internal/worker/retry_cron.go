package worker

// retry_cron.go
// Background goroutine that periodically re-attempts PDF generation for
// facturas stuck in estado='pendiente' with a next_retry_at in the past.
// Covers both worker crashes mid-job and transient filesystem failures.

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Nejosudo/Restaurante-Mayer/internal/repository"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10

	// MaxFacturaRetries caps cron re-attempts before a factura is marked
	// estado='error' and its job lands in the DLQ.
	MaxFacturaRetries = 5
)

// computeRetryBackoff returns the wait before the next attempt.
// Schedule: 1m, 2m, 4m, 8m ... capped at 30m.
func computeRetryBackoff(retryCount int) time.Duration {
	backoff := time.Minute * time.Duration(1<<uint(retryCount-1))
	if backoff > 30*time.Minute {
		backoff = 30 * time.Minute
	}
	return backoff
}

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	FacturaRepo       repository.FacturaRepository
	PedidoRepo        repository.PedidoRepository
	UsuarioRepo       repository.UsuarioRepository
	Dispatcher        *Dispatcher
	RDB               *redis.Client
	PDFStoragePath    string
	NombreRestaurante string
}

// StartRetryCron launches a background goroutine that ticks every 30s,
// queries pending facturas, and re-attempts PDF generation.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	now := time.Now()
	facturas, err := cfg.FacturaRepo.ListPendingRetries(ctx, now, retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending retries")
		return
	}

	if len(facturas) == 0 {
		return
	}

	log.Info().Int("count", len(facturas)).Msg("retry_cron: processing pending facturas")

	worker := NewFacturaWorker(
		cfg.FacturaRepo, cfg.PedidoRepo, cfg.UsuarioRepo,
		cfg.Dispatcher, cfg.PDFStoragePath, cfg.NombreRestaurante,
	)

	for i := range facturas {
		factura := &facturas[i]

		if factura.RetryCount >= MaxFacturaRetries {
			factura.Estado = "error"
			factura.NextRetryAt = nil
			lastErr := ""
			if factura.LastError != nil {
				lastErr = *factura.LastError
			}
			log.Error().
				Str("factura_id", factura.ID.String()).
				Str("pedido_id", factura.PedidoID.String()).
				Int("retries", factura.RetryCount).
				Msg("retry_cron: max retries exceeded, moving to error/DLQ")

			payload := fmt.Sprintf(`{"factura_id":%q,"pedido_id":%q}`, factura.ID, factura.PedidoID)
			SendToDLQ(ctx, cfg.RDB, QueueFactura, "factura", []byte(payload),
				fmt.Sprintf("max retries (%d) exceeded: %s", MaxFacturaRetries, lastErr),
				factura.RetryCount)

			_ = cfg.FacturaRepo.Update(ctx, factura)
			continue
		}

		// Reuse the worker path: success marks generada, failure re-schedules.
		raw := fmt.Sprintf(`{"factura_id":%q}`, factura.ID)
		worker.Process(ctx, []byte(raw))
	}
}
