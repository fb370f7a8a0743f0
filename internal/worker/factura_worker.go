package worker

// factura_worker.go
// Processes receipt jobs from QueueFactura: renders the PDF for a pedido's
// factura and enqueues the email delivery. Failures leave the factura in
// estado='pendiente' with next_retry_at set, so the retry cron picks it up.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nejosudo/Restaurante-Mayer/internal/infra"
	"github.com/Nejosudo/Restaurante-Mayer/internal/repository"
)

// FacturaJobPayload is the job envelope sent to QueueFactura.
type FacturaJobPayload struct {
	FacturaID string `json:"factura_id"`
}

// FacturaWorker renders receipt PDFs for orders.
type FacturaWorker struct {
	facturaRepo       repository.FacturaRepository
	pedidoRepo        repository.PedidoRepository
	usuarioRepo       repository.UsuarioRepository
	dispatcher        *Dispatcher
	pdfStoragePath    string
	nombreRestaurante string
}

// NewFacturaWorker wires all dependencies for the receipt worker.
func NewFacturaWorker(
	facturaRepo repository.FacturaRepository,
	pedidoRepo repository.PedidoRepository,
	usuarioRepo repository.UsuarioRepository,
	dispatcher *Dispatcher,
	pdfStoragePath string,
	nombreRestaurante string,
) *FacturaWorker {
	return &FacturaWorker{
		facturaRepo:       facturaRepo,
		pedidoRepo:        pedidoRepo,
		usuarioRepo:       usuarioRepo,
		dispatcher:        dispatcher,
		pdfStoragePath:    pdfStoragePath,
		nombreRestaurante: nombreRestaurante,
	}
}

// Process handles a single factura job:
//  1. Parse FacturaJobPayload from the job envelope
//  2. Fetch the Factura and its Pedido (with items)
//  3. Generate the PDF (go-pdf/fpdf)
//  4. Mark the factura generada / schedule retry on failure
//  5. Enqueue the email job with the PDF attached
func (w *FacturaWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload FacturaJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("factura_worker: invalid payload")
		return
	}

	facturaID, err := uuid.Parse(payload.FacturaID)
	if err != nil {
		log.Error().Str("factura_id", payload.FacturaID).Msg("factura_worker: invalid factura_id")
		return
	}

	factura, err := w.facturaRepo.FindByID(ctx, facturaID)
	if err != nil {
		log.Error().Err(err).Str("factura_id", payload.FacturaID).Msg("factura_worker: factura not found")
		return
	}
	if factura.Estado == "generada" {
		// Job duplicado (reintento del dispatcher + cron): nada que hacer.
		return
	}

	pedido, err := w.pedidoRepo.FindByID(ctx, factura.PedidoID)
	if err != nil {
		log.Error().Err(err).Str("factura_id", payload.FacturaID).Msg("factura_worker: pedido not found")
		return
	}

	fileName, pdfErr := infra.GenerateFacturaPDF(factura, pedido, w.nombreRestaurante, w.pdfStoragePath)
	if pdfErr != nil {
		factura.RetryCount++
		errMsg := pdfErr.Error()
		factura.LastError = &errMsg
		nextRetry := time.Now().Add(computeRetryBackoff(factura.RetryCount))
		factura.NextRetryAt = &nextRetry
		_ = w.facturaRepo.Update(ctx, factura)
		log.Warn().
			Err(pdfErr).
			Str("factura_id", payload.FacturaID).
			Time("next_retry_at", nextRetry).
			Msg("factura_worker: PDF generation failed, scheduled retry")
		return
	}

	factura.Estado = "generada"
	factura.PDFPath = &fileName
	factura.NextRetryAt = nil
	factura.LastError = nil
	if err := w.facturaRepo.Update(ctx, factura); err != nil {
		log.Error().Err(err).Str("factura_id", payload.FacturaID).Msg("factura_worker: failed to update factura")
		return
	}
	log.Info().Str("pdf", fileName).Str("factura_id", payload.FacturaID).Msg("factura_worker: PDF generated")

	w.enqueueEmail(ctx, factura.Numero, pedido.UsuarioID, fileName, factura.Total.StringFixed(2))
}

func (w *FacturaWorker) enqueueEmail(ctx context.Context, numero int64, usuarioID uuid.UUID, fileName, total string) {
	if w.dispatcher == nil {
		return
	}
	user, err := w.usuarioRepo.FindByID(ctx, usuarioID)
	if err != nil || user.Email == "" {
		log.Warn().Str("usuario_id", usuarioID.String()).Msg("factura_worker: no email for user, skipping delivery")
		return
	}

	emailJob := EmailJobPayload{
		ToEmail: user.Email,
		Subject: fmt.Sprintf("%s — Factura #%d", w.nombreRestaurante, numero),
		Body:    fmt.Sprintf("Hola %s,\n\nAdjunta encontrarás la factura de tu pedido.\nTotal: $%s\n\n¡Gracias por tu compra!", user.Nombre, total),
		PDFName: fileName,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		log.Warn().Err(err).Str("email", user.Email).Msg("factura_worker: failed to enqueue email")
		return
	}
	log.Info().Str("email", user.Email).Msg("factura_worker: email job enqueued")
}
