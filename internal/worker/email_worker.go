package worker

// email_worker.go
// Processes email jobs from QueueEmail: delivers receipt PDFs to customers
// via SMTP, behind a circuit breaker so a downed relay never piles up
// goroutines hammering it.

import (
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/Nejosudo/Restaurante-Mayer/internal/infra"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
// PDFName is relative to the configured storage path.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFName string `json:"pdf_name"`
}

// EmailWorker sends receipt emails through the SMTP circuit breaker.
type EmailWorker struct {
	mailer         *infra.Mailer
	cb             *infra.CircuitBreaker
	pdfStoragePath string
}

// NewEmailWorker creates an EmailWorker with the provided SMTP mailer.
func NewEmailWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, pdfStoragePath string) *EmailWorker {
	return &EmailWorker{mailer: mailer, cb: cb, pdfStoragePath: pdfStoragePath}
}

// Process sends an email with the PDF receipt as attachment.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return
	}

	pdfPath := ""
	if payload.PDFName != "" {
		pdfPath = filepath.Join(w.pdfStoragePath, payload.PDFName)
	}

	err := w.cb.Execute(func() error {
		return w.mailer.SendFactura(payload.ToEmail, payload.Subject, payload.Body, pdfPath)
	})
	if err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: failed to send email")
		return
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: factura sent successfully")
}
