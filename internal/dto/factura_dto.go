package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Response DTOs ───────────────────────────────────────────────────────────

// Las facturas se crean siempre desde el pipeline de pedidos, nunca por un
// request directo; por eso este archivo solo define respuestas.

type FacturaResponse struct {
	ID        string          `json:"id"`
	PedidoID  string          `json:"pedido_id"`
	Numero    int64           `json:"numero"`
	Total     decimal.Decimal `json:"total"`
	Estado    string          `json:"estado"`
	PDFPath   *string         `json:"pdf_path,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
