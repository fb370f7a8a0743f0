package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Factura stores the receipt generated for a Pedido.
// Estado: "pendiente" | "generada" | "error"
type Factura struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Numero   int64     `gorm:"autoIncrement;uniqueIndex"`
	Total    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado   string          `gorm:"type:varchar(20);not null;default:'pendiente'"`
	// PDFPath is relative to PDF_STORAGE_PATH env var
	PDFPath *string `gorm:"column:pdf_path"`
	// Retry fields — used by retry_cron to re-attempt failed generations
	RetryCount  int        `gorm:"not null;default:0"`
	NextRetryAt *time.Time `gorm:"column:next_retry_at"`
	LastError   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Pedido *Pedido `gorm:"foreignKey:PedidoID"`
}

func (Factura) TableName() string { return "facturas" }
