package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados válidos de un pedido, en orden de avance.
const (
	PedidoPendiente = "pendiente"
	PedidoEnProceso = "en_proceso"
	PedidoCompletado = "completado"
	PedidoEntregado  = "entregado"
)

// EstadoPedidoValido reports whether e is one of the known order states.
func EstadoPedidoValido(e string) bool {
	switch e {
	case PedidoPendiente, PedidoEnProceso, PedidoCompletado, PedidoEntregado:
		return true
	}
	return false
}

// Pedido is a customer order built from the storefront cart.
// Total is always recomputed server-side from current product prices.
type Pedido struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado    string          `gorm:"type:varchar(20);not null;default:'pendiente'"`
	Nota      *string
	CreatedAt time.Time
	UpdatedAt time.Time

	Usuario *Usuario     `gorm:"foreignKey:UsuarioID"`
	Items   []PedidoItem `gorm:"foreignKey:PedidoID"`
}

func (Pedido) TableName() string { return "pedidos" }

// PedidoItem is one cart line. NombreProducto and PrecioUnitario are
// denormalized at order time so later menu edits never alter past orders.
type PedidoItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID       uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	NombreProducto string          `gorm:"not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Nota           *string

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (PedidoItem) TableName() string { return "pedido_items" }
