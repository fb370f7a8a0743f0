package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemPedidoRequest struct {
	ProductoID string  `json:"producto_id" validate:"required,uuid"`
	Cantidad   int     `json:"cantidad"    validate:"required,min=1,max=99"`
	Nota       *string `json:"nota"        validate:"omitempty,max=200"`
}

type CrearPedidoRequest struct {
	Items []ItemPedidoRequest `json:"items" validate:"required,min=1,dive"`
	Nota  *string             `json:"nota"  validate:"omitempty,max=300"`
}

type ActualizarEstadoPedidoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=pendiente en_proceso completado entregado"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemPedidoResponse struct {
	ProductoID     string          `json:"producto_id"`
	NombreProducto string          `json:"nombre_producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Nota           *string         `json:"nota,omitempty"`
}

type PedidoResponse struct {
	ID        string               `json:"id"`
	UsuarioID string               `json:"usuario_id"`
	Estado    string               `json:"estado"`
	Total     decimal.Decimal      `json:"total"`
	Nota      *string              `json:"nota,omitempty"`
	Items     []ItemPedidoResponse `json:"items"`
	CreatedAt time.Time            `json:"created_at"`
}
