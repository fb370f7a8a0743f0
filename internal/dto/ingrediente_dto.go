package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearIngredienteRequest struct {
	Nombre         string          `json:"nombre"           validate:"required,min=2,max=120"`
	Unidad         string          `json:"unidad"           validate:"required,oneof=gramo mililitro unidad"`
	CostoPorUnidad decimal.Decimal `json:"costo_por_unidad" validate:"min=0"`
	Stock          decimal.Decimal `json:"stock"            validate:"min=0"`
}

type ActualizarIngredienteRequest struct {
	Nombre *string          `json:"nombre" validate:"omitempty,min=2,max=120"`
	Unidad *string          `json:"unidad" validate:"omitempty,oneof=gramo mililitro unidad"`
	Stock  *decimal.Decimal `json:"stock"  validate:"omitempty,min=0"`
}

// ActualizarCostoRequest records a price change with its reason; every change
// leaves a row in the cost history.
type ActualizarCostoRequest struct {
	CostoPorUnidad decimal.Decimal `json:"costo_por_unidad" validate:"required,min=0"`
	Motivo         string          `json:"motivo"           validate:"required,oneof=manual correccion"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type IngredienteResponse struct {
	ID             string          `json:"id"`
	Nombre         string          `json:"nombre"`
	Unidad         string          `json:"unidad"`
	CostoPorUnidad decimal.Decimal `json:"costo_por_unidad"`
	Stock          decimal.Decimal `json:"stock"`
	Activo         bool            `json:"activo"`
}

type HistorialCostoResponse struct {
	ID            string          `json:"id"`
	IngredienteID string          `json:"ingrediente_id"`
	CostoAntes    decimal.Decimal `json:"costo_antes"`
	CostoDespues  decimal.Decimal `json:"costo_despues"`
	Motivo        string          `json:"motivo"`
	CreatedAt     time.Time       `json:"created_at"`
}
