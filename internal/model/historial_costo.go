package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HistorialCosto registra cada cambio de costo de un ingrediente.
// Los registros son inmutables — nunca se eliminan ni modifican.
type HistorialCosto struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	IngredienteID uuid.UUID       `gorm:"type:uuid;not null;index"`
	CostoAntes    decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	CostoDespues  decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	Motivo        string          `gorm:"not null;default:'manual'"` // manual | correccion
	CreatedAt     time.Time

	Ingrediente Ingrediente `gorm:"foreignKey:IngredienteID"`
}

func (HistorialCosto) TableName() string { return "historial_costos" }
