package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Unidades de medida válidas para ingredientes — conjunto cerrado.
const (
	UnidadGramo     = "gramo"
	UnidadMililitro = "mililitro"
	UnidadUnidad    = "unidad"
)

// UnidadValida reports whether u belongs to the closed unit set.
func UnidadValida(u string) bool {
	return u == UnidadGramo || u == UnidadMililitro || u == UnidadUnidad
}

// Ingrediente is a raw material referenced (never owned) by recipe rows.
type Ingrediente struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre         string          `gorm:"uniqueIndex;not null"`
	Unidad         string          `gorm:"type:varchar(20);not null"`
	CostoPorUnidad decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	Stock          decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	Activo         bool            `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Ingrediente) TableName() string { return "ingredientes" }
