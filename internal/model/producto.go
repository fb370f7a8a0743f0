package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a menu item. PrecioVenta is what the customer pays; the
// production cost is never stored — it is re-derived from the recipe
// relations plus the current cost configuration (see internal/costing).
type Producto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CategoriaID uuid.UUID `gorm:"type:uuid;index;not null"`
	Nombre      string    `gorm:"index;not null"`
	Descripcion *string
	PrecioVenta decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ImagenURL   *string
	Disponible  bool `gorm:"not null;default:true"`
	// Volumen de producción usado por el costeo
	UnidadesMes int `gorm:"not null;default:0"`
	DiasMes     int `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Categoria   *Categoria           `gorm:"foreignKey:CategoriaID"`
	Ingredientes []ProductoIngrediente `gorm:"foreignKey:ProductoID"`
	ManoObra     []ProductoManoObra    `gorm:"foreignKey:ProductoID"`
	Gastos       []ProductoGasto       `gorm:"foreignKey:ProductoID"`
}

func (Producto) TableName() string { return "productos" }

// ProductoIngrediente is one recipe row: quantity of an ingredient needed to
// produce ONE unit of the product. Replaced wholesale on every recipe save.
type ProductoIngrediente struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	IngredienteID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Cantidad      decimal.Decimal `gorm:"type:decimal(12,3);not null"`

	Ingrediente *Ingrediente `gorm:"foreignKey:IngredienteID"`
}

func (ProductoIngrediente) TableName() string { return "producto_ingredientes" }

// ProductoManoObra is one staffing row of a product's cost sheet.
type ProductoManoObra struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	Rol               string          `gorm:"not null"`
	CantidadPersonal  int             `gorm:"not null;default:0"`
	SalarioBase       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (ProductoManoObra) TableName() string { return "producto_mano_obra" }

// ProductoGasto is one monthly overhead row of a product's cost sheet.
// FuenteClave links the row back to the Configuracion entry it was derived
// from; empty + Personalizado=true means a free-text custom line.
type ProductoGasto struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	Tipo          string          `gorm:"not null"`
	Unidad        string
	CantidadMes   decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	CostoUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FuenteClave   string          `gorm:"column:fuente_clave"`
	Personalizado bool            `gorm:"not null;default:false"`
}

func (ProductoGasto) TableName() string { return "producto_gastos" }
