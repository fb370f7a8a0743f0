package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre      string          `json:"nombre"       validate:"required,min=2,max=120"`
	Descripcion *string         `json:"descripcion"`
	CategoriaID string          `json:"categoria_id" validate:"required,uuid"`
	PrecioVenta decimal.Decimal `json:"precio_venta" validate:"required,min=0"`
	ImagenURL   *string         `json:"imagen_url"`
	Disponible  *bool           `json:"disponible"`
}

type ActualizarProductoRequest struct {
	Nombre      *string          `json:"nombre"       validate:"omitempty,min=2,max=120"`
	Descripcion *string          `json:"descripcion"`
	CategoriaID *string          `json:"categoria_id" validate:"omitempty,uuid"`
	PrecioVenta *decimal.Decimal `json:"precio_venta" validate:"omitempty,min=0"`
	ImagenURL   *string          `json:"imagen_url"`
	Disponible  *bool            `json:"disponible"`
}

// ─── Hoja de costos ──────────────────────────────────────────────────────────

// FilaManoObraRequest, FilaMaterialRequest y FilaGastoRequest replican las
// listas editables del formulario de producto. La validación min=0 vive aquí,
// en el borde HTTP — el calculador no rechaza negativos por diseño.

type FilaManoObraRequest struct {
	Rol              string          `json:"rol"               validate:"required,max=80"`
	CantidadPersonal int             `json:"cantidad_personal" validate:"min=0"`
	SalarioBase      decimal.Decimal `json:"salario_base"      validate:"min=0"`
}

type FilaMaterialRequest struct {
	IngredienteID string          `json:"ingrediente_id" validate:"required,uuid"`
	Cantidad      decimal.Decimal `json:"cantidad"       validate:"min=0"`
}

type FilaGastoRequest struct {
	Tipo          string          `json:"tipo"           validate:"required,max=120"`
	Unidad        string          `json:"unidad"         validate:"max=30"`
	CantidadMes   decimal.Decimal `json:"cantidad_mes"   validate:"min=0"`
	CostoUnitario decimal.Decimal `json:"costo_unitario" validate:"min=0"`
	FuenteClave   string          `json:"fuente_clave"`
	Personalizado bool            `json:"personalizado"`
}

// GuardarRecetaRequest is the replace-all submission of a product's cost
// sheet. ConfirmarFusion=true is the merge resolution of the duplicate
// ingredient guard: duplicates are collapsed (summing quantities) and the
// guard is not re-run.
type GuardarRecetaRequest struct {
	Ingredientes    []FilaMaterialRequest `json:"ingredientes"     validate:"dive"`
	ManoObra        []FilaManoObraRequest `json:"mano_obra"        validate:"dive"`
	Gastos          []FilaGastoRequest    `json:"gastos"           validate:"dive"`
	UnidadesMes     int                   `json:"unidades_mes"     validate:"min=0"`
	DiasMes         int                   `json:"dias_mes"         validate:"min=0,max=31"`
	ConfirmarFusion bool                  `json:"confirmar_fusion"`
}

// PreviewCosteoRequest is the stateless calculation the admin form fires on
// every row edit; nothing is persisted.
type PreviewCosteoRequest struct {
	Ingredientes []FilaMaterialRequest `json:"ingredientes" validate:"dive"`
	ManoObra     []FilaManoObraRequest `json:"mano_obra"    validate:"dive"`
	Gastos       []FilaGastoRequest    `json:"gastos"       validate:"dive"`
	UnidadesMes  int                   `json:"unidades_mes" validate:"min=0"`
	PrecioVenta  decimal.Decimal       `json:"precio_venta" validate:"min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID          string          `json:"id"`
	CategoriaID string          `json:"categoria_id"`
	Nombre      string          `json:"nombre"`
	Descripcion *string         `json:"descripcion"`
	PrecioVenta decimal.Decimal `json:"precio_venta"`
	ImagenURL   *string         `json:"imagen_url"`
	Disponible  bool            `json:"disponible"`
	UnidadesMes int             `json:"unidades_mes"`
	DiasMes     int             `json:"dias_mes"`
}

type FilaManoObraResponse struct {
	Rol              string          `json:"rol"`
	CantidadPersonal int             `json:"cantidad_personal"`
	SalarioBase      decimal.Decimal `json:"salario_base"`
	TotalMes         decimal.Decimal `json:"total_mes"`
}

type FilaMaterialResponse struct {
	IngredienteID     string          `json:"ingrediente_id"`
	NombreIngrediente string          `json:"nombre_ingrediente"`
	Unidad            string          `json:"unidad"`
	Cantidad          decimal.Decimal `json:"cantidad"`
	TotalMes          decimal.Decimal `json:"total_mes"`
}

type FilaGastoResponse struct {
	Tipo          string          `json:"tipo"`
	Unidad        string          `json:"unidad"`
	CantidadMes   decimal.Decimal `json:"cantidad_mes"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
	FuenteClave   string          `json:"fuente_clave,omitempty"`
	Personalizado bool            `json:"personalizado"`
	TotalMes      decimal.Decimal `json:"total_mes"`
}

// CosteoResponse is the display surface of the cost engine: the four monthly
// totals, the blended unit cost, and the margin, plus per-row totals. Raw
// numbers — rounding and locale formatting belong to the presentation layer.
type CosteoResponse struct {
	TotalManoObraMes   decimal.Decimal `json:"total_mano_obra_mes"`
	TotalMaterialesMes decimal.Decimal `json:"total_materiales_mes"`
	TotalGastosMes     decimal.Decimal `json:"total_gastos_mes"`
	TotalProduccionMes decimal.Decimal `json:"total_produccion_mes"`
	CostoUnitario      decimal.Decimal `json:"costo_unitario"`
	MargenPct          decimal.Decimal `json:"margen_pct"`

	ManoObra     []FilaManoObraResponse `json:"mano_obra"`
	Ingredientes []FilaMaterialResponse `json:"ingredientes"`
	Gastos       []FilaGastoResponse    `json:"gastos"`

	UnidadesMes int             `json:"unidades_mes"`
	DiasMes     int             `json:"dias_mes"`
	PrecioVenta decimal.Decimal `json:"precio_venta"`
}
