package costing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FilaManoObra is one staffing row of the cost sheet.
type FilaManoObra struct {
	Rol         string
	Cantidad    int
	SalarioBase decimal.Decimal
}

// FilaMaterial is one recipe row: quantity of an ingredient needed per ONE
// unit of the product.
type FilaMaterial struct {
	IngredienteID uuid.UUID
	Cantidad      decimal.Decimal
}

// FilaGasto is one monthly overhead row.
type FilaGasto struct {
	Tipo          string
	Unidad        string
	Cantidad      decimal.Decimal
	CostoUnitario decimal.Decimal
	FuenteClave   string
	Personalizado bool
}

// Entrada groups every input of one calculation. CostosIngrediente maps
// ingredient id → cost per unit; ids absent from the map cost zero.
type Entrada struct {
	ManoObra          []FilaManoObra
	Materiales        []FilaMaterial
	Gastos            []FilaGasto
	UnidadesMes       decimal.Decimal
	PrecioVenta       decimal.Decimal
	CostosIngrediente map[uuid.UUID]decimal.Decimal
}

// Perfil is the derived cost profile. It is never persisted — only its inputs
// are — so it must be re-derivable from persisted rows plus configuration.
type Perfil struct {
	TotalManoObraMes   decimal.Decimal `json:"total_mano_obra_mes"`
	TotalMaterialesMes decimal.Decimal `json:"total_materiales_mes"`
	TotalGastosMes     decimal.Decimal `json:"total_gastos_mes"`
	TotalProduccionMes decimal.Decimal `json:"total_produccion_mes"`
	CostoUnitario      decimal.Decimal `json:"costo_unitario"`
	MargenPct          decimal.Decimal `json:"margen_pct"`

	// Per-row totals, index-aligned with the input slices.
	ManoObraPorFila   []decimal.Decimal `json:"mano_obra_por_fila"`
	MaterialesPorFila []decimal.Decimal `json:"materiales_por_fila"`
	GastosPorFila     []decimal.Decimal `json:"gastos_por_fila"`
}

var doce = decimal.NewFromInt(12)
var cien = decimal.NewFromInt(100)

// Calcular derives the monthly component totals, the blended unit cost, and
// the margin against the proposed sale price. Pure and deterministic:
// identical inputs always yield identical outputs.
//
// Safe to invoke on every keystroke — O(rows), no allocation beyond the
// per-row slices, and division only happens behind the >0 guards, so the
// result can never be NaN or infinite.
func Calcular(in Entrada, p Params) Perfil {
	factorCarga := p.FactorCarga()

	perfil := Perfil{
		ManoObraPorFila:   make([]decimal.Decimal, len(in.ManoObra)),
		MaterialesPorFila: make([]decimal.Decimal, len(in.Materiales)),
		GastosPorFila:     make([]decimal.Decimal, len(in.Gastos)),
	}

	// Mano de obra: salario×cant cargado con el factor, más auxilio de
	// transporte y dotación mensualizada — estos dos SIN factor de carga.
	for i, fila := range in.ManoObra {
		cant := decimal.NewFromInt(int64(fila.Cantidad))
		base := fila.SalarioBase.Mul(cant)
		transporte := p.AuxilioTransporte.Mul(cant)
		dotacion := p.DotacionAnual.Mul(cant).Div(doce)
		total := base.Mul(factorCarga).Add(transporte).Add(dotacion)
		perfil.ManoObraPorFila[i] = total
		perfil.TotalManoObraMes = perfil.TotalManoObraMes.Add(total)
	}

	// Materiales: cantidad por unidad × unidades/mes × costo del ingrediente.
	// Ingrediente no resuelto → costo cero, nunca un error.
	for i, fila := range in.Materiales {
		costo := in.CostosIngrediente[fila.IngredienteID]
		total := fila.Cantidad.Mul(in.UnidadesMes).Mul(costo)
		perfil.MaterialesPorFila[i] = total
		perfil.TotalMaterialesMes = perfil.TotalMaterialesMes.Add(total)
	}

	// Gastos de manufactura: cantidad mensual × costo unitario.
	for i, fila := range in.Gastos {
		total := fila.Cantidad.Mul(fila.CostoUnitario)
		perfil.GastosPorFila[i] = total
		perfil.TotalGastosMes = perfil.TotalGastosMes.Add(total)
	}

	perfil.TotalProduccionMes = perfil.TotalManoObraMes.
		Add(perfil.TotalMaterialesMes).
		Add(perfil.TotalGastosMes)

	if in.UnidadesMes.IsPositive() {
		perfil.CostoUnitario = perfil.TotalProduccionMes.Div(in.UnidadesMes)
	}

	if in.PrecioVenta.IsPositive() {
		perfil.MargenPct = in.PrecioVenta.Sub(perfil.CostoUnitario).
			Div(in.PrecioVenta).Mul(cien)
	}

	return perfil
}
