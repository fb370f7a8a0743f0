// Package costing derives the production cost of a menu product from its
// recipe rows (ingredientes, mano de obra, gastos), the global cost
// configuration, and the monthly production volume.
//
// Everything here is pure: no I/O, no hidden state, inputs are never mutated.
// Malformed or missing numeric inputs always resolve to zero — the cost
// preview must never crash or disappear mid-edit.
package costing

import (
	"github.com/shopspring/decimal"

	"github.com/Nejosudo/Restaurante-Mayer/internal/model"
)

// Params is the typed cost configuration assembled once per calculation from
// the raw key/value entries. Named fields replace string-keyed lookups so a
// missing key cannot silently leak into a formula — absence defaults to zero
// at assembly time, in one place.
type Params struct {
	SalarioMinimo      decimal.Decimal
	AuxilioTransporte  decimal.Decimal
	SeguridadSocialPct decimal.Decimal
	ParafiscalesPct    decimal.Decimal
	PrestacionesPct    decimal.Decimal
	DotacionAnual      decimal.Decimal
}

// ParamsDesdeConfig builds Params from configuration entries. Unknown keys are
// ignored; unparsable values contribute zero. It never fails.
func ParamsDesdeConfig(entradas []model.Configuracion) Params {
	var p Params
	for _, e := range entradas {
		v := valorNumerico(e.Valor)
		switch e.Clave {
		case model.ClaveSalarioMinimo:
			p.SalarioMinimo = v
		case model.ClaveAuxilioTransporte:
			p.AuxilioTransporte = v
		case model.ClaveSeguridadSocial:
			p.SeguridadSocialPct = v
		case model.ClaveParafiscales:
			p.ParafiscalesPct = v
		case model.ClavePrestaciones:
			p.PrestacionesPct = v
		case model.ClaveDotacionAnual:
			p.DotacionAnual = v
		}
	}
	return p
}

// FactorCarga is the payroll-load multiplier applied to base salaries:
// 1 + seguridad social + parafiscales + prestaciones.
// It deliberately does NOT load auxilio de transporte nor dotación.
func (p Params) FactorCarga() decimal.Decimal {
	return decimal.NewFromInt(1).
		Add(p.SeguridadSocialPct).
		Add(p.ParafiscalesPct).
		Add(p.PrestacionesPct)
}

// valorNumerico parses a configuration value stored as text.
// Parse failures resolve to zero, never an error.
func valorNumerico(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return v
}
