package costing

import "github.com/Nejosudo/Restaurante-Mayer/internal/model"

// ReencadenarGastos rebuilds the expense rows of a persisted product and
// re-links each one to a current manufactura configuration entry, so the
// admin form reopens with the same selector state it was saved with.
//
// Linking order:
//  1. FuenteClave persisted with the row (steady-state path).
//  2. Label-text match against current entry labels — legacy rows saved
//     before FuenteClave existed.
//  3. No match → the row downgrades to personalizado. This is best-effort by
//     design: renaming a configuration entry silently orphans old rows.
func ReencadenarGastos(gastos []model.ProductoGasto, entradas []model.Configuracion) []FilaGasto {
	porClave := make(map[string]model.Configuracion)
	porEtiqueta := make(map[string]model.Configuracion)
	for _, e := range entradas {
		if e.Categoria != model.ConfigManufactura {
			continue
		}
		porClave[e.Clave] = e
		porEtiqueta[e.Etiqueta] = e
	}

	filas := make([]FilaGasto, 0, len(gastos))
	for _, g := range gastos {
		fila := FilaGasto{
			Tipo:          g.Tipo,
			Unidad:        g.Unidad,
			Cantidad:      g.CantidadMes,
			CostoUnitario: g.CostoUnitario,
		}

		if g.FuenteClave != "" {
			if e, ok := porClave[g.FuenteClave]; ok {
				fila.FuenteClave = e.Clave
				fila.Tipo = e.Etiqueta
				filas = append(filas, fila)
				continue
			}
		}
		if e, ok := porEtiqueta[g.Tipo]; ok {
			fila.FuenteClave = e.Clave
			filas = append(filas, fila)
			continue
		}

		fila.Personalizado = true
		filas = append(filas, fila)
	}
	return filas
}
