package costing

import "github.com/google/uuid"

// IngredientesDuplicados returns the ingredient ids that appear in more than
// one material row, in first-appearance order. An empty result means the
// recipe can be persisted directly.
func IngredientesDuplicados(filas []FilaMaterial) []uuid.UUID {
	vistos := make(map[uuid.UUID]int, len(filas))
	var duplicados []uuid.UUID
	for _, f := range filas {
		vistos[f.IngredienteID]++
		if vistos[f.IngredienteID] == 2 {
			duplicados = append(duplicados, f.IngredienteID)
		}
	}
	return duplicados
}

// FusionarDuplicados collapses every duplicate group into a single row whose
// quantity is the sum of the group's quantities, preserving first-appearance
// order. Fusing an already-fused list is a no-op (idempotent), which is what
// lets a merge-confirmed resubmission skip re-validation.
func FusionarDuplicados(filas []FilaMaterial) []FilaMaterial {
	indice := make(map[uuid.UUID]int, len(filas))
	resultado := make([]FilaMaterial, 0, len(filas))
	for _, f := range filas {
		if i, ok := indice[f.IngredienteID]; ok {
			resultado[i].Cantidad = resultado[i].Cantidad.Add(f.Cantidad)
			continue
		}
		indice[f.IngredienteID] = len(resultado)
		resultado = append(resultado, f)
	}
	return resultado
}
