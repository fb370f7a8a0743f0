package costing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngredientesDuplicados(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	t.Run("sin duplicados", func(t *testing.T) {
		dups := IngredientesDuplicados([]FilaMaterial{
			{IngredienteID: a, Cantidad: dec("3")},
			{IngredienteID: b, Cantidad: dec("2")},
		})
		assert.Empty(t, dups)
	})

	t.Run("detecta repetidos una sola vez", func(t *testing.T) {
		dups := IngredientesDuplicados([]FilaMaterial{
			{IngredienteID: a, Cantidad: dec("3")},
			{IngredienteID: b, Cantidad: dec("2")},
			{IngredienteID: a, Cantidad: dec("4")},
			{IngredienteID: a, Cantidad: dec("1")},
		})
		require.Equal(t, []uuid.UUID{a}, dups)
	})
}

func TestFusionarDuplicados(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	filas := []FilaMaterial{
		{IngredienteID: a, Cantidad: dec("3")},
		{IngredienteID: b, Cantidad: dec("2")},
		{IngredienteID: a, Cantidad: dec("4")},
	}

	fusion := FusionarDuplicados(filas)
	require.Len(t, fusion, 2)
	assert.Equal(t, a, fusion[0].IngredienteID)
	requireDec(t, "cantidad fusionada", fusion[0].Cantidad, "7")
	assert.Equal(t, b, fusion[1].IngredienteID)
	requireDec(t, "cantidad intacta", fusion[1].Cantidad, "2")

	// La lista original no se toca.
	requireDec(t, "original fila 0", filas[0].Cantidad, "3")

	// Fusionar dos veces produce lo mismo que una — permite que el reenvío
	// confirmado se salte la re-validación sin riesgo.
	otraVez := FusionarDuplicados(fusion)
	require.Len(t, otraVez, 2)
	requireDec(t, "idempotente", otraVez[0].Cantidad, "7")
	assert.Empty(t, IngredientesDuplicados(fusion))
}
