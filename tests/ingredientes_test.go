package tests

import (
	"context"
	"testing"

	"github.com/Nejosudo/Restaurante-Mayer/internal/dto"
	"github.com/Nejosudo/Restaurante-Mayer/internal/model"
	"github.com/Nejosudo/Restaurante-Mayer/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrearIngrediente_UnidadInvalida(t *testing.T) {
	svc := service.NewIngredienteService(newStubIngredienteRepo())

	_, err := svc.Crear(context.Background(), dto.CrearIngredienteRequest{
		Nombre:         "Harina de trigo",
		Unidad:         "libra",
		CostoPorUnidad: decimal.NewFromInt(8),
	})
	assert.ErrorContains(t, err, "unidad invalida")
}

func TestActualizarCosto_DejaHistorial(t *testing.T) {
	repo := newStubIngredienteRepo()
	svc := service.NewIngredienteService(repo)
	ing := seedIngrediente(repo, "Queso campesino", model.UnidadGramo, 14)

	resp, err := svc.ActualizarCosto(context.Background(), ing.ID, dto.ActualizarCostoRequest{
		CostoPorUnidad: decimal.NewFromFloat(16.5),
		Motivo:         "manual",
	})
	require.NoError(t, err)
	assert.Equal(t, "16.5", resp.CostoPorUnidad.String())

	historial, err := svc.ListarHistorial(context.Background(), ing.ID)
	require.NoError(t, err)
	require.Len(t, historial, 1)
	assert.Equal(t, "14", historial[0].CostoAntes.String())
	assert.Equal(t, "16.5", historial[0].CostoDespues.String())
	assert.Equal(t, "manual", historial[0].Motivo)
}

func TestDesactivarIngrediente(t *testing.T) {
	repo := newStubIngredienteRepo()
	svc := service.NewIngredienteService(repo)
	ing := seedIngrediente(repo, "Cilantro", model.UnidadGramo, 2)

	require.NoError(t, svc.Desactivar(context.Background(), ing.ID))
	assert.False(t, repo.ingredientes[ing.ID].Activo)

	// Deactivated ingredients disappear from the active listing but their
	// rows keep costing recipes that still reference them.
	activos, err := svc.Listar(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, activos)

	err = svc.Desactivar(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrIngredienteNoEncontrado)
}
