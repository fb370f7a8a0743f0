package tests

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Nejosudo/Restaurante-Mayer/internal/config"
	"github.com/Nejosudo/Restaurante-Mayer/internal/model"
	"github.com/Nejosudo/Restaurante-Mayer/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFacturaSvc() (service.FacturaService, *stubFacturaRepo, *stubPedidoRepo) {
	facturaRepo := newStubFacturaRepo()
	pedidoRepo := newStubPedidoRepo()
	cfg := &config.Config{PDFStoragePath: "/var/lib/mayer/facturas"}
	return service.NewFacturaService(facturaRepo, pedidoRepo, cfg), facturaRepo, pedidoRepo
}

func seedFacturaConPedido(facturaRepo *stubFacturaRepo, pedidoRepo *stubPedidoRepo, usuarioID uuid.UUID, estado string, pdf *string) *model.Factura {
	pedido := &model.Pedido{
		ID:        uuid.New(),
		UsuarioID: usuarioID,
		Total:     decimal.NewFromInt(25000),
		Estado:    model.PedidoPendiente,
	}
	pedidoRepo.pedidos[pedido.ID] = pedido

	f := &model.Factura{
		ID:       uuid.New(),
		PedidoID: pedido.ID,
		Total:    pedido.Total,
		Estado:   estado,
		PDFPath:  pdf,
	}
	facturaRepo.facturas[f.ID] = f
	return f
}

func TestRutaPDF_Generada(t *testing.T) {
	svc, facturaRepo, pedidoRepo := buildFacturaSvc()
	duenio := uuid.New()
	nombre := "factura_42.pdf"
	f := seedFacturaConPedido(facturaRepo, pedidoRepo, duenio, "generada", &nombre)

	ruta, err := svc.RutaPDF(context.Background(), duenio, false, f.ID)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/var/lib/mayer/facturas", "factura_42.pdf"), ruta)
}

func TestRutaPDF_PendienteNoDisponible(t *testing.T) {
	svc, facturaRepo, pedidoRepo := buildFacturaSvc()
	duenio := uuid.New()
	f := seedFacturaConPedido(facturaRepo, pedidoRepo, duenio, "pendiente", nil)

	_, err := svc.RutaPDF(context.Background(), duenio, false, f.ID)
	assert.ErrorContains(t, err, "aun no esta disponible")
}

func TestRutaPDF_PropiedadAjena(t *testing.T) {
	svc, facturaRepo, pedidoRepo := buildFacturaSvc()
	nombre := "factura_7.pdf"
	f := seedFacturaConPedido(facturaRepo, pedidoRepo, uuid.New(), "generada", &nombre)

	// Stranger reads not-found; admin bypasses ownership.
	_, err := svc.RutaPDF(context.Background(), uuid.New(), false, f.ID)
	assert.ErrorIs(t, err, service.ErrFacturaNoEncontrada)

	_, err = svc.RutaPDF(context.Background(), uuid.New(), true, f.ID)
	assert.NoError(t, err)
}

func TestObtenerFacturaPorPedido(t *testing.T) {
	svc, facturaRepo, pedidoRepo := buildFacturaSvc()
	duenio := uuid.New()
	f := seedFacturaConPedido(facturaRepo, pedidoRepo, duenio, "pendiente", nil)

	resp, err := svc.ObtenerPorPedido(context.Background(), duenio, false, f.PedidoID)
	require.NoError(t, err)
	assert.Equal(t, f.ID.String(), resp.ID)
	assert.Equal(t, "pendiente", resp.Estado)
	assert.Nil(t, resp.PDFPath)

	_, err = svc.ObtenerPorPedido(context.Background(), duenio, false, uuid.New())
	assert.ErrorIs(t, err, service.ErrFacturaNoEncontrada)
}
