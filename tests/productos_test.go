package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/Nejosudo/Restaurante-Mayer/internal/apierror"
	"github.com/Nejosudo/Restaurante-Mayer/internal/dto"
	"github.com/Nejosudo/Restaurante-Mayer/internal/model"
	"github.com/Nejosudo/Restaurante-Mayer/internal/repository"
	"github.com/Nejosudo/Restaurante-Mayer/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubProductoRepo is an in-memory ProductoRepository. Recipes are stored as
// the raw RecetaCompleta and hydrated on FindByIDConReceta the way GORM's
// Preload would, pulling ingredient pointers from the shared ingredientes map.
type stubProductoRepo struct {
	productos    map[uuid.UUID]*model.Producto
	recetas      map[uuid.UUID]repository.RecetaCompleta
	ingredientes map[uuid.UUID]*model.Ingrediente
}

func newStubProductoRepo(ingredientes map[uuid.UUID]*model.Ingrediente) *stubProductoRepo {
	return &stubProductoRepo{
		productos:    make(map[uuid.UUID]*model.Producto),
		recetas:      make(map[uuid.UUID]repository.RecetaCompleta),
		ingredientes: ingredientes,
	}
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) FindByIDConReceta(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *p
	receta := r.recetas[id]
	copia.UnidadesMes = receta.UnidadesMes
	copia.DiasMes = receta.DiasMes
	copia.ManoObra = receta.ManoObra
	copia.Gastos = receta.Gastos
	copia.Ingredientes = make([]model.ProductoIngrediente, len(receta.Ingredientes))
	for i, fila := range receta.Ingredientes {
		fila.Ingrediente = r.ingredientes[fila.IngredienteID]
		copia.Ingredientes[i] = fila
	}
	return &copia, nil
}

func (r *stubProductoRepo) ListDisponibles(_ context.Context, categoriaID *uuid.UUID) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if !p.Disponible {
			continue
		}
		if categoriaID != nil && p.CategoriaID != *categoriaID {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductoRepo) ListTodos(_ context.Context) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.productos, id)
	delete(r.recetas, id)
	return nil
}

func (r *stubProductoRepo) ReemplazarReceta(_ context.Context, productoID uuid.UUID, receta repository.RecetaCompleta) error {
	if _, ok := r.productos[productoID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.recetas[productoID] = receta
	r.productos[productoID].UnidadesMes = receta.UnidadesMes
	r.productos[productoID].DiasMes = receta.DiasMes
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// stubIngredienteRepo shares its backing map with stubProductoRepo so recipe
// hydration sees the same ingredients the service resolves names from.
type stubIngredienteRepo struct {
	ingredientes map[uuid.UUID]*model.Ingrediente
	historial    []model.HistorialCosto
}

func newStubIngredienteRepo() *stubIngredienteRepo {
	return &stubIngredienteRepo{ingredientes: make(map[uuid.UUID]*model.Ingrediente)}
}

func (r *stubIngredienteRepo) Crear(_ context.Context, ing *model.Ingrediente) error {
	if ing.ID == uuid.Nil {
		ing.ID = uuid.New()
	}
	r.ingredientes[ing.ID] = ing
	return nil
}

func (r *stubIngredienteRepo) Listar(_ context.Context, soloActivos bool) ([]model.Ingrediente, error) {
	var out []model.Ingrediente
	for _, ing := range r.ingredientes {
		if soloActivos && !ing.Activo {
			continue
		}
		out = append(out, *ing)
	}
	return out, nil
}

func (r *stubIngredienteRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Ingrediente, error) {
	ing, ok := r.ingredientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return ing, nil
}

func (r *stubIngredienteRepo) Actualizar(_ context.Context, ing *model.Ingrediente) error {
	r.ingredientes[ing.ID] = ing
	return nil
}

func (r *stubIngredienteRepo) Desactivar(_ context.Context, id uuid.UUID) error {
	ing, ok := r.ingredientes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	ing.Activo = false
	return nil
}

func (r *stubIngredienteRepo) ActualizarCosto(_ context.Context, id uuid.UUID, ing model.Ingrediente, hist *model.HistorialCosto) error {
	actual, ok := r.ingredientes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	actual.CostoPorUnidad = ing.CostoPorUnidad
	r.historial = append(r.historial, *hist)
	return nil
}

func (r *stubIngredienteRepo) ListarHistorial(_ context.Context, ingredienteID uuid.UUID) ([]model.HistorialCosto, error) {
	var out []model.HistorialCosto
	for _, h := range r.historial {
		if h.IngredienteID == ingredienteID {
			out = append(out, h)
		}
	}
	return out, nil
}

var _ repository.IngredienteRepository = (*stubIngredienteRepo)(nil)

// stubConfiguracionRepo is keyed by clave, like the real table.
type stubConfiguracionRepo struct {
	entradas map[string]*model.Configuracion
}

func newStubConfiguracionRepo() *stubConfiguracionRepo {
	return &stubConfiguracionRepo{entradas: make(map[string]*model.Configuracion)}
}

func (r *stubConfiguracionRepo) Listar(_ context.Context, categorias ...string) ([]model.Configuracion, error) {
	var out []model.Configuracion
	for _, e := range r.entradas {
		if len(categorias) > 0 {
			match := false
			for _, c := range categorias {
				if e.Categoria == c {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubConfiguracionRepo) ObtenerPorClave(_ context.Context, clave string) (*model.Configuracion, error) {
	e, ok := r.entradas[clave]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (r *stubConfiguracionRepo) ActualizarValor(_ context.Context, clave, valor string) error {
	e, ok := r.entradas[clave]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.Valor = valor
	return nil
}

func (r *stubConfiguracionRepo) Upsert(_ context.Context, c *model.Configuracion) error {
	r.entradas[c.Clave] = c
	return nil
}

var _ repository.ConfiguracionRepository = (*stubConfiguracionRepo)(nil)

// ── Seed helpers ──────────────────────────────────────────────────────────────

func seedIngrediente(repo *stubIngredienteRepo, nombre, unidad string, costo float64) *model.Ingrediente {
	ing := &model.Ingrediente{
		ID:             uuid.New(),
		Nombre:         nombre,
		Unidad:         unidad,
		CostoPorUnidad: decimal.NewFromFloat(costo),
		Activo:         true,
	}
	repo.ingredientes[ing.ID] = ing
	return ing
}

func seedProducto(repo *stubProductoRepo, nombre string, precioVenta float64) *model.Producto {
	p := &model.Producto{
		ID:          uuid.New(),
		CategoriaID: uuid.New(),
		Nombre:      nombre,
		PrecioVenta: decimal.NewFromFloat(precioVenta),
		Disponible:  true,
	}
	repo.productos[p.ID] = p
	return p
}

// seedConfigLaboral loads a deliberately round parameter set:
// factor de carga = 1 + 0.10 + 0.05 + 0.05 = 1.20
func seedConfigLaboral(repo *stubConfiguracionRepo) {
	entradas := []model.Configuracion{
		{Clave: model.ClaveSalarioMinimo, Valor: "1000000", Categoria: model.ConfigLabor, Etiqueta: "Salario mínimo"},
		{Clave: model.ClaveAuxilioTransporte, Valor: "100000", Categoria: model.ConfigLabor, Etiqueta: "Auxilio de transporte"},
		{Clave: model.ClaveSeguridadSocial, Valor: "0.10", Categoria: model.ConfigLabor, Etiqueta: "Seguridad social"},
		{Clave: model.ClaveParafiscales, Valor: "0.05", Categoria: model.ConfigLabor, Etiqueta: "Parafiscales"},
		{Clave: model.ClavePrestaciones, Valor: "0.05", Categoria: model.ConfigLabor, Etiqueta: "Prestaciones"},
		{Clave: model.ClaveDotacionAnual, Valor: "120000", Categoria: model.ConfigLabor, Etiqueta: "Dotación anual"},
		{Clave: "manufactura.gas", Valor: "180000", Categoria: model.ConfigManufactura, Etiqueta: "Gas"},
	}
	for i := range entradas {
		repo.entradas[entradas[i].Clave] = &entradas[i]
	}
}

func buildProductoSvc() (service.ProductoService, *stubProductoRepo, *stubIngredienteRepo, *stubConfiguracionRepo) {
	ingRepo := newStubIngredienteRepo()
	prodRepo := newStubProductoRepo(ingRepo.ingredientes)
	confRepo := newStubConfiguracionRepo()
	seedConfigLaboral(confRepo)
	svc := service.NewProductoService(prodRepo, ingRepo, confRepo, nil)
	return svc, prodRepo, ingRepo, confRepo
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestGuardarReceta_IngredientesDuplicados(t *testing.T) {
	svc, prodRepo, ingRepo, _ := buildProductoSvc()
	harina := seedIngrediente(ingRepo, "Harina de trigo", model.UnidadGramo, 8)
	p := seedProducto(prodRepo, "Arepa rellena", 9000)

	_, err := svc.GuardarReceta(context.Background(), p.ID, dto.GuardarRecetaRequest{
		Ingredientes: []dto.FilaMaterialRequest{
			{IngredienteID: harina.ID.String(), Cantidad: decimal.NewFromFloat(120)},
			{IngredienteID: harina.ID.String(), Cantidad: decimal.NewFromFloat(30)},
		},
		UnidadesMes: 500,
		DiasMes:     26,
	})
	require.Error(t, err)

	var conflicto *apierror.ConflictError
	require.True(t, errors.As(err, &conflicto))
	assert.Contains(t, conflicto.Duplicados, "Harina de trigo")

	// Nothing persisted: the recipe stays untouched until the client resolves.
	_, guardada := prodRepo.recetas[p.ID]
	assert.False(t, guardada)
}

func TestGuardarReceta_FusionConfirmada(t *testing.T) {
	svc, prodRepo, ingRepo, _ := buildProductoSvc()
	harina := seedIngrediente(ingRepo, "Harina de trigo", model.UnidadGramo, 8)
	p := seedProducto(prodRepo, "Arepa rellena", 9000)

	costeo, err := svc.GuardarReceta(context.Background(), p.ID, dto.GuardarRecetaRequest{
		Ingredientes: []dto.FilaMaterialRequest{
			{IngredienteID: harina.ID.String(), Cantidad: decimal.NewFromFloat(120)},
			{IngredienteID: harina.ID.String(), Cantidad: decimal.NewFromFloat(30)},
		},
		UnidadesMes:     100,
		DiasMes:         26,
		ConfirmarFusion: true,
	})
	require.NoError(t, err)

	// One collapsed row with quantities summed: 120 + 30 = 150.
	receta := prodRepo.recetas[p.ID]
	require.Len(t, receta.Ingredientes, 1)
	assert.Equal(t, "150", receta.Ingredientes[0].Cantidad.String())

	// Materiales: 150 g/unidad × 100 unidades × $8 = 120000.
	require.Len(t, costeo.Ingredientes, 1)
	assert.Equal(t, "120000", costeo.TotalMaterialesMes.String())
	assert.Equal(t, "Harina de trigo", costeo.Ingredientes[0].NombreIngrediente)
}

func TestObtenerCosteo_Totales(t *testing.T) {
	svc, prodRepo, ingRepo, _ := buildProductoSvc()
	harina := seedIngrediente(ingRepo, "Harina de trigo", model.UnidadGramo, 20)
	p := seedProducto(prodRepo, "Pan campesino", 4000)

	_, err := svc.GuardarReceta(context.Background(), p.ID, dto.GuardarRecetaRequest{
		Ingredientes: []dto.FilaMaterialRequest{
			{IngredienteID: harina.ID.String(), Cantidad: decimal.NewFromFloat(0.5)},
		},
		ManoObra: []dto.FilaManoObraRequest{
			{Rol: "Cocinero", CantidadPersonal: 2, SalarioBase: decimal.NewFromInt(1000000)},
		},
		Gastos: []dto.FilaGastoRequest{
			{Tipo: "Gas", CantidadMes: decimal.NewFromInt(30), CostoUnitario: decimal.NewFromInt(5000), FuenteClave: "manufactura.gas"},
		},
		UnidadesMes: 1000,
		DiasMes:     26,
	})
	require.NoError(t, err)

	costeo, err := svc.ObtenerCosteo(context.Background(), p.ID)
	require.NoError(t, err)

	// Mano de obra: 2×1000000×1.20 + 2×100000 + 2×120000/12 = 2620000
	assert.Equal(t, "2620000", costeo.TotalManoObraMes.String())
	// Materiales: 0.5 × 1000 × 20 = 10000
	assert.Equal(t, "10000", costeo.TotalMaterialesMes.String())
	// Gastos: 30 × 5000 = 150000
	assert.Equal(t, "150000", costeo.TotalGastosMes.String())
	assert.Equal(t, "2780000", costeo.TotalProduccionMes.String())
	// Unitario: 2780000 / 1000 = 2780
	assert.Equal(t, "2780", costeo.CostoUnitario.String())
	// Margen: (4000 − 2780) / 4000 × 100 = 30.5 %
	assert.True(t, costeo.MargenPct.Equal(decimal.NewFromFloat(30.5)), "margen = %s", costeo.MargenPct)
	assert.Equal(t, 26, costeo.DiasMes)
}

func TestObtenerCosteo_SinUnidadesNoDivide(t *testing.T) {
	svc, prodRepo, ingRepo, _ := buildProductoSvc()
	harina := seedIngrediente(ingRepo, "Harina de trigo", model.UnidadGramo, 20)
	p := seedProducto(prodRepo, "Pan campesino", 4000)

	_, err := svc.GuardarReceta(context.Background(), p.ID, dto.GuardarRecetaRequest{
		Ingredientes: []dto.FilaMaterialRequest{
			{IngredienteID: harina.ID.String(), Cantidad: decimal.NewFromFloat(0.5)},
		},
		UnidadesMes: 0,
	})
	require.NoError(t, err)

	costeo, err := svc.ObtenerCosteo(context.Background(), p.ID)
	require.NoError(t, err)
	// Zero production volume: materials contribute zero and no division happens.
	assert.True(t, costeo.CostoUnitario.IsZero())
	assert.True(t, costeo.TotalMaterialesMes.IsZero())
}

func TestObtenerCosteo_GastoEnlazadoYHuerfano(t *testing.T) {
	svc, prodRepo, _, _ := buildProductoSvc()
	p := seedProducto(prodRepo, "Pan campesino", 4000)

	_, err := svc.GuardarReceta(context.Background(), p.ID, dto.GuardarRecetaRequest{
		Gastos: []dto.FilaGastoRequest{
			{Tipo: "Gas propano", CantidadMes: decimal.NewFromInt(1), CostoUnitario: decimal.NewFromInt(180000), FuenteClave: "manufactura.gas"},
			{Tipo: "Cuota extractor", CantidadMes: decimal.NewFromInt(1), CostoUnitario: decimal.NewFromInt(90000), FuenteClave: "manufactura.borrada"},
		},
		UnidadesMes: 100,
	})
	require.NoError(t, err)

	costeo, err := svc.ObtenerCosteo(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, costeo.Gastos, 2)

	// Linked row refreshed against current configuration label.
	assert.Equal(t, "Gas", costeo.Gastos[0].Tipo)
	assert.Equal(t, "manufactura.gas", costeo.Gastos[0].FuenteClave)
	assert.False(t, costeo.Gastos[0].Personalizado)

	// Orphaned source key downgrades to a custom line, amount intact.
	assert.True(t, costeo.Gastos[1].Personalizado)
	assert.Equal(t, "90000", costeo.Gastos[1].TotalMes.String())
}

func TestPreviewCosteo_IngredienteDesconocido(t *testing.T) {
	svc, _, ingRepo, _ := buildProductoSvc()
	seedIngrediente(ingRepo, "Queso campesino", model.UnidadGramo, 14)

	costeo, err := svc.PreviewCosteo(context.Background(), dto.PreviewCosteoRequest{
		Ingredientes: []dto.FilaMaterialRequest{
			{IngredienteID: uuid.New().String(), Cantidad: decimal.NewFromFloat(50)},
		},
		UnidadesMes: 200,
		PrecioVenta: decimal.NewFromInt(5000),
	})
	require.NoError(t, err)
	// Unknown ingredient costs zero; the preview never fails mid-edit.
	assert.True(t, costeo.TotalMaterialesMes.IsZero())
	require.Len(t, costeo.Ingredientes, 1)
	assert.True(t, costeo.Ingredientes[0].TotalMes.IsZero())
}

func TestEliminar_ProductoInexistente(t *testing.T) {
	svc, _, _, _ := buildProductoSvc()
	err := svc.Eliminar(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrProductoNoEncontrado)
}
