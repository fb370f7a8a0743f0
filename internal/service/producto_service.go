package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/Nejosudo/Restaurante-Mayer/internal/apierror"
	"github.com/Nejosudo/Restaurante-Mayer/internal/costing"
	"github.com/Nejosudo/Restaurante-Mayer/internal/dto"
	"github.com/Nejosudo/Restaurante-Mayer/internal/model"
	"github.com/Nejosudo/Restaurante-Mayer/internal/repository"
)

// ErrProductoNoEncontrado is returned when the requested product does not exist.
var ErrProductoNoEncontrado = errors.New("producto no encontrado")

// ProductoService defines the business logic contract for menu products and
// their cost sheets.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context) ([]dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error

	// GuardarReceta persists the product's cost sheet as a full replacement.
	// Duplicated ingredient rows are rejected with *apierror.ConflictError so
	// the client can choose: modificar (edit and resubmit) or fusionar (resend
	// with ConfirmarFusion=true, which collapses duplicates summing quantities).
	GuardarReceta(ctx context.Context, id uuid.UUID, req dto.GuardarRecetaRequest) (*dto.CosteoResponse, error)

	// ObtenerCosteo re-derives the full cost profile of a stored product from
	// its persisted recipe rows plus the current configuration.
	ObtenerCosteo(ctx context.Context, id uuid.UUID) (*dto.CosteoResponse, error)

	// PreviewCosteo calculates a cost profile from unsaved form rows.
	// Nothing is read from nor written to the product tables except ingredient
	// costs; it is the endpoint the admin form fires on every edit.
	PreviewCosteo(ctx context.Context, req dto.PreviewCosteoRequest) (*dto.CosteoResponse, error)
}

type productoService struct {
	repo     repository.ProductoRepository
	ingRepo  repository.IngredienteRepository
	confRepo repository.ConfiguracionRepository
	rdb      *redis.Client
}

func NewProductoService(
	repo repository.ProductoRepository,
	ingRepo repository.IngredienteRepository,
	confRepo repository.ConfiguracionRepository,
	rdb *redis.Client,
) ProductoService {
	return &productoService{repo: repo, ingRepo: ingRepo, confRepo: confRepo, rdb: rdb}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	catID, err := uuid.Parse(req.CategoriaID)
	if err != nil {
		return nil, errors.New("categoria_id invalido")
	}
	p := &model.Producto{
		CategoriaID: catID,
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		PrecioVenta: req.PrecioVenta,
		ImagenURL:   req.ImagenURL,
		Disponible:  true,
	}
	if req.Disponible != nil {
		p.Disponible = *req.Disponible
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidarCacheMenu(ctx)
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductoNoEncontrado
	}
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) Listar(ctx context.Context) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.ListTodos(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductoResponse, len(productos))
	for i := range productos {
		resp[i] = productoToResponse(&productos[i])
	}
	return resp, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductoNoEncontrado
	}
	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.CategoriaID != nil {
		catID, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, errors.New("categoria_id invalido")
		}
		p.CategoriaID = catID
	}
	if req.PrecioVenta != nil {
		p.PrecioVenta = *req.PrecioVenta
	}
	if req.ImagenURL != nil {
		p.ImagenURL = req.ImagenURL
	}
	if req.Disponible != nil {
		p.Disponible = *req.Disponible
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidarCacheMenu(ctx)
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrProductoNoEncontrado
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidarCacheMenu(ctx)
	return nil
}

func (s *productoService) GuardarReceta(ctx context.Context, id uuid.UUID, req dto.GuardarRecetaRequest) (*dto.CosteoResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, ErrProductoNoEncontrado
	}

	materiales, err := filasMaterial(req.Ingredientes)
	if err != nil {
		return nil, err
	}

	if req.ConfirmarFusion {
		// El cliente ya eligió fusionar: colapsar sin volver a validar.
		materiales = costing.FusionarDuplicados(materiales)
	} else if dups := costing.IngredientesDuplicados(materiales); len(dups) > 0 {
		nombres, err := s.nombresIngrediente(ctx, dups)
		if err != nil {
			return nil, err
		}
		return nil, apierror.NewConflict("ingredientes duplicados en la receta", nombres)
	}

	receta := repository.RecetaCompleta{
		Ingredientes: make([]model.ProductoIngrediente, len(materiales)),
		ManoObra:     make([]model.ProductoManoObra, len(req.ManoObra)),
		Gastos:       make([]model.ProductoGasto, len(req.Gastos)),
		UnidadesMes:  req.UnidadesMes,
		DiasMes:      req.DiasMes,
	}
	for i, m := range materiales {
		receta.Ingredientes[i] = model.ProductoIngrediente{
			IngredienteID: m.IngredienteID,
			Cantidad:      m.Cantidad,
		}
	}
	for i, mo := range req.ManoObra {
		receta.ManoObra[i] = model.ProductoManoObra{
			Rol:              mo.Rol,
			CantidadPersonal: mo.CantidadPersonal,
			SalarioBase:      mo.SalarioBase,
		}
	}
	for i, g := range req.Gastos {
		receta.Gastos[i] = model.ProductoGasto{
			Tipo:          g.Tipo,
			Unidad:        g.Unidad,
			CantidadMes:   g.CantidadMes,
			CostoUnitario: g.CostoUnitario,
			FuenteClave:   g.FuenteClave,
			Personalizado: g.Personalizado,
		}
	}

	if err := s.repo.ReemplazarReceta(ctx, id, receta); err != nil {
		return nil, err
	}
	return s.ObtenerCosteo(ctx, id)
}

func (s *productoService) ObtenerCosteo(ctx context.Context, id uuid.UUID) (*dto.CosteoResponse, error) {
	p, err := s.repo.FindByIDConReceta(ctx, id)
	if err != nil {
		return nil, ErrProductoNoEncontrado
	}

	entradas, err := s.confRepo.Listar(ctx, model.ConfigLabor, model.ConfigManufactura)
	if err != nil {
		return nil, err
	}

	// Re-encadenar los gastos guardados contra la configuración vigente: las
	// filas enlazadas refrescan etiqueta y las huérfanas degradan a personalizado.
	gastos := costing.ReencadenarGastos(p.Gastos, entradas)

	in := costing.Entrada{
		ManoObra:          make([]costing.FilaManoObra, len(p.ManoObra)),
		Materiales:        make([]costing.FilaMaterial, len(p.Ingredientes)),
		Gastos:            gastos,
		UnidadesMes:       decimal.NewFromInt(int64(p.UnidadesMes)),
		PrecioVenta:       p.PrecioVenta,
		CostosIngrediente: map[uuid.UUID]decimal.Decimal{},
	}
	nombres := map[uuid.UUID]model.Ingrediente{}
	for i, mo := range p.ManoObra {
		in.ManoObra[i] = costing.FilaManoObra{Rol: mo.Rol, Cantidad: mo.CantidadPersonal, SalarioBase: mo.SalarioBase}
	}
	for i, m := range p.Ingredientes {
		in.Materiales[i] = costing.FilaMaterial{IngredienteID: m.IngredienteID, Cantidad: m.Cantidad}
		if m.Ingrediente != nil {
			in.CostosIngrediente[m.IngredienteID] = m.Ingrediente.CostoPorUnidad
			nombres[m.IngredienteID] = *m.Ingrediente
		}
	}

	perfil := costing.Calcular(in, costing.ParamsDesdeConfig(entradas))
	resp := costeoToResponse(in, perfil, nombres, p.DiasMes)
	return &resp, nil
}

func (s *productoService) PreviewCosteo(ctx context.Context, req dto.PreviewCosteoRequest) (*dto.CosteoResponse, error) {
	materiales, err := filasMaterial(req.Ingredientes)
	if err != nil {
		return nil, err
	}

	entradas, err := s.confRepo.Listar(ctx, model.ConfigLabor, model.ConfigManufactura)
	if err != nil {
		return nil, err
	}

	in := costing.Entrada{
		ManoObra:          make([]costing.FilaManoObra, len(req.ManoObra)),
		Materiales:        materiales,
		Gastos:            make([]costing.FilaGasto, len(req.Gastos)),
		UnidadesMes:       decimal.NewFromInt(int64(req.UnidadesMes)),
		PrecioVenta:       req.PrecioVenta,
		CostosIngrediente: map[uuid.UUID]decimal.Decimal{},
	}
	for i, mo := range req.ManoObra {
		in.ManoObra[i] = costing.FilaManoObra{Rol: mo.Rol, Cantidad: mo.CantidadPersonal, SalarioBase: mo.SalarioBase}
	}
	for i, g := range req.Gastos {
		in.Gastos[i] = costing.FilaGasto{
			Tipo:          g.Tipo,
			Unidad:        g.Unidad,
			Cantidad:      g.CantidadMes,
			CostoUnitario: g.CostoUnitario,
			FuenteClave:   g.FuenteClave,
			Personalizado: g.Personalizado,
		}
	}

	// Un ingrediente inexistente o inactivo no corta el preview: su fila
	// simplemente cuesta cero hasta que el usuario la corrija.
	nombres := map[uuid.UUID]model.Ingrediente{}
	ingredientes, err := s.ingRepo.Listar(ctx, false)
	if err != nil {
		return nil, err
	}
	for _, ing := range ingredientes {
		in.CostosIngrediente[ing.ID] = ing.CostoPorUnidad
		nombres[ing.ID] = ing
	}

	perfil := costing.Calcular(in, costing.ParamsDesdeConfig(entradas))
	resp := costeoToResponse(in, perfil, nombres, 0)
	return &resp, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func filasMaterial(rows []dto.FilaMaterialRequest) ([]costing.FilaMaterial, error) {
	out := make([]costing.FilaMaterial, len(rows))
	for i, r := range rows {
		id, err := uuid.Parse(r.IngredienteID)
		if err != nil {
			return nil, errors.New("ingrediente_id invalido")
		}
		out[i] = costing.FilaMaterial{IngredienteID: id, Cantidad: r.Cantidad}
	}
	return out, nil
}

func (s *productoService) nombresIngrediente(ctx context.Context, ids []uuid.UUID) ([]string, error) {
	nombres := make([]string, 0, len(ids))
	for _, id := range ids {
		ing, err := s.ingRepo.ObtenerPorID(ctx, id)
		if err != nil {
			nombres = append(nombres, id.String())
			continue
		}
		nombres = append(nombres, ing.Nombre)
	}
	return nombres, nil
}

// invalidarCacheMenu drops the cached public menu after any product mutation.
// Cache misses rebuild it on the next storefront request.
func (s *productoService) invalidarCacheMenu(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, CacheKeyMenu).Err(); err != nil {
		log.Warn().Err(err).Msg("no se pudo invalidar el cache del menu")
	}
}

func productoToResponse(p *model.Producto) dto.ProductoResponse {
	return dto.ProductoResponse{
		ID:          p.ID.String(),
		CategoriaID: p.CategoriaID.String(),
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		PrecioVenta: p.PrecioVenta,
		ImagenURL:   p.ImagenURL,
		Disponible:  p.Disponible,
		UnidadesMes: p.UnidadesMes,
		DiasMes:     p.DiasMes,
	}
}

func costeoToResponse(in costing.Entrada, perfil costing.Perfil, ingredientes map[uuid.UUID]model.Ingrediente, diasMes int) dto.CosteoResponse {
	resp := dto.CosteoResponse{
		TotalManoObraMes:   perfil.TotalManoObraMes,
		TotalMaterialesMes: perfil.TotalMaterialesMes,
		TotalGastosMes:     perfil.TotalGastosMes,
		TotalProduccionMes: perfil.TotalProduccionMes,
		CostoUnitario:      perfil.CostoUnitario,
		MargenPct:          perfil.MargenPct,
		ManoObra:           make([]dto.FilaManoObraResponse, len(in.ManoObra)),
		Ingredientes:       make([]dto.FilaMaterialResponse, len(in.Materiales)),
		Gastos:             make([]dto.FilaGastoResponse, len(in.Gastos)),
		UnidadesMes:        int(in.UnidadesMes.IntPart()),
		DiasMes:            diasMes,
		PrecioVenta:        in.PrecioVenta,
	}
	for i, fila := range in.ManoObra {
		resp.ManoObra[i] = dto.FilaManoObraResponse{
			Rol:              fila.Rol,
			CantidadPersonal: fila.Cantidad,
			SalarioBase:      fila.SalarioBase,
			TotalMes:         perfil.ManoObraPorFila[i],
		}
	}
	for i, fila := range in.Materiales {
		r := dto.FilaMaterialResponse{
			IngredienteID: fila.IngredienteID.String(),
			Cantidad:      fila.Cantidad,
			TotalMes:      perfil.MaterialesPorFila[i],
		}
		if ing, ok := ingredientes[fila.IngredienteID]; ok {
			r.NombreIngrediente = ing.Nombre
			r.Unidad = ing.Unidad
		}
		resp.Ingredientes[i] = r
	}
	for i, fila := range in.Gastos {
		resp.Gastos[i] = dto.FilaGastoResponse{
			Tipo:          fila.Tipo,
			Unidad:        fila.Unidad,
			CantidadMes:   fila.Cantidad,
			CostoUnitario: fila.CostoUnitario,
			FuenteClave:   fila.FuenteClave,
			Personalizado: fila.Personalizado,
			TotalMes:      perfil.GastosPorFila[i],
		}
	}
	return resp
}
