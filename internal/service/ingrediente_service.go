package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Nejosudo/Restaurante-Mayer/internal/dto"
	"github.com/Nejosudo/Restaurante-Mayer/internal/model"
	"github.com/Nejosudo/Restaurante-Mayer/internal/repository"
)

var ErrIngredienteNoEncontrado = errors.New("ingrediente no encontrado")

// IngredienteService defines business operations over raw materials and their
// cost history.
type IngredienteService interface {
	Crear(ctx context.Context, req dto.CrearIngredienteRequest) (*dto.IngredienteResponse, error)
	Listar(ctx context.Context, soloActivos bool) ([]dto.IngredienteResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.IngredienteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarIngredienteRequest) (*dto.IngredienteResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error

	// ActualizarCosto cambia el costo por unidad dejando siempre una fila de
	// historial. El costeo de productos toma el costo nuevo en su siguiente
	// recálculo — nada más se toca.
	ActualizarCosto(ctx context.Context, id uuid.UUID, req dto.ActualizarCostoRequest) (*dto.IngredienteResponse, error)
	ListarHistorial(ctx context.Context, id uuid.UUID) ([]dto.HistorialCostoResponse, error)
}

type ingredienteService struct {
	repo repository.IngredienteRepository
}

func NewIngredienteService(repo repository.IngredienteRepository) IngredienteService {
	return &ingredienteService{repo: repo}
}

func (s *ingredienteService) Crear(ctx context.Context, req dto.CrearIngredienteRequest) (*dto.IngredienteResponse, error) {
	if !model.UnidadValida(req.Unidad) {
		return nil, errors.New("unidad invalida: debe ser gramo, mililitro o unidad")
	}
	ing := &model.Ingrediente{
		Nombre:         req.Nombre,
		Unidad:         req.Unidad,
		CostoPorUnidad: req.CostoPorUnidad,
		Stock:          req.Stock,
		Activo:         true,
	}
	if err := s.repo.Crear(ctx, ing); err != nil {
		return nil, err
	}
	resp := ingredienteToResponse(ing)
	return &resp, nil
}

func (s *ingredienteService) Listar(ctx context.Context, soloActivos bool) ([]dto.IngredienteResponse, error) {
	list, err := s.repo.Listar(ctx, soloActivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.IngredienteResponse, len(list))
	for i := range list {
		resp[i] = ingredienteToResponse(&list[i])
	}
	return resp, nil
}

func (s *ingredienteService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.IngredienteResponse, error) {
	ing, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, ErrIngredienteNoEncontrado
	}
	resp := ingredienteToResponse(ing)
	return &resp, nil
}

func (s *ingredienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarIngredienteRequest) (*dto.IngredienteResponse, error) {
	ing, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, ErrIngredienteNoEncontrado
	}
	if req.Nombre != nil {
		ing.Nombre = *req.Nombre
	}
	if req.Unidad != nil {
		if !model.UnidadValida(*req.Unidad) {
			return nil, errors.New("unidad invalida: debe ser gramo, mililitro o unidad")
		}
		ing.Unidad = *req.Unidad
	}
	if req.Stock != nil {
		ing.Stock = *req.Stock
	}
	if err := s.repo.Actualizar(ctx, ing); err != nil {
		return nil, err
	}
	resp := ingredienteToResponse(ing)
	return &resp, nil
}

func (s *ingredienteService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrIngredienteNoEncontrado
		}
		return err
	}
	return s.repo.Desactivar(ctx, id)
}

func (s *ingredienteService) ActualizarCosto(ctx context.Context, id uuid.UUID, req dto.ActualizarCostoRequest) (*dto.IngredienteResponse, error) {
	ing, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, ErrIngredienteNoEncontrado
	}

	hist := &model.HistorialCosto{
		IngredienteID: id,
		CostoAntes:    ing.CostoPorUnidad,
		CostoDespues:  req.CostoPorUnidad,
		Motivo:        req.Motivo,
	}
	nuevo := *ing
	nuevo.CostoPorUnidad = req.CostoPorUnidad
	if err := s.repo.ActualizarCosto(ctx, id, nuevo, hist); err != nil {
		return nil, err
	}
	resp := ingredienteToResponse(&nuevo)
	return &resp, nil
}

func (s *ingredienteService) ListarHistorial(ctx context.Context, id uuid.UUID) ([]dto.HistorialCostoResponse, error) {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		return nil, ErrIngredienteNoEncontrado
	}
	historial, err := s.repo.ListarHistorial(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.HistorialCostoResponse, len(historial))
	for i, h := range historial {
		resp[i] = dto.HistorialCostoResponse{
			ID:            h.ID.String(),
			IngredienteID: h.IngredienteID.String(),
			CostoAntes:    h.CostoAntes,
			CostoDespues:  h.CostoDespues,
			Motivo:        h.Motivo,
			CreatedAt:     h.CreatedAt,
		}
	}
	return resp, nil
}

func ingredienteToResponse(ing *model.Ingrediente) dto.IngredienteResponse {
	return dto.IngredienteResponse{
		ID:             ing.ID.String(),
		Nombre:         ing.Nombre,
		Unidad:         ing.Unidad,
		CostoPorUnidad: ing.CostoPorUnidad,
		Stock:          ing.Stock,
		Activo:         ing.Activo,
	}
}
