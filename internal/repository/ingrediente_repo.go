package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Nejosudo/Restaurante-Mayer/internal/model"
)

// IngredienteRepository define el acceso a datos de ingredientes y su
// historial de costos.
type IngredienteRepository interface {
	Crear(ctx context.Context, ing *model.Ingrediente) error
	Listar(ctx context.Context, soloActivos bool) ([]model.Ingrediente, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Ingrediente, error)
	Actualizar(ctx context.Context, ing *model.Ingrediente) error
	Desactivar(ctx context.Context, id uuid.UUID) error

	// ActualizarCosto cambia costo_por_unidad y registra el HistorialCosto
	// en la misma transacción — el historial nunca pierde un cambio.
	ActualizarCosto(ctx context.Context, id uuid.UUID, nuevoCosto model.Ingrediente, hist *model.HistorialCosto) error
	ListarHistorial(ctx context.Context, ingredienteID uuid.UUID) ([]model.HistorialCosto, error)
}

type ingredienteRepo struct{ db *gorm.DB }

func NewIngredienteRepository(db *gorm.DB) IngredienteRepository { return &ingredienteRepo{db: db} }

func (r *ingredienteRepo) Crear(ctx context.Context, ing *model.Ingrediente) error {
	return r.db.WithContext(ctx).Create(ing).Error
}

func (r *ingredienteRepo) Listar(ctx context.Context, soloActivos bool) ([]model.Ingrediente, error) {
	var ingredientes []model.Ingrediente
	q := r.db.WithContext(ctx).Order("nombre ASC")
	if soloActivos {
		q = q.Where("activo = true")
	}
	err := q.Find(&ingredientes).Error
	return ingredientes, err
}

func (r *ingredienteRepo) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Ingrediente, error) {
	var ing model.Ingrediente
	err := r.db.WithContext(ctx).First(&ing, id).Error
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

func (r *ingredienteRepo) Actualizar(ctx context.Context, ing *model.Ingrediente) error {
	return r.db.WithContext(ctx).Save(ing).Error
}

func (r *ingredienteRepo) Desactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Ingrediente{}).
		Where("id = ?", id).Update("activo", false).Error
}

func (r *ingredienteRepo) ActualizarCosto(ctx context.Context, id uuid.UUID, ing model.Ingrediente, hist *model.HistorialCosto) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Ingrediente{}).Where("id = ?", id).
			Update("costo_por_unidad", ing.CostoPorUnidad).Error; err != nil {
			return err
		}
		return tx.Create(hist).Error
	})
}

func (r *ingredienteRepo) ListarHistorial(ctx context.Context, ingredienteID uuid.UUID) ([]model.HistorialCosto, error) {
	var historial []model.HistorialCosto
	err := r.db.WithContext(ctx).
		Where("ingrediente_id = ?", ingredienteID).
		Order("created_at DESC").
		Find(&historial).Error
	return historial, err
}
