package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Nejosudo/Restaurante-Mayer/internal/model"
)

// ConfiguracionRepository define el acceso a las variables globales de costos.
type ConfiguracionRepository interface {
	Listar(ctx context.Context, categorias ...string) ([]model.Configuracion, error)
	ObtenerPorClave(ctx context.Context, clave string) (*model.Configuracion, error)
	ActualizarValor(ctx context.Context, clave, valor string) error
	// Upsert crea la entrada si no existe o actualiza su valor si ya existe.
	Upsert(ctx context.Context, c *model.Configuracion) error
}

type configuracionRepo struct{ db *gorm.DB }

func NewConfiguracionRepository(db *gorm.DB) ConfiguracionRepository {
	return &configuracionRepo{db: db}
}

func (r *configuracionRepo) Listar(ctx context.Context, categorias ...string) ([]model.Configuracion, error) {
	var entradas []model.Configuracion
	q := r.db.WithContext(ctx).Order("categoria ASC, clave ASC")
	if len(categorias) > 0 {
		q = q.Where("categoria IN ?", categorias)
	}
	err := q.Find(&entradas).Error
	return entradas, err
}

func (r *configuracionRepo) ObtenerPorClave(ctx context.Context, clave string) (*model.Configuracion, error) {
	var c model.Configuracion
	err := r.db.WithContext(ctx).Where("clave = ?", clave).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *configuracionRepo) ActualizarValor(ctx context.Context, clave, valor string) error {
	res := r.db.WithContext(ctx).Model(&model.Configuracion{}).
		Where("clave = ?", clave).Update("valor", valor)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *configuracionRepo) Upsert(ctx context.Context, c *model.Configuracion) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "clave"}},
		DoUpdates: clause.AssignmentColumns([]string{"valor", "etiqueta", "descripcion"}),
	}).Create(c).Error
}
