package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Nejosudo/Restaurante-Mayer/internal/model"
)

// CategoriaRepository define el acceso a datos de categorías del menú.
type CategoriaRepository interface {
	Crear(ctx context.Context, c *model.Categoria) error
	Listar(ctx context.Context, soloActivas bool) ([]model.Categoria, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Categoria, error)
	ObtenerPorNombre(ctx context.Context, nombre string) (*model.Categoria, error)
	ObtenerPorSlug(ctx context.Context, slug string) (*model.Categoria, error)
	Actualizar(ctx context.Context, c *model.Categoria) error
}

type categoriaRepo struct{ db *gorm.DB }

func NewCategoriaRepository(db *gorm.DB) CategoriaRepository { return &categoriaRepo{db: db} }

func (r *categoriaRepo) Crear(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoriaRepo) Listar(ctx context.Context, soloActivas bool) ([]model.Categoria, error) {
	var categorias []model.Categoria
	q := r.db.WithContext(ctx).Order("nombre ASC")
	if soloActivas {
		q = q.Where("activo = true")
	}
	err := q.Find(&categorias).Error
	return categorias, err
}

func (r *categoriaRepo) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Categoria, error) {
	var c model.Categoria
	err := r.db.WithContext(ctx).First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoriaRepo) ObtenerPorNombre(ctx context.Context, nombre string) (*model.Categoria, error) {
	var c model.Categoria
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoriaRepo) ObtenerPorSlug(ctx context.Context, slug string) (*model.Categoria, error) {
	var c model.Categoria
	err := r.db.WithContext(ctx).Where("slug = ? AND activo = true", slug).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoriaRepo) Actualizar(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Save(c).Error
}
