package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Nejosudo/Restaurante-Mayer/internal/model"
)

// RecetaCompleta agrupa las tres listas de filas que componen la hoja de
// costos de un producto, más los campos de volumen. Se persiste siempre como
// reemplazo total: borrar lo anterior e insertar el conjunto actual.
type RecetaCompleta struct {
	Ingredientes []model.ProductoIngrediente
	ManoObra     []model.ProductoManoObra
	Gastos       []model.ProductoGasto
	UnidadesMes  int
	DiasMes      int
}

// ProductoRepository defines the data access contract for menu products and
// their recipe relations.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	// FindByIDConReceta precarga las tres relaciones de la hoja de costos.
	FindByIDConReceta(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	ListDisponibles(ctx context.Context, categoriaID *uuid.UUID) ([]model.Producto, error)
	ListTodos(ctx context.Context) ([]model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ReemplazarReceta replaces the product's three relation sets and volume
	// fields inside ONE transaction: the delete+insert sequence is atomic, so
	// a failed save can never leave the recipe half-written.
	ReemplazarReceta(ctx context.Context, productoID uuid.UUID, receta RecetaCompleta) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *productoRepo) FindByIDConReceta(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).
		Preload("Ingredientes").
		Preload("Ingredientes.Ingrediente").
		Preload("ManoObra").
		Preload("Gastos").
		First(&p, id).Error
	return &p, err
}

func (r *productoRepo) ListDisponibles(ctx context.Context, categoriaID *uuid.UUID) ([]model.Producto, error) {
	var productos []model.Producto
	q := r.db.WithContext(ctx).Where("disponible = true").Order("nombre ASC")
	if categoriaID != nil {
		q = q.Where("categoria_id = ?", *categoriaID)
	}
	err := q.Find(&productos).Error
	return productos, err
}

func (r *productoRepo) ListTodos(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).
		Preload("Ingredientes").
		Preload("ManoObra").
		Preload("Gastos").
		Order("nombre ASC").
		Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// Las relaciones de receta se eliminan en la misma transacción: un
	// producto borrado jamás deja filas huérfanas en la hoja de costos.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("producto_id = ?", id).Delete(&model.ProductoIngrediente{}).Error; err != nil {
			return err
		}
		if err := tx.Where("producto_id = ?", id).Delete(&model.ProductoManoObra{}).Error; err != nil {
			return err
		}
		if err := tx.Where("producto_id = ?", id).Delete(&model.ProductoGasto{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Producto{}, id).Error
	})
}

func (r *productoRepo) ReemplazarReceta(ctx context.Context, productoID uuid.UUID, receta RecetaCompleta) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{&model.ProductoIngrediente{}, &model.ProductoManoObra{}, &model.ProductoGasto{}} {
			if err := tx.Where("producto_id = ?", productoID).Delete(m).Error; err != nil {
				return err
			}
		}

		for i := range receta.Ingredientes {
			receta.Ingredientes[i].ProductoID = productoID
		}
		if len(receta.Ingredientes) > 0 {
			if err := tx.Create(&receta.Ingredientes).Error; err != nil {
				return err
			}
		}

		for i := range receta.ManoObra {
			receta.ManoObra[i].ProductoID = productoID
		}
		if len(receta.ManoObra) > 0 {
			if err := tx.Create(&receta.ManoObra).Error; err != nil {
				return err
			}
		}

		for i := range receta.Gastos {
			receta.Gastos[i].ProductoID = productoID
		}
		if len(receta.Gastos) > 0 {
			if err := tx.Create(&receta.Gastos).Error; err != nil {
				return err
			}
		}

		return tx.Model(&model.Producto{}).Where("id = ?", productoID).
			Updates(map[string]interface{}{
				"unidades_mes": receta.UnidadesMes,
				"dias_mes":     receta.DiasMes,
			}).Error
	})
}

func (r *productoRepo) DB() *gorm.DB { return r.db }
