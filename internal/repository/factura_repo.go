package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Nejosudo/Restaurante-Mayer/internal/model"
)

// FacturaRepository defines the data access contract for receipts.
type FacturaRepository interface {
	Create(ctx context.Context, f *model.Factura) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Factura, error)
	FindByPedidoID(ctx context.Context, pedidoID uuid.UUID) (*model.Factura, error)
	ListByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.Factura, error)
	Update(ctx context.Context, f *model.Factura) error

	// ListPendingRetries returns facturas stuck in estado='pendiente' whose
	// next_retry_at is in the past — consumed by the retry cron.
	ListPendingRetries(ctx context.Context, now time.Time, limit int) ([]model.Factura, error)
}

type facturaRepo struct{ db *gorm.DB }

func NewFacturaRepository(db *gorm.DB) FacturaRepository { return &facturaRepo{db: db} }

func (r *facturaRepo) Create(ctx context.Context, f *model.Factura) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *facturaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Factura, error) {
	var f model.Factura
	err := r.db.WithContext(ctx).Preload("Pedido").Preload("Pedido.Items").First(&f, id).Error
	return &f, err
}

func (r *facturaRepo) FindByPedidoID(ctx context.Context, pedidoID uuid.UUID) (*model.Factura, error) {
	var f model.Factura
	err := r.db.WithContext(ctx).Where("pedido_id = ?", pedidoID).First(&f).Error
	return &f, err
}

func (r *facturaRepo) ListByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.Factura, error) {
	var facturas []model.Factura
	err := r.db.WithContext(ctx).
		Joins("JOIN pedidos ON pedidos.id = facturas.pedido_id").
		Where("pedidos.usuario_id = ?", usuarioID).
		Order("facturas.created_at DESC").
		Find(&facturas).Error
	return facturas, err
}

func (r *facturaRepo) Update(ctx context.Context, f *model.Factura) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *facturaRepo) ListPendingRetries(ctx context.Context, now time.Time, limit int) ([]model.Factura, error) {
	var facturas []model.Factura
	err := r.db.WithContext(ctx).
		Where("estado = 'pendiente' AND next_retry_at IS NOT NULL AND next_retry_at <= ?", now).
		Order("next_retry_at ASC").
		Limit(limit).
		Find(&facturas).Error
	return facturas, err
}
