package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Nejosudo/Restaurante-Mayer/internal/dto"
	"github.com/Nejosudo/Restaurante-Mayer/internal/model"
	"github.com/Nejosudo/Restaurante-Mayer/internal/repository"
	"github.com/Nejosudo/Restaurante-Mayer/internal/worker"
)

type PedidoService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error)
	ObtenerPorID(ctx context.Context, usuarioID uuid.UUID, esAdmin bool, id uuid.UUID) (*dto.PedidoResponse, error)
	ListarPropios(ctx context.Context, usuarioID uuid.UUID) ([]dto.PedidoResponse, error)
	ListarTodos(ctx context.Context) ([]dto.PedidoResponse, error)
	ActualizarEstado(ctx context.Context, id uuid.UUID, estado string) error
}

type pedidoService struct {
	repo         repository.PedidoRepository
	productoRepo repository.ProductoRepository
	facturaRepo  repository.FacturaRepository
	dispatcher   *worker.Dispatcher
}

func NewPedidoService(
	repo repository.PedidoRepository,
	productoRepo repository.ProductoRepository,
	facturaRepo repository.FacturaRepository,
	dispatcher *worker.Dispatcher,
) PedidoService {
	return &pedidoService{
		repo:         repo,
		productoRepo: productoRepo,
		facturaRepo:  facturaRepo,
		dispatcher:   dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// Crear registra un pedido del carrito:
//  1. Resolver cada producto y validar disponibilidad (pre-flight, fuera de TX)
//  2. Recalcular total en servidor con precios vigentes — el carrito nunca manda precios
//  3. BEGIN TX: crear pedido + items + factura pendiente
//  4. (async) despachar generación del PDF
func (s *pedidoService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error) {
	type resolvedItem struct {
		productoID uuid.UUID
		nombre     string
		precio     decimal.Decimal
		cantidad   int
		nota       *string
	}

	var resolved []resolvedItem
	total := decimal.Zero

	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto_id inválido: %w", err)
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("producto %s no encontrado", item.ProductoID)
		}
		if !p.Disponible {
			return nil, fmt.Errorf("el producto %s no está disponible", p.Nombre)
		}
		total = total.Add(p.PrecioVenta.Mul(decimal.NewFromInt(int64(item.Cantidad))))
		resolved = append(resolved, resolvedItem{
			productoID: pid,
			nombre:     p.Nombre,
			precio:     p.PrecioVenta,
			cantidad:   item.Cantidad,
			nota:       item.Nota,
		})
	}

	var pedido model.Pedido
	var factura model.Factura
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		pedido = model.Pedido{
			UsuarioID: usuarioID,
			Total:     total,
			Estado:    model.PedidoPendiente,
			Nota:      req.Nota,
		}
		for _, r := range resolved {
			pedido.Items = append(pedido.Items, model.PedidoItem{
				ProductoID:     r.productoID,
				NombreProducto: r.nombre,
				Cantidad:       r.cantidad,
				PrecioUnitario: r.precio,
				Subtotal:       r.precio.Mul(decimal.NewFromInt(int64(r.cantidad))),
				Nota:           r.nota,
			})
		}
		if err := s.repo.Create(ctx, tx, &pedido); err != nil {
			return err
		}

		// La factura nace pendiente en la misma TX: si el worker muere, el cron
		// de reintentos la encuentra igual.
		factura = model.Factura{
			PedidoID: pedido.ID,
			Total:    total,
			Estado:   "pendiente",
		}
		if tx != nil {
			return tx.Create(&factura).Error
		}
		return s.facturaRepo.Create(ctx, &factura)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Async PDF generation — best-effort, el cron recoge lo que falle.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueFactura(ctx, map[string]interface{}{
			"factura_id": factura.ID.String(),
		})
	}

	resp := pedidoToResponse(&pedido)
	return &resp, nil
}

func (s *pedidoService) ObtenerPorID(ctx context.Context, usuarioID uuid.UUID, esAdmin bool, id uuid.UUID) (*dto.PedidoResponse, error) {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("pedido no encontrado")
	}
	// Un cliente solo ve sus propios pedidos.
	if !esAdmin && pedido.UsuarioID != usuarioID {
		return nil, errors.New("pedido no encontrado")
	}
	resp := pedidoToResponse(pedido)
	return &resp, nil
}

func (s *pedidoService) ListarPropios(ctx context.Context, usuarioID uuid.UUID) ([]dto.PedidoResponse, error) {
	pedidos, err := s.repo.ListByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	return pedidosToResponse(pedidos), nil
}

func (s *pedidoService) ListarTodos(ctx context.Context) ([]dto.PedidoResponse, error) {
	pedidos, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return pedidosToResponse(pedidos), nil
}

func (s *pedidoService) ActualizarEstado(ctx context.Context, id uuid.UUID, estado string) error {
	if !model.EstadoPedidoValido(estado) {
		return fmt.Errorf("estado %q no es válido", estado)
	}
	if err := s.repo.UpdateEstado(ctx, id, estado); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("pedido no encontrado")
		}
		return err
	}
	return nil
}

func pedidosToResponse(pedidos []model.Pedido) []dto.PedidoResponse {
	resp := make([]dto.PedidoResponse, len(pedidos))
	for i := range pedidos {
		resp[i] = pedidoToResponse(&pedidos[i])
	}
	return resp
}

func pedidoToResponse(p *model.Pedido) dto.PedidoResponse {
	items := make([]dto.ItemPedidoResponse, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, dto.ItemPedidoResponse{
			ProductoID:     item.ProductoID.String(),
			NombreProducto: item.NombreProducto,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
			Nota:           item.Nota,
		})
	}
	return dto.PedidoResponse{
		ID:        p.ID.String(),
		UsuarioID: p.UsuarioID.String(),
		Estado:    p.Estado,
		Total:     p.Total,
		Nota:      p.Nota,
		Items:     items,
		CreatedAt: p.CreatedAt,
	}
}
