package service

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Nejosudo/Restaurante-Mayer/internal/config"
	"github.com/Nejosudo/Restaurante-Mayer/internal/dto"
	"github.com/Nejosudo/Restaurante-Mayer/internal/model"
	"github.com/Nejosudo/Restaurante-Mayer/internal/repository"
)

var ErrFacturaNoEncontrada = errors.New("factura no encontrada")

// FacturaService exposes receipts to customers. Creation and PDF generation
// happen inside the order pipeline (internal/worker), never through a request.
type FacturaService interface {
	ListarPropias(ctx context.Context, usuarioID uuid.UUID) ([]dto.FacturaResponse, error)
	ObtenerPorPedido(ctx context.Context, usuarioID uuid.UUID, esAdmin bool, pedidoID uuid.UUID) (*dto.FacturaResponse, error)

	// RutaPDF resolves the absolute filesystem path of a generated receipt,
	// enforcing ownership. Errors when the PDF is not yet generated.
	RutaPDF(ctx context.Context, usuarioID uuid.UUID, esAdmin bool, facturaID uuid.UUID) (string, error)
}

type facturaService struct {
	repo       repository.FacturaRepository
	pedidoRepo repository.PedidoRepository
	cfg        *config.Config
}

func NewFacturaService(repo repository.FacturaRepository, pedidoRepo repository.PedidoRepository, cfg *config.Config) FacturaService {
	return &facturaService{repo: repo, pedidoRepo: pedidoRepo, cfg: cfg}
}

func (s *facturaService) ListarPropias(ctx context.Context, usuarioID uuid.UUID) ([]dto.FacturaResponse, error) {
	facturas, err := s.repo.ListByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.FacturaResponse, len(facturas))
	for i := range facturas {
		resp[i] = facturaToResponse(&facturas[i])
	}
	return resp, nil
}

func (s *facturaService) ObtenerPorPedido(ctx context.Context, usuarioID uuid.UUID, esAdmin bool, pedidoID uuid.UUID) (*dto.FacturaResponse, error) {
	f, err := s.autorizada(ctx, usuarioID, esAdmin, func() (*model.Factura, error) {
		return s.repo.FindByPedidoID(ctx, pedidoID)
	})
	if err != nil {
		return nil, err
	}
	resp := facturaToResponse(f)
	return &resp, nil
}

func (s *facturaService) RutaPDF(ctx context.Context, usuarioID uuid.UUID, esAdmin bool, facturaID uuid.UUID) (string, error) {
	f, err := s.autorizada(ctx, usuarioID, esAdmin, func() (*model.Factura, error) {
		return s.repo.FindByID(ctx, facturaID)
	})
	if err != nil {
		return "", err
	}
	if f.Estado != "generada" || f.PDFPath == nil {
		return "", errors.New("el PDF de la factura aun no esta disponible")
	}
	return filepath.Join(s.cfg.PDFStoragePath, *f.PDFPath), nil
}

// autorizada fetches a factura and checks the caller owns its pedido.
// Failed ownership reads as not-found: no existence leaks between customers.
func (s *facturaService) autorizada(ctx context.Context, usuarioID uuid.UUID, esAdmin bool, fetch func() (*model.Factura, error)) (*model.Factura, error) {
	f, err := fetch()
	if err != nil {
		return nil, ErrFacturaNoEncontrada
	}
	if esAdmin {
		return f, nil
	}
	pedido, err := s.pedidoRepo.FindByID(ctx, f.PedidoID)
	if err != nil || pedido.UsuarioID != usuarioID {
		return nil, ErrFacturaNoEncontrada
	}
	return f, nil
}

func facturaToResponse(f *model.Factura) dto.FacturaResponse {
	return dto.FacturaResponse{
		ID:        f.ID.String(),
		PedidoID:  f.PedidoID.String(),
		Numero:    f.Numero,
		Total:     f.Total,
		Estado:    f.Estado,
		PDFPath:   f.PDFPath,
		CreatedAt: f.CreatedAt,
	}
}
