package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Nejosudo/Restaurante-Mayer/internal/dto"
	"github.com/Nejosudo/Restaurante-Mayer/internal/repository"
)

// CacheKeyMenu is the Redis key holding the serialized public menu.
// Invalidated on every product or category mutation.
const CacheKeyMenu = "menu:publico"

const menuCacheTTL = 4 * time.Hour

// MenuService serves the public storefront menu. No authentication, no side
// effects: read-through Redis cache over the product and category tables.
type MenuService interface {
	ObtenerMenu(ctx context.Context) (*dto.MenuResponse, error)
}

type menuService struct {
	productoRepo  repository.ProductoRepository
	categoriaRepo repository.CategoriaRepository
	config        ConfiguracionService
	rdb           *redis.Client
}

func NewMenuService(
	productoRepo repository.ProductoRepository,
	categoriaRepo repository.CategoriaRepository,
	config ConfiguracionService,
	rdb *redis.Client,
) MenuService {
	return &menuService{
		productoRepo:  productoRepo,
		categoriaRepo: categoriaRepo,
		config:        config,
		rdb:           rdb,
	}
}

func (s *menuService) ObtenerMenu(ctx context.Context) (*dto.MenuResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, CacheKeyMenu).Bytes(); err == nil {
			var resp dto.MenuResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return &resp, nil
			}
		}
	}

	categorias, err := s.categoriaRepo.Listar(ctx, true)
	if err != nil {
		return nil, err
	}
	productos, err := s.productoRepo.ListDisponibles(ctx, nil)
	if err != nil {
		return nil, err
	}

	resp := &dto.MenuResponse{Categorias: make([]dto.MenuCategoria, 0, len(categorias))}
	for _, cat := range categorias {
		mc := dto.MenuCategoria{
			ID:        cat.ID.String(),
			Nombre:    cat.Nombre,
			Slug:      cat.Slug,
			Productos: []dto.MenuProducto{},
		}
		for _, p := range productos {
			if p.CategoriaID != cat.ID {
				continue
			}
			mc.Productos = append(mc.Productos, dto.MenuProducto{
				ID:          p.ID.String(),
				Nombre:      p.Nombre,
				Descripcion: p.Descripcion,
				PrecioVenta: p.PrecioVenta,
				ImagenURL:   p.ImagenURL,
			})
		}
		// Una categoría sin productos disponibles no aparece en el menú.
		if len(mc.Productos) > 0 {
			resp.Categorias = append(resp.Categorias, mc)
		}
	}

	if contacto, err := s.config.ContactoPago(ctx); err == nil {
		resp.ContactoPago = contacto
	}

	// Populate cache — best effort, ignore errors
	if s.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = s.rdb.Set(ctx, CacheKeyMenu, b, menuCacheTTL).Err()
		}
	}

	return resp, nil
}
