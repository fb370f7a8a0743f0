package dto

import "github.com/shopspring/decimal"

// ─── Response DTOs ───────────────────────────────────────────────────────────

// MenuResponse is the public storefront menu: active categories with their
// available products. Served without authentication and cached in Redis.
type MenuResponse struct {
	Categorias   []MenuCategoria `json:"categorias"`
	ContactoPago string          `json:"contacto_pago,omitempty"`
}

type MenuCategoria struct {
	ID        string         `json:"id"`
	Nombre    string         `json:"nombre"`
	Slug      string         `json:"slug"`
	Productos []MenuProducto `json:"productos"`
}

type MenuProducto struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	Descripcion *string         `json:"descripcion,omitempty"`
	PrecioVenta decimal.Decimal `json:"precio_venta"`
	ImagenURL   *string         `json:"imagen_url,omitempty"`
}
