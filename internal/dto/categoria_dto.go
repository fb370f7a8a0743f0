package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearCategoriaRequest struct {
	Nombre      string  `json:"nombre"      validate:"required,min=2,max=80"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=300"`
}

type ActualizarCategoriaRequest struct {
	Nombre      *string `json:"nombre"      validate:"omitempty,min=2,max=80"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=300"`
	Activo      *bool   `json:"activo"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CategoriaResponse struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Slug        string  `json:"slug"`
	Descripcion *string `json:"descripcion,omitempty"`
	Activo      bool    `json:"activo"`
}
