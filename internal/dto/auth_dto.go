package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegisterRequest struct {
	Email    string  `json:"email"    validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6,max=72"`
	Nombre   string  `json:"nombre"   validate:"required,min=2,max=80"`
	Apellido string  `json:"apellido" validate:"max=80"`
	Telefono *string `json:"telefono"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ActualizarPerfilRequest struct {
	Nombre   *string `json:"nombre"   validate:"omitempty,min=2,max=80"`
	Apellido *string `json:"apellido" validate:"omitempty,max=80"`
	Telefono *string `json:"telefono"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Nombre   string  `json:"nombre"`
	Apellido string  `json:"apellido"`
	Telefono *string `json:"telefono"`
	Rol      string  `json:"rol"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	User         UsuarioResponse `json:"user"`
}
