package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ActualizarConfiguracionRequest updates a single parameter's value. Values
// travel as strings (the table is heterogeneous: percentages, pesos, a phone
// number); numeric parameters are parsed at calculation time.
type ActualizarConfiguracionRequest struct {
	Valor string `json:"valor" validate:"required,max=200"`
}

type CrearGastoGlobalRequest struct {
	Clave       string `json:"clave"       validate:"required,min=3,max=80"`
	Valor       string `json:"valor"       validate:"required,max=200"`
	Etiqueta    string `json:"etiqueta"    validate:"required,max=120"`
	Descripcion string `json:"descripcion" validate:"max=300"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ConfiguracionResponse struct {
	Clave       string `json:"clave"`
	Valor       string `json:"valor"`
	Categoria   string `json:"categoria"`
	Etiqueta    string `json:"etiqueta"`
	Descripcion string `json:"descripcion,omitempty"`
}
