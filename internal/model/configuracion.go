package model

import "time"

// Categorías de configuración.
const (
	ConfigLabor       = "labor"
	ConfigManufactura = "manufactura"
	ConfigGeneral     = "general"
)

// Claves consumidas por la fórmula de carga laboral (internal/costing).
// Una clave ausente nunca es un error: su término aporta cero al cálculo.
const (
	ClaveSalarioMinimo     = "labor.min_wage"
	ClaveAuxilioTransporte = "labor.transport_aid"
	ClaveSeguridadSocial   = "labor.social_security_pct"
	ClaveParafiscales      = "labor.parafiscales_pct"
	ClavePrestaciones      = "labor.benefits_pct"
	ClaveDotacionAnual     = "labor.dotacion_yearly"

	ClaveContactoPago = "payment.contact_number"
)

// Configuracion is a global key/value setting edited only through the admin
// configuration screen. Valor is stored as text; the costing core parses it
// numerically and degrades to zero on failure.
type Configuracion struct {
	Clave       string `gorm:"primaryKey;column:clave"`
	Valor       string `gorm:"not null"`
	Categoria   string `gorm:"type:varchar(20);not null;index"`
	Etiqueta    string `gorm:"not null"`
	Descripcion *string
	UpdatedAt   time.Time
}

func (Configuracion) TableName() string { return "configuraciones" }
