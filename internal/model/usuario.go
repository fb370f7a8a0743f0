package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario stores registered customers and back-office administrators.
// Rol: "cliente" | "admin"
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"not null"`
	Apellido     string
	Telefono     *string
	PasswordHash string `gorm:"not null"`
	Rol          string `gorm:"type:varchar(20);not null;default:'cliente'"`
	Activo       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides GORM's default singular → plural logic for Spanish names.
func (Usuario) TableName() string { return "usuarios" }
