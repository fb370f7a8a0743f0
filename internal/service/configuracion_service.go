package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Nejosudo/Restaurante-Mayer/internal/dto"
	"github.com/Nejosudo/Restaurante-Mayer/internal/model"
	"github.com/Nejosudo/Restaurante-Mayer/internal/repository"
)

// ConfiguracionService maneja los parámetros globales de costeo y pago.
// Cambiar un valor aquí nunca recalcula nada de forma eager: los perfiles de
// costo se derivan bajo demanda, así que el valor nuevo rige desde la
// siguiente consulta.
type ConfiguracionService interface {
	Listar(ctx context.Context, categoria string) ([]dto.ConfiguracionResponse, error)
	Actualizar(ctx context.Context, clave, valor string) (*dto.ConfiguracionResponse, error)

	// CrearGastoGlobal registra una entrada de manufactura nueva (upsert por
	// clave) que los formularios de producto pueden enlazar vía fuente_clave.
	CrearGastoGlobal(ctx context.Context, req dto.CrearGastoGlobalRequest) (*dto.ConfiguracionResponse, error)

	// ContactoPago expone el número de contacto que el checkout muestra al
	// cliente. Vacío cuando no está configurado.
	ContactoPago(ctx context.Context) (string, error)
}

type configuracionService struct {
	repo repository.ConfiguracionRepository
}

func NewConfiguracionService(repo repository.ConfiguracionRepository) ConfiguracionService {
	return &configuracionService{repo: repo}
}

func (s *configuracionService) Listar(ctx context.Context, categoria string) ([]dto.ConfiguracionResponse, error) {
	var entradas []model.Configuracion
	var err error
	if categoria == "" {
		entradas, err = s.repo.Listar(ctx)
	} else {
		entradas, err = s.repo.Listar(ctx, categoria)
	}
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ConfiguracionResponse, len(entradas))
	for i, e := range entradas {
		resp[i] = configToResponse(e)
	}
	return resp, nil
}

func (s *configuracionService) Actualizar(ctx context.Context, clave, valor string) (*dto.ConfiguracionResponse, error) {
	if err := s.repo.ActualizarValor(ctx, clave, valor); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("parametro de configuracion no encontrado")
		}
		return nil, err
	}
	entrada, err := s.repo.ObtenerPorClave(ctx, clave)
	if err != nil {
		return nil, err
	}
	resp := configToResponse(*entrada)
	return &resp, nil
}

func (s *configuracionService) CrearGastoGlobal(ctx context.Context, req dto.CrearGastoGlobalRequest) (*dto.ConfiguracionResponse, error) {
	clave := strings.TrimSpace(req.Clave)
	if !strings.HasPrefix(clave, "manufactura.") {
		clave = "manufactura." + clave
	}
	entrada := &model.Configuracion{
		Clave:     clave,
		Valor:     req.Valor,
		Categoria: model.ConfigManufactura,
		Etiqueta:  req.Etiqueta,
	}
	if req.Descripcion != "" {
		entrada.Descripcion = &req.Descripcion
	}
	if err := s.repo.Upsert(ctx, entrada); err != nil {
		return nil, err
	}
	resp := configToResponse(*entrada)
	return &resp, nil
}

func (s *configuracionService) ContactoPago(ctx context.Context) (string, error) {
	entrada, err := s.repo.ObtenerPorClave(ctx, model.ClaveContactoPago)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return entrada.Valor, nil
}

func configToResponse(e model.Configuracion) dto.ConfiguracionResponse {
	resp := dto.ConfiguracionResponse{
		Clave:     e.Clave,
		Valor:     e.Valor,
		Categoria: e.Categoria,
		Etiqueta:  e.Etiqueta,
	}
	if e.Descripcion != nil {
		resp.Descripcion = *e.Descripcion
	}
	return resp
}
