package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nejosudo/Restaurante-Mayer/internal/apierror"
	"github.com/Nejosudo/Restaurante-Mayer/internal/dto"
	"github.com/Nejosudo/Restaurante-Mayer/internal/service"
)

// ConfiguracionHandler exposes the admin screen for global cost parameters.
type ConfiguracionHandler struct{ svc service.ConfiguracionService }

func NewConfiguracionHandler(svc service.ConfiguracionService) *ConfiguracionHandler {
	return &ConfiguracionHandler{svc: svc}
}

// Listar devuelve las entradas de configuración, opcionalmente filtradas por
// categoría (?categoria=labor|manufactura|general).
func (h *ConfiguracionHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context(), c.Query("categoria"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar configuracion"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConfiguracionHandler) Actualizar(c *gin.Context) {
	clave := c.Param("clave")
	var req dto.ActualizarConfiguracionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), clave, req.Valor)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CrearGastoGlobal registra una entrada de manufactura que los formularios de
// producto pueden enlazar por fuente_clave.
func (h *ConfiguracionHandler) CrearGastoGlobal(c *gin.Context) {
	var req dto.CrearGastoGlobalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearGastoGlobal(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}
