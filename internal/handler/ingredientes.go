package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nejosudo/Restaurante-Mayer/internal/apierror"
	"github.com/Nejosudo/Restaurante-Mayer/internal/dto"
	"github.com/Nejosudo/Restaurante-Mayer/internal/service"
)

type IngredientesHandler struct{ svc service.IngredienteService }

func NewIngredientesHandler(svc service.IngredienteService) *IngredientesHandler {
	return &IngredientesHandler{svc: svc}
}

func (h *IngredientesHandler) Crear(c *gin.Context) {
	var req dto.CrearIngredienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *IngredientesHandler) Listar(c *gin.Context) {
	soloActivos := c.Query("incluir_inactivos") != "true"
	resp, err := h.svc.Listar(c.Request.Context(), soloActivos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar ingredientes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IngredientesHandler) ObtenerPorID(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IngredientesHandler) Actualizar(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarIngredienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrIngredienteNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IngredientesHandler) Desactivar(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrIngredienteNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al desactivar ingrediente"))
		return
	}
	c.Status(http.StatusNoContent)
}

// ActualizarCosto godoc
// @Summary Cambia el costo por unidad de un ingrediente
// @Description Registra el cambio en el historial. Los perfiles de costo de
// @Description producto toman el valor nuevo en su siguiente recalculo.
// @Tags ingredientes
// @Accept json
// @Produce json
// @Param id path string true "ID del ingrediente"
// @Param body body dto.ActualizarCostoRequest true "Nuevo costo"
// @Success 200 {object} dto.IngredienteResponse
// @Router /v1/ingredientes/{id}/costo [put]
func (h *IngredientesHandler) ActualizarCosto(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarCostoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarCosto(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrIngredienteNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IngredientesHandler) ListarHistorial(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarHistorial(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrIngredienteNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar historial"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
