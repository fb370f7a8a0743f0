package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nejosudo/Restaurante-Mayer/internal/apierror"
	"github.com/Nejosudo/Restaurante-Mayer/internal/dto"
	"github.com/Nejosudo/Restaurante-Mayer/internal/service"
)

// ProductosHandler exposes the admin product CRUD plus the cost sheet
// endpoints (save recipe, derived profile, live preview).
type ProductosHandler struct{ svc service.ProductoService }

func NewProductosHandler(svc service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
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

func (h *ProductosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar productos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) ObtenerPorID(c *gin.Context) {
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

func (h *ProductosHandler) Actualizar(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrProductoNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) Eliminar(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProductoNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al eliminar producto"))
		return
	}
	c.Status(http.StatusNoContent)
}

// GuardarReceta godoc
// @Summary Guarda la hoja de costos completa de un producto
// @Description Reemplazo total de ingredientes, mano de obra y gastos. Con
// @Description ingredientes duplicados responde 409 listando los nombres; el
// @Description cliente reenvía corregido o con confirmar_fusion=true.
// @Tags productos
// @Accept json
// @Produce json
// @Param id path string true "ID del producto"
// @Param body body dto.GuardarRecetaRequest true "Hoja de costos"
// @Success 200 {object} dto.CosteoResponse
// @Failure 409 {object} apierror.ConflictError
// @Router /v1/productos/{id}/receta [put]
func (h *ProductosHandler) GuardarReceta(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.GuardarRecetaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.GuardarReceta(c.Request.Context(), id, req)
	if err != nil {
		var conflict *apierror.ConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusConflict, conflict)
			return
		}
		if errors.Is(err, service.ErrProductoNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) ObtenerCosteo(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerCosteo(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductoNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al calcular el costeo"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PreviewCosteo recalculates a cost profile from unsaved form rows.
// Stateless: nothing is persisted, safe to call on every keystroke.
func (h *ProductosHandler) PreviewCosteo(c *gin.Context) {
	var req dto.PreviewCosteoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.PreviewCosteo(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
