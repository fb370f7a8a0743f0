package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nejosudo/Restaurante-Mayer/internal/apierror"
	"github.com/Nejosudo/Restaurante-Mayer/internal/dto"
	"github.com/Nejosudo/Restaurante-Mayer/internal/middleware"
	"github.com/Nejosudo/Restaurante-Mayer/internal/service"
)

type PedidosHandler struct{ svc service.PedidoService }

func NewPedidosHandler(svc service.PedidoService) *PedidosHandler {
	return &PedidosHandler{svc: svc}
}

// Crear godoc
// @Summary Crea un pedido desde el carrito
// @Description El total se recalcula en servidor con los precios vigentes.
// @Tags pedidos
// @Accept json
// @Produce json
// @Param body body dto.CrearPedidoRequest true "Items del carrito"
// @Success 201 {object} dto.PedidoResponse
// @Router /v1/pedidos [post]
func (h *PedidosHandler) Crear(c *gin.Context) {
	uid, ok := claimsUserID(c)
	if !ok {
		return
	}
	var req dto.CrearPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), uid, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PedidosHandler) ObtenerPorID(c *gin.Context) {
	uid, ok := claimsUserID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	esAdmin := middleware.GetClaims(c).Rol == middleware.RolAdmin
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), uid, esAdmin, id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PedidosHandler) ListarPropios(c *gin.Context) {
	uid, ok := claimsUserID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListarPropios(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar pedidos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Admin ────────────────────────────────────────────────────────────────────

func (h *PedidosHandler) ListarTodos(c *gin.Context) {
	resp, err := h.svc.ListarTodos(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar pedidos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PedidosHandler) ActualizarEstado(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarEstadoPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ActualizarEstado(c.Request.Context(), id, req.Estado); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
