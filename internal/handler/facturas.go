package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nejosudo/Restaurante-Mayer/internal/apierror"
	"github.com/Nejosudo/Restaurante-Mayer/internal/middleware"
	"github.com/Nejosudo/Restaurante-Mayer/internal/service"
)

type FacturasHandler struct{ svc service.FacturaService }

func NewFacturasHandler(svc service.FacturaService) *FacturasHandler {
	return &FacturasHandler{svc: svc}
}

func (h *FacturasHandler) ListarPropias(c *gin.Context) {
	uid, ok := claimsUserID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListarPropias(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar facturas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FacturasHandler) ObtenerPorPedido(c *gin.Context) {
	uid, ok := claimsUserID(c)
	if !ok {
		return
	}
	pedidoID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	esAdmin := middleware.GetClaims(c).Rol == middleware.RolAdmin
	resp, err := h.svc.ObtenerPorPedido(c.Request.Context(), uid, esAdmin, pedidoID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DescargarPDF streams the generated receipt. 404 hasta que el worker la genere.
func (h *FacturasHandler) DescargarPDF(c *gin.Context) {
	uid, ok := claimsUserID(c)
	if !ok {
		return
	}
	facturaID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	esAdmin := middleware.GetClaims(c).Rol == middleware.RolAdmin
	path, err := h.svc.RutaPDF(c.Request.Context(), uid, esAdmin, facturaID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Header("Content-Type", "application/pdf")
	c.File(path)
}
