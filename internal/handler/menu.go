package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nejosudo/Restaurante-Mayer/internal/apierror"
	"github.com/Nejosudo/Restaurante-Mayer/internal/service"
)

// MenuHandler serves the public storefront menu.
// No authentication required — no side effects whatsoever.
type MenuHandler struct{ svc service.MenuService }

func NewMenuHandler(svc service.MenuService) *MenuHandler { return &MenuHandler{svc: svc} }

// ObtenerMenu godoc
// @Summary Menu publico del restaurante (sin autenticacion)
// @Tags menu
// @Produce json
// @Success 200 {object} dto.MenuResponse
// @Router /v1/menu [get]
func (h *MenuHandler) ObtenerMenu(c *gin.Context) {
	resp, err := h.svc.ObtenerMenu(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al obtener el menu"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
