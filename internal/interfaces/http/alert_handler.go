package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/posventa-api/internal/application/alerts"
	"github.com/jhoicas/posventa-api/internal/application/dto"
)

// AlertHandler expone las alertas de inventario (protegido).
type AlertHandler struct {
	uc *alerts.AlertUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *alerts.AlertUseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// List godoc
// @Summary      Listar alertas (severidad descendente)
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        unresolved  query  bool  false  "Solo alertas sin resolver"
// @Param        limit       query  int   false  "Límite"   default(20)
// @Param        offset      query  int   false  "Offset"   default(0)
// @Success      200         {array}  dto.AlertResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	unresolvedOnly := c.QueryBool("unresolved", false)
	out, err := h.uc.List(c.Context(), unresolvedOnly, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarkRead godoc
// @Summary      Marcar alerta como leída
// @Tags         alerts
// @Security     Bearer
// @Param        id   path  string  true  "ID de la alerta"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/read [post]
func (h *AlertHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
