package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/posventa-api/internal/application/dto"
	"github.com/jhoicas/posventa-api/internal/application/sales"
)

// SyncHandler recibe los lotes de ventas encoladas por dispositivos offline (protegido).
type SyncHandler struct {
	uc *sales.SyncUseCase
}

// NewSyncHandler construye el handler.
func NewSyncHandler(uc *sales.SyncUseCase) *SyncHandler {
	return &SyncHandler{uc: uc}
}

// Sync godoc
// @Summary      Sincronizar ventas offline
// @Description  Aplica cada registro del lote de forma aislada e idempotente; la respuesta
// @Description  lleva un resultado por registro. Los reenvíos de registros ya aplicados
// @Description  devuelven éxito sin reaplicar.
// @Tags         sync
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SyncRequest  true  "Lote de ventas encoladas"
// @Success      200   {object}  dto.SyncResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sync/sales [post]
func (h *SyncHandler) Sync(c *fiber.Ctx) error {
	var in dto.SyncRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.DeviceID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "device_id es requerido"})
	}
	out, err := h.uc.Sync(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
