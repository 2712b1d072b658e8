package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/posventa-api/internal/application/dto"
	"github.com/jhoicas/posventa-api/internal/application/inventory"
)

// InventoryHandler agrupa conteos físicos, auditoría del ledger y pronóstico (protegido).
type InventoryHandler struct {
	cycleCountUC *inventory.CycleCountUseCase
	auditUC      *inventory.AuditUseCase
	forecastUC   *inventory.ForecastUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(cc *inventory.CycleCountUseCase, audit *inventory.AuditUseCase, fc *inventory.ForecastUseCase) *InventoryHandler {
	return &InventoryHandler{cycleCountUC: cc, auditUC: audit, forecastUC: fc}
}

// CreateCycleCount godoc
// @Summary      Registrar conteo físico
// @Description  Ajusta el stock a lo contado, registra movimientos de ajuste y reporta la
// @Description  merma revelada. Todas las líneas se aplican o ninguna.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCycleCountRequest  true  "Líneas contadas"
// @Success      201   {object}  dto.CycleCountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/cycle-counts [post]
func (h *InventoryHandler) CreateCycleCount(c *fiber.Ctx) error {
	var in dto.CreateCycleCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.cycleCountUC.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Audit godoc
// @Summary      Reconciliar ledger contra stock
// @Description  Compara la suma de movimientos de cada producto con su current_stock y
// @Description  reporta las discrepancias. Solo lectura.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AuditResponse
// @Router       /api/inventory/audit [get]
func (h *InventoryHandler) Audit(c *fiber.Ctx) error {
	out, err := h.auditUC.Reconcile(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RecomputeForecasts godoc
// @Summary      Recalcular pronósticos de demanda
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/inventory/forecasts/recompute [post]
func (h *InventoryHandler) RecomputeForecasts(c *fiber.Ctx) error {
	n, err := h.forecastUC.RecomputeAll(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"recomputed": n})
}
