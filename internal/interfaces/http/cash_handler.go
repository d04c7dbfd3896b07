package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kioscosoft/distribuidora-api/internal/application/cash"
	"github.com/kioscosoft/distribuidora-api/internal/application/dto"
)

// CashHandler maneja turnos y movimientos de caja (protegido).
type CashHandler struct {
	uc *cash.UseCase
}

// NewCashHandler construye el handler.
func NewCashHandler(uc *cash.UseCase) *CashHandler {
	return &CashHandler{uc: uc}
}

// OpenShift godoc
// @Summary      Abrir turno de caja
// @Tags         cash
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenShiftRequest  true  "Monto inicial"
// @Success      201   {object}  dto.CashShiftResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cash/shifts [post]
func (h *CashHandler) OpenShift(c *fiber.Ctx) error {
	var in dto.OpenShiftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.OpenShift(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AddTransaction godoc
// @Summary      Registrar movimiento en el turno abierto
// @Tags         cash
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddCashTransactionRequest  true  "Movimiento IN u OUT"
// @Success      201   {object}  dto.CashTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cash/transactions [post]
func (h *CashHandler) AddTransaction(c *fiber.Ctx) error {
	var in dto.AddCashTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddTransaction(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CloseShift godoc
// @Summary      Cerrar el turno abierto (calcula arqueo y diferencia)
// @Tags         cash
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CloseShiftRequest  true  "Monto contado"
// @Success      200   {object}  dto.CashShiftResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cash/shifts/close [post]
func (h *CashHandler) CloseShift(c *fiber.Ctx) error {
	var in dto.CloseShiftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CloseShift(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetOpen godoc
// @Summary      Turno abierto con sus movimientos
// @Tags         cash
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CashShiftResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cash/shifts/open [get]
func (h *CashHandler) GetOpen(c *fiber.Ctx) error {
	shift, txs, err := h.uc.GetOpenShift(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"shift": shift, "transactions": txs})
}

// List godoc
// @Summary      Historial de turnos
// @Tags         cash
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {array}  dto.CashShiftResponse
// @Router       /api/cash/shifts [get]
func (h *CashHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListShifts(c.Context(), c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
