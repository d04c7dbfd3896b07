package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kioscosoft/distribuidora-api/internal/application/dto"
	"github.com/kioscosoft/distribuidora-api/internal/application/routes"
)

// RouteHandler maneja las peticiones HTTP de repartos (protegido).
type RouteHandler struct {
	uc *routes.UseCase
}

// NewRouteHandler construye el handler.
func NewRouteHandler(uc *routes.UseCase) *RouteHandler {
	return &RouteHandler{uc: uc}
}

// Create godoc
// @Summary      Armar reparto con pedidos (transacción única)
// @Tags         routes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRouteRequest  true  "Pedidos y chofer"
// @Success      201   {object}  dto.RouteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/routes [post]
func (h *RouteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRouteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateRoute(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener reparto
// @Tags         routes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del reparto"
// @Success      200  {object}  dto.RouteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/routes/{id} [get]
func (h *RouteHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetRoute(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar repartos
// @Tags         routes
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {object}  dto.RouteListResponse
// @Router       /api/routes [get]
func (h *RouteHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListRoutes(c.Context(), c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Start godoc
// @Summary      Iniciar reparto (PENDING → IN_PROGRESS)
// @Tags         routes
// @Security     Bearer
// @Param        id  path  string  true  "ID del reparto"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/routes/{id}/start [post]
func (h *RouteHandler) Start(c *fiber.Ctx) error {
	if err := h.uc.StartRoute(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Complete godoc
// @Summary      Cerrar reparto (entrega masiva de lo pendiente)
// @Tags         routes
// @Security     Bearer
// @Param        id  path  string  true  "ID del reparto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/routes/{id}/complete [post]
func (h *RouteHandler) Complete(c *fiber.Ctx) error {
	if err := h.uc.CompleteRoute(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleOrder godoc
// @Summary      Asignar o quitar un pedido de ruta
// @Tags         routes
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.ToggleOrderRouteRequest  true  "route_id o null"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/route [put]
func (h *RouteHandler) ToggleOrder(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.ToggleOrderRouteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.ToggleOrderRoute(c.Context(), GetUserID(c), id, in.RouteID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Deliver godoc
// @Summary      Entregar pedido (valida código de confirmación si aplica)
// @Tags         routes
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.DeliverOrderRequest  true  "Código de 4 dígitos si el pedido lo exige"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/deliver [post]
func (h *RouteHandler) Deliver(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.DeliverOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.DeliverOrder(c.Context(), GetUserID(c), id, in.Code); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
