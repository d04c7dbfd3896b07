package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kioscosoft/distribuidora-api/internal/application/reports"
)

// ReportHandler exportes para el back office (protegido).
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// OrdersReport godoc
// @Summary      Reporte de pedidos en .xlsx
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        status  query  string  false  "Filtro por estado"
// @Param        limit   query  int     false  "Máximo de pedidos"  default(1000)
// @Success      200  {file}  binary
// @Router       /api/reports/orders [get]
func (h *ReportHandler) OrdersReport(c *fiber.Ctx) error {
	data, err := h.uc.OrdersReport(c.Context(), GetUserID(c), c.Query("status"), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="pedidos.xlsx"`)
	return c.Send(data)
}
