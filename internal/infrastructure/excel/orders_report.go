// Package excel genera la planilla .xlsx del reporte de pedidos.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/kioscosoft/distribuidora-api/internal/application/reports"
)

var _ reports.OrdersExporter = (*OrdersReportWriter)(nil)

// OrdersReportWriter implementa reports.OrdersExporter con Excelize.
type OrdersReportWriter struct{}

// NewOrdersReportWriter construye el writer.
func NewOrdersReportWriter() *OrdersReportWriter { return &OrdersReportWriter{} }

// ExportOrders arma la planilla: una fila por pedido, montos como número.
func (w *OrdersReportWriter) ExportOrders(rows []reports.OrderRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Pedidos"
	f.SetSheetName("Sheet1", sheet)

	header := []any{"Número", "Cliente", "Estado", "Subtotal", "Recargo", "Total", "Fecha"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		subtotal, _ := r.Subtotal.Float64()
		fee, _ := r.Fee.Float64()
		total, _ := r.Total.Float64()
		cells := []any{
			r.Number,
			r.CustomerName,
			r.Status,
			subtotal,
			fee,
			total,
			r.CreatedAt.Format("02/01/2006 15:04"),
		}
		addr := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, addr, &cells); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
