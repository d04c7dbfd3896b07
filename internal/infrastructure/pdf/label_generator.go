// Package pdf genera la etiqueta de envío de un pedido con Maroto v2.
//
// Layout A4:
//
//	┌──────────────────────────────────────────────┐
//	│  DISTRIBUIDORA            │  N° Pedido       │
//	│  ──────────────────────────────────────────  │
//	│  DESTINATARIO: nombre, teléfono              │
//	│  DIRECCIÓN: foto del momento de creación     │
//	│  ──────────────────────────────────────────  │
//	│  TRANSPORTE: proveedor + tracking (si hay)   │
//	│  Aviso de código de confirmación (si aplica) │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/kioscosoft/distribuidora-api/internal/application/shipping"
	"github.com/kioscosoft/distribuidora-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ shipping.LabelGenerator = (*MarotoLabelGenerator)(nil)

// MarotoLabelGenerator implementa shipping.LabelGenerator usando Maroto v2.
type MarotoLabelGenerator struct {
	companyName string
}

// NewMarotoLabelGenerator construye el generador con el nombre de la empresa
// que encabeza la etiqueta.
func NewMarotoLabelGenerator(companyName string) *MarotoLabelGenerator {
	return &MarotoLabelGenerator{companyName: companyName}
}

// GenerateLabel genera la etiqueta y devuelve sus bytes. shipment puede ser nil.
func (g *MarotoLabelGenerator) GenerateLabel(
	_ context.Context,
	order *entity.Order,
	customer *entity.Customer,
	shipment *entity.Shipment,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Etiqueta de envío "+order.Number, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.companyName, order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(recipientRows(order, customer)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(carrierRows(order, shipment)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiqueta: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(companyName string, order *entity.Order) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(companyName, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(5).Add(
			text.New("PEDIDO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorGray, Top: 1,
			}),
			text.New(order.Number, props.Text{
				Style: fontstyle.Bold, Size: 13, Align: align.Right, Top: 6,
			}),
			text.New("Fecha: "+order.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func recipientRows(order *entity.Order, customer *entity.Customer) []core.Row {
	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New("DESTINATARIO", props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
		)),
		row.New(7).Add(col.New(12).Add(
			text.New(customer.Name, props.Text{Style: fontstyle.Bold, Size: 12}),
		)),
	}
	if customer.Phone != "" {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Tel: "+customer.Phone, props.Text{Size: 9, Color: colorGray}),
		)))
	}
	rows = append(rows, row.New(10).Add(col.New(12).Add(
		text.New(order.ShippingAddress, props.Text{Size: 11, Top: 2}),
	)))
	return rows
}

func carrierRows(order *entity.Order, shipment *entity.Shipment) []core.Row {
	var rows []core.Row
	if shipment != nil {
		carrier := shipment.Provider
		if shipment.TrackingCode != "" {
			carrier += " · " + shipment.TrackingCode
		}
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Transporte: "+carrier, props.Text{Size: 10, Top: 2}),
		)))
	}
	if order.RequiresCode {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Entrega con código de confirmación: pedir los 4 dígitos al cliente.", props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
			}),
		)))
	}
	return rows
}
