package shipping

import (
	"context"

	"github.com/kioscosoft/distribuidora-api/internal/domain/entity"
)

// LabelGenerator genera la etiqueta de envío en PDF (Maroto en producción).
// shipment puede ser nil si el pedido todavía no tiene envío asociado.
type LabelGenerator interface {
	GenerateLabel(ctx context.Context, order *entity.Order, customer *entity.Customer, shipment *entity.Shipment) ([]byte, error)
}
