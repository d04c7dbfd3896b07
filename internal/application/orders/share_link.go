package orders

import (
	"context"
	"fmt"

	"github.com/kioscosoft/distribuidora-api/internal/domain"
	"github.com/kioscosoft/distribuidora-api/pkg/whatsapp"
)

// ShareDeliveryLink arma el link wa.me al teléfono del cliente con el resumen
// del pedido. Si el pedido exige código de confirmación, el mensaje lo incluye
// para que el cliente lo tenga a mano al recibir.
func (uc *UseCase) ShareDeliveryLink(ctx context.Context, orderID string) (string, error) {
	ord, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return "", err
	}
	if ord == nil {
		return "", domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(ord.CustomerID)
	if err != nil {
		return "", err
	}
	if customer == nil {
		return "", domain.ErrNotFound
	}
	text := fmt.Sprintf("Hola %s! Tu pedido %s está en camino.", customer.Name, ord.Number)
	if ord.RequiresCode && ord.DeliveryCode != "" {
		text += fmt.Sprintf(" Código de entrega: %s.", ord.DeliveryCode)
	}
	return whatsapp.Link(customer.Phone, text), nil
}
