package orders

import (
	"context"

	"github.com/kioscosoft/distribuidora-api/internal/domain/repository"
)

// TxRunner ejecuta una función con repos de pedidos y productos atados a una
// misma transacción. Si fn retorna error se hace rollback completo: ningún
// descuento de stock ni fila de pedido queda a medias.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
	) error) error
}
