package routes

import (
	"context"

	"github.com/kioscosoft/distribuidora-api/internal/domain/repository"
)

// TxRunner ejecuta una función con repos de rutas y pedidos en una misma
// transacción. La asignación masiva corre completa o no corre: una ruta a
// medio armar por un corte era un defecto del esquema anterior.
type TxRunner interface {
	RunRoute(ctx context.Context, fn func(
		routeRepo repository.RouteRepository,
		orderRepo repository.OrderRepository,
	) error) error
}
