package orders_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kioscosoft/distribuidora-api/internal/application/dto"
	"github.com/kioscosoft/distribuidora-api/internal/domain"
	"github.com/kioscosoft/distribuidora-api/internal/domain/entity"
)

func crearPedido(t *testing.T, env *ordersEnv, items ...dto.OrderItemRequest) *dto.OrderResponse {
	t.Helper()
	resp, err := env.uc.CreateOrder(context.Background(), "vend-1", dto.CreateOrderRequest{
		CustomerID: "cli-1",
		Items:      items,
	})
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// CancelOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestCancelOrder_RestauraStockExacto(t *testing.T) {
	env := newOrdersEnv(producto("p1", 10, 100))
	resp := crearPedido(t, env, linea("p1", 3))
	require.EqualValues(t, 7, env.products.stock("p1"))

	require.NoError(t, env.uc.CancelOrder(context.Background(), "vend-1", resp.ID))

	assert.EqualValues(t, 10, env.products.stock("p1"))
	got, _ := env.repo.GetByID(resp.ID)
	assert.Equal(t, entity.StatusCancelled, got.Status)
	assert.Contains(t, env.trail.actions, "ORDER_CANCELLED")
}

func TestCancelOrder_SumaSobreElStockActual(t *testing.T) {
	// La cancelación devuelve lo descontado, aunque el stock haya cambiado por
	// otras ventas o reposiciones en el medio.
	env := newOrdersEnv(producto("p1", 10, 100))
	resp := crearPedido(t, env, linea("p1", 3))

	require.NoError(t, env.products.UpdateStock("p1", 50)) // reposición

	require.NoError(t, env.uc.CancelOrder(context.Background(), "vend-1", resp.ID))
	assert.EqualValues(t, 53, env.products.stock("p1"))
}

func TestCancelOrder_DobleCancelacion_NoOp(t *testing.T) {
	env := newOrdersEnv(producto("p1", 10, 100))
	resp := crearPedido(t, env, linea("p1", 3))

	require.NoError(t, env.uc.CancelOrder(context.Background(), "vend-1", resp.ID))
	require.NoError(t, env.uc.CancelOrder(context.Background(), "vend-1", resp.ID))

	// El stock se devuelve una sola vez.
	assert.EqualValues(t, 10, env.products.stock("p1"))
}

func TestCancelOrder_PedidoInexistente_NoOp(t *testing.T) {
	env := newOrdersEnv(producto("p1", 10, 100))
	assert.NoError(t, env.uc.CancelOrder(context.Background(), "vend-1", "no-existe"))
}

func TestCancelOrder_PedidoEntregado_Falla(t *testing.T) {
	env := newOrdersEnv(producto("p1", 10, 100))
	resp := crearPedido(t, env, linea("p1", 3))

	ord, _ := env.repo.GetByID(resp.ID)
	ord.Status = entity.StatusDelivered
	require.NoError(t, env.repo.Update(ord))

	err := env.uc.CancelOrder(context.Background(), "vend-1", resp.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.EqualValues(t, 7, env.products.stock("p1"), "un entregado no devuelve stock")
}

func TestCancelOrder_IgnoraProductosSinControlDeStock(t *testing.T) {
	suelto := producto("p2", 0, 50)
	suelto.TrackStock = false
	env := newOrdersEnv(producto("p1", 10, 100), suelto)
	resp := crearPedido(t, env, linea("p1", 3), linea("p2", 4))

	require.NoError(t, env.uc.CancelOrder(context.Background(), "vend-1", resp.ID))

	assert.EqualValues(t, 10, env.products.stock("p1"))
	assert.EqualValues(t, 0, env.products.stock("p2"))
}

func TestCancelOrder_SinActor(t *testing.T) {
	env := newOrdersEnv(producto("p1", 10, 100))
	err := env.uc.CancelOrder(context.Background(), "", "cualquiera")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
