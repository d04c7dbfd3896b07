package routes_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kioscosoft/distribuidora-api/internal/application/dto"
	"github.com/kioscosoft/distribuidora-api/internal/application/routes"
	"github.com/kioscosoft/distribuidora-api/internal/domain"
	"github.com/kioscosoft/distribuidora-api/internal/domain/entity"
	"github.com/kioscosoft/distribuidora-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (con rollback por foto, como la transacción real)
// ──────────────────────────────────────────────────────────────────────────────

type fakeTrail struct {
	actions       []string
	notifications []string
}

func (t *fakeTrail) Record(_ context.Context, _, action, _, _ string) {
	t.actions = append(t.actions, action)
}

func (t *fakeTrail) NotifyAdmins(_ context.Context, title, _, _ string) {
	t.notifications = append(t.notifications, title)
}

type fakeRouteRepo struct {
	routes map[string]*entity.DeliveryRoute
}

func newFakeRouteRepo() *fakeRouteRepo {
	return &fakeRouteRepo{routes: make(map[string]*entity.DeliveryRoute)}
}

func (r *fakeRouteRepo) snapshot() map[string]*entity.DeliveryRoute {
	snap := make(map[string]*entity.DeliveryRoute, len(r.routes))
	for id, rt := range r.routes {
		cp := *rt
		snap[id] = &cp
	}
	return snap
}

func (r *fakeRouteRepo) Create(rt *entity.DeliveryRoute) error {
	cp := *rt
	r.routes[rt.ID] = &cp
	return nil
}

func (r *fakeRouteRepo) GetByID(id string) (*entity.DeliveryRoute, error)      { return r.routes[id], nil }
func (r *fakeRouteRepo) GetForUpdate(id string) (*entity.DeliveryRoute, error) { return r.routes[id], nil }

func (r *fakeRouteRepo) Update(rt *entity.DeliveryRoute) error {
	cp := *rt
	r.routes[rt.ID] = &cp
	return nil
}

func (r *fakeRouteRepo) List(limit, offset int) ([]*entity.DeliveryRoute, error) {
	out := make([]*entity.DeliveryRoute, 0, len(r.routes))
	for _, rt := range r.routes {
		out = append(out, rt)
	}
	return out, nil
}

type fakeOrderRepo struct {
	orders map[string]*entity.Order
}

func newFakeOrderRepo(orders ...*entity.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: make(map[string]*entity.Order, len(orders))}
	for _, o := range orders {
		cp := *o
		r.orders[o.ID] = &cp
	}
	return r
}

func (r *fakeOrderRepo) snapshot() map[string]*entity.Order {
	snap := make(map[string]*entity.Order, len(r.orders))
	for id, o := range r.orders {
		cp := *o
		snap[id] = &cp
	}
	return snap
}

func (r *fakeOrderRepo) Create(o *entity.Order) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) CreateItem(*entity.OrderItem) error { return nil }

func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error)      { return r.orders[id], nil }
func (r *fakeOrderRepo) GetForUpdate(id string) (*entity.Order, error) { return r.orders[id], nil }

func (r *fakeOrderRepo) GetItems(string) ([]*entity.OrderItem, error) { return nil, nil }

func (r *fakeOrderRepo) Update(o *entity.Order) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) ListByRoute(routeID string) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.orders {
		if o.RouteID != nil && *o.RouteID == routeID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) List(repository.OrderFilter) ([]*entity.Order, error) { return nil, nil }

type fakeTxRunner struct {
	routeRepo *fakeRouteRepo
	orderRepo *fakeOrderRepo
}

func (tr *fakeTxRunner) RunRoute(_ context.Context, fn func(
	routeRepo repository.RouteRepository,
	orderRepo repository.OrderRepository,
) error) error {
	routesSnap := tr.routeRepo.snapshot()
	ordersSnap := tr.orderRepo.snapshot()
	if err := fn(tr.routeRepo, tr.orderRepo); err != nil {
		tr.routeRepo.routes = routesSnap
		tr.orderRepo.orders = ordersSnap
		return err
	}
	return nil
}

type routesEnv struct {
	uc     *routes.UseCase
	routes *fakeRouteRepo
	orders *fakeOrderRepo
	trail  *fakeTrail
}

func newRoutesEnv(orders ...*entity.Order) *routesEnv {
	routeRepo := newFakeRouteRepo()
	orderRepo := newFakeOrderRepo(orders...)
	trail := &fakeTrail{}
	uc := routes.NewUseCase(
		&fakeTxRunner{routeRepo: routeRepo, orderRepo: orderRepo},
		routeRepo, orderRepo, trail,
	)
	return &routesEnv{uc: uc, routes: routeRepo, orders: orderRepo, trail: trail}
}

func pedido(id string, status entity.OrderStatus) *entity.Order {
	return &entity.Order{
		ID:     id,
		Number: "PED-" + strings.ToUpper(id),
		Status: status,
	}
}

func esCodigoDeCuatroDigitos(code string) bool {
	if len(code) != 4 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateRoute
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateRoute_CuelgaPedidosYGeneraCodigos(t *testing.T) {
	env := newRoutesEnv(pedido("o1", entity.StatusNoPago), pedido("o2", entity.StatusPago))

	resp, err := env.uc.CreateRoute(context.Background(), "admin-1", dto.CreateRouteRequest{
		Name:        "Zona norte",
		OrderIDs:    []string{"o1", "o2"},
		RequireCode: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.OrderCount)
	assert.Equal(t, "PENDING", resp.Status)

	for _, id := range []string{"o1", "o2"} {
		ord, _ := env.orders.GetByID(id)
		assert.Equal(t, entity.StatusDelivering, ord.Status)
		require.NotNil(t, ord.RouteID)
		assert.Equal(t, resp.ID, *ord.RouteID)
		assert.True(t, ord.RequiresCode)
		assert.True(t, esCodigoDeCuatroDigitos(ord.DeliveryCode),
			"código de 4 dígitos con ceros a la izquierda, obtenido %q", ord.DeliveryCode)
	}
}

func TestCreateRoute_SinCodigo(t *testing.T) {
	env := newRoutesEnv(pedido("o1", entity.StatusNoPago))

	resp, err := env.uc.CreateRoute(context.Background(), "admin-1", dto.CreateRouteRequest{
		Name:     "Zona sur",
		OrderIDs: []string{"o1"},
	})
	require.NoError(t, err)

	ord, _ := env.orders.GetByID("o1")
	assert.Equal(t, resp.ID, *ord.RouteID)
	assert.False(t, ord.RequiresCode)
	assert.Empty(t, ord.DeliveryCode)
}

func TestCreateRoute_PedidoTerminalAbortaTodo(t *testing.T) {
	env := newRoutesEnv(pedido("o1", entity.StatusNoPago), pedido("o2", entity.StatusDelivered))

	_, err := env.uc.CreateRoute(context.Background(), "admin-1", dto.CreateRouteRequest{
		OrderIDs: []string{"o1", "o2"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// Rollback completo: ni la ruta ni el primer pedido quedaron tocados.
	assert.Empty(t, env.routes.routes)
	ord, _ := env.orders.GetByID("o1")
	assert.Equal(t, entity.StatusNoPago, ord.Status)
	assert.Nil(t, ord.RouteID)
}

func TestCreateRoute_FechaInvalida(t *testing.T) {
	env := newRoutesEnv(pedido("o1", entity.StatusNoPago))
	_, err := env.uc.CreateRoute(context.Background(), "admin-1", dto.CreateRouteRequest{
		Date:     "15/03/2026",
		OrderIDs: []string{"o1"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateRoute_SinPedidos(t *testing.T) {
	env := newRoutesEnv()
	_, err := env.uc.CreateRoute(context.Background(), "admin-1", dto.CreateRouteRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// DeliverOrder
// ──────────────────────────────────────────────────────────────────────────────

func enReparto(id, code string) *entity.Order {
	routeID := "ruta-1"
	ord := pedido(id, entity.StatusDelivering)
	ord.RouteID = &routeID
	if code != "" {
		ord.RequiresCode = true
		ord.DeliveryCode = code
	}
	return ord
}

func TestDeliverOrder_CodigoIncorrecto_NoCambiaNada(t *testing.T) {
	env := newRoutesEnv(enReparto("o1", "1234"))

	err := env.uc.DeliverOrder(context.Background(), "rep-1", "o1", "9999")
	assert.ErrorIs(t, err, domain.ErrIncorrectCode)

	ord, _ := env.orders.GetByID("o1")
	assert.Equal(t, entity.StatusDelivering, ord.Status)
	assert.Nil(t, ord.DeliveredAt)
	assert.Empty(t, env.trail.actions)
}

func TestDeliverOrder_CodigoCorrecto_Entrega(t *testing.T) {
	env := newRoutesEnv(enReparto("o1", "0042"))

	require.NoError(t, env.uc.DeliverOrder(context.Background(), "rep-1", "o1", "0042"))

	ord, _ := env.orders.GetByID("o1")
	assert.Equal(t, entity.StatusDelivered, ord.Status)
	assert.NotNil(t, ord.DeliveredAt)
	assert.Contains(t, env.trail.actions, "ORDER_DELIVERED")
}

func TestDeliverOrder_SinCodigoRequerido(t *testing.T) {
	env := newRoutesEnv(enReparto("o1", ""))
	require.NoError(t, env.uc.DeliverOrder(context.Background(), "rep-1", "o1", ""))

	ord, _ := env.orders.GetByID("o1")
	assert.Equal(t, entity.StatusDelivered, ord.Status)
}

func TestDeliverOrder_ReEntrega_Falla(t *testing.T) {
	env := newRoutesEnv(enReparto("o1", ""))
	ctx := context.Background()

	require.NoError(t, env.uc.DeliverOrder(ctx, "rep-1", "o1", ""))
	err := env.uc.DeliverOrder(ctx, "rep-1", "o1", "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestDeliverOrder_Inexistente(t *testing.T) {
	env := newRoutesEnv()
	err := env.uc.DeliverOrder(context.Background(), "rep-1", "no-existe", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ToggleOrderRoute
// ──────────────────────────────────────────────────────────────────────────────

func TestToggleOrderRoute_AsignarRegeneraCodigo(t *testing.T) {
	env := newRoutesEnv(pedido("o1", entity.StatusNoPago))
	require.NoError(t, env.routes.Create(&entity.DeliveryRoute{ID: "ruta-1", Status: entity.RoutePending}))

	routeID := "ruta-1"
	require.NoError(t, env.uc.ToggleOrderRoute(context.Background(), "admin-1", "o1", &routeID))

	ord, _ := env.orders.GetByID("o1")
	assert.Equal(t, entity.StatusDelivering, ord.Status)
	assert.True(t, ord.RequiresCode)
	assert.True(t, esCodigoDeCuatroDigitos(ord.DeliveryCode))
}

func TestToggleOrderRoute_QuitarVuelveANoPago(t *testing.T) {
	env := newRoutesEnv(enReparto("o1", "1234"))

	require.NoError(t, env.uc.ToggleOrderRoute(context.Background(), "admin-1", "o1", nil))

	ord, _ := env.orders.GetByID("o1")
	assert.Equal(t, entity.StatusNoPago, ord.Status)
	assert.Nil(t, ord.RouteID)
	assert.Empty(t, ord.DeliveryCode)
	assert.False(t, ord.RequiresCode)
}

func TestToggleOrderRoute_QuitarConservaElCobro(t *testing.T) {
	paid := time.Now().Add(-time.Hour)
	ord := enReparto("o1", "1234")
	ord.PaidAt = &paid
	env := newRoutesEnv(ord)

	require.NoError(t, env.uc.ToggleOrderRoute(context.Background(), "admin-1", "o1", nil))

	got, _ := env.orders.GetByID("o1")
	assert.Equal(t, entity.StatusPago, got.Status, "estaba cobrado, vuelve a PAGO")
	require.NotNil(t, got.PaidAt)
	assert.Equal(t, paid, *got.PaidAt, "quitar de ruta no toca la fecha de cobro")
}

func TestToggleOrderRoute_RutaInexistente(t *testing.T) {
	env := newRoutesEnv(pedido("o1", entity.StatusNoPago))
	routeID := "no-existe"
	err := env.uc.ToggleOrderRoute(context.Background(), "admin-1", "o1", &routeID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// StartRoute / CompleteRoute
// ──────────────────────────────────────────────────────────────────────────────

func TestStartRoute(t *testing.T) {
	env := newRoutesEnv()
	require.NoError(t, env.routes.Create(&entity.DeliveryRoute{ID: "ruta-1", Status: entity.RoutePending}))
	ctx := context.Background()

	require.NoError(t, env.uc.StartRoute(ctx, "admin-1", "ruta-1"))
	rt, _ := env.routes.GetByID("ruta-1")
	assert.Equal(t, entity.RouteInProgress, rt.Status)

	// Arrancar dos veces no es válido.
	err := env.uc.StartRoute(ctx, "admin-1", "ruta-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCompleteRoute_EntregaMasivaSinCodigo(t *testing.T) {
	routeID := "ruta-1"
	entregado := pedido("o1", entity.StatusDelivered)
	entregado.RouteID = &routeID
	cancelado := pedido("o2", entity.StatusCancelled)
	cancelado.RouteID = &routeID

	env := newRoutesEnv(entregado, cancelado, enReparto("o3", "1234"), enReparto("o4", "5678"))
	require.NoError(t, env.routes.Create(&entity.DeliveryRoute{ID: routeID, Status: entity.RouteInProgress}))

	require.NoError(t, env.uc.CompleteRoute(context.Background(), "admin-1", routeID))

	rt, _ := env.routes.GetByID(routeID)
	assert.Equal(t, entity.RouteCompleted, rt.Status)
	assert.NotNil(t, rt.CompletedAt)

	// Los pendientes se entregan sin pedir código; los terminales no se tocan.
	for _, id := range []string{"o3", "o4"} {
		ord, _ := env.orders.GetByID(id)
		assert.Equal(t, entity.StatusDelivered, ord.Status)
		assert.NotNil(t, ord.DeliveredAt)
	}
	o2, _ := env.orders.GetByID("o2")
	assert.Equal(t, entity.StatusCancelled, o2.Status)
}

func TestCompleteRoute_YaCompletada_NoOp(t *testing.T) {
	done := time.Now().Add(-time.Hour)
	env := newRoutesEnv()
	require.NoError(t, env.routes.Create(&entity.DeliveryRoute{
		ID: "ruta-1", Status: entity.RouteCompleted, CompletedAt: &done,
	}))

	require.NoError(t, env.uc.CompleteRoute(context.Background(), "admin-1", "ruta-1"))

	rt, _ := env.routes.GetByID("ruta-1")
	assert.Equal(t, done, *rt.CompletedAt, "completar de nuevo no pisa la fecha original")
}
