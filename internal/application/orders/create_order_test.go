package orders_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kioscosoft/distribuidora-api/internal/application/dto"
	"github.com/kioscosoft/distribuidora-api/internal/application/orders"
	"github.com/kioscosoft/distribuidora-api/internal/domain"
	"github.com/kioscosoft/distribuidora-api/internal/domain/entity"
)

type ordersEnv struct {
	uc        *orders.UseCase
	products  *fakeProductRepo
	repo      *fakeOrderRepo
	customers *fakeCustomerRepo
	trail     *fakeTrail
}

func newOrdersEnv(products ...*entity.Product) *ordersEnv {
	productRepo := newFakeProductRepo(products...)
	orderRepo := newFakeOrderRepo()
	customerRepo := newFakeCustomerRepo(&entity.Customer{
		ID:      "cli-1",
		Name:    "Almacén Don Pepe",
		Phone:   "+54 9 11 5555-1234",
		Address: "Av. Mitre 742",
		Tier:    entity.TierMayorista,
	})
	trail := &fakeTrail{}
	uc := orders.NewUseCase(
		&fakeTxRunner{orderRepo: orderRepo, productRepo: productRepo},
		customerRepo, orderRepo, trail,
	)
	return &ordersEnv{uc: uc, products: productRepo, repo: orderRepo, customers: customerRepo, trail: trail}
}

func producto(id string, stock, precio int64) *entity.Product {
	return &entity.Product{
		ID:             id,
		SKU:            "SKU-" + id,
		Name:           "Producto " + id,
		TrackStock:     true,
		CurrentStock:   stock,
		PriceMayorista: decimal.NewFromInt(precio),
		PriceMinorista: decimal.NewFromInt(precio + 20),
		PriceFinal:     decimal.NewFromInt(precio + 50),
		Active:         true,
	}
}

func linea(productID string, qty int64) dto.OrderItemRequest {
	return dto.OrderItemRequest{ProductID: productID, Quantity: qty}
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_DescuentaStockYCalculaTotales(t *testing.T) {
	env := newOrdersEnv(producto("p1", 10, 100))

	resp, err := env.uc.CreateOrder(context.Background(), "vend-1", dto.CreateOrderRequest{
		CustomerID: "cli-1",
		Items:      []dto.OrderItemRequest{linea("p1", 3)},
	})
	require.NoError(t, err)

	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(300)))
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, "NO_PAGO", resp.Status)
	assert.True(t, strings.HasPrefix(resp.Number, "PED-"), "número legible con prefijo PED-")
	assert.EqualValues(t, 7, env.products.stock("p1"))

	assert.Contains(t, env.trail.actions, "ORDER_CREATED")
	assert.True(t, env.trail.hasNotification("Nuevo pedido"))
}

func TestCreateOrder_StockInsuficiente_NoDejaEfectos(t *testing.T) {
	env := newOrdersEnv(producto("p1", 10, 100), producto("p2", 1, 50))

	_, err := env.uc.CreateOrder(context.Background(), "vend-1", dto.CreateOrderRequest{
		CustomerID: "cli-1",
		Items:      []dto.OrderItemRequest{linea("p1", 3), linea("p2", 5)},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Ningún efecto parcial: ni stock ni pedido ni auditoría.
	assert.EqualValues(t, 10, env.products.stock("p1"))
	assert.EqualValues(t, 1, env.products.stock("p2"))
	assert.Empty(t, env.repo.orders)
	assert.Empty(t, env.trail.actions)
}

func TestCreateOrder_SinControlDeStock_NoDescuenta(t *testing.T) {
	p := producto("p1", 0, 100)
	p.TrackStock = false
	env := newOrdersEnv(p)

	_, err := env.uc.CreateOrder(context.Background(), "vend-1", dto.CreateOrderRequest{
		CustomerID: "cli-1",
		Items:      []dto.OrderItemRequest{linea("p1", 5)},
	})
	require.NoError(t, err, "sin TrackStock se vende aun con stock cero")
	assert.EqualValues(t, 0, env.products.stock("p1"))
}

func TestCreateOrder_DescuentoPorcentualPorLinea(t *testing.T) {
	env := newOrdersEnv(producto("p1", 10, 200))

	resp, err := env.uc.CreateOrder(context.Background(), "vend-1", dto.CreateOrderRequest{
		CustomerID: "cli-1",
		Items: []dto.OrderItemRequest{{
			ProductID:       "p1",
			Quantity:        2,
			AdjustmentType:  "PERCENTAGE_OFF",
			AdjustmentValue: decimal.NewFromInt(10),
		}},
	})
	require.NoError(t, err)

	// 200 con 10% off = 180 unitario; 2 unidades = 360.
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].UnitPrice.Equal(decimal.NewFromInt(180)))
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(360)))
}

func TestCreateOrder_RecargoAdministrativo(t *testing.T) {
	env := newOrdersEnv(producto("p1", 10, 100))

	resp, err := env.uc.CreateOrder(context.Background(), "vend-1", dto.CreateOrderRequest{
		CustomerID: "cli-1",
		Items:      []dto.OrderItemRequest{linea("p1", 3)},
		FeePct:     decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	assert.True(t, resp.Fee.Equal(decimal.NewFromInt(30)))
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(330)))
}

func TestCreateOrder_NivelExplicitoPisaElDelCliente(t *testing.T) {
	// Cliente MAYORISTA (precio 100), pedido forzado a FINAL (precio 150).
	env := newOrdersEnv(producto("p1", 10, 100))

	resp, err := env.uc.CreateOrder(context.Background(), "vend-1", dto.CreateOrderRequest{
		CustomerID: "cli-1",
		Tier:       "FINAL",
		Items:      []dto.OrderItemRequest{linea("p1", 1)},
	})
	require.NoError(t, err)
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, "FINAL", resp.Tier)
}

func TestCreateOrder_FotoDePrecios(t *testing.T) {
	env := newOrdersEnv(producto("p1", 10, 100))

	resp, err := env.uc.CreateOrder(context.Background(), "vend-1", dto.CreateOrderRequest{
		CustomerID: "cli-1",
		Items:      []dto.OrderItemRequest{linea("p1", 1)},
	})
	require.NoError(t, err)

	// Una suba posterior del precio no altera la línea ya creada.
	p, _ := env.products.GetByID("p1")
	p.PriceMayorista = decimal.NewFromInt(999)

	got, err := env.uc.GetOrder(context.Background(), resp.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.True(t, got.Items[0].BasePrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, got.Subtotal.Equal(decimal.NewFromInt(100)))
}

func TestCreateOrder_DireccionDeEnvioEsFoto(t *testing.T) {
	env := newOrdersEnv(producto("p1", 10, 100))

	resp, err := env.uc.CreateOrder(context.Background(), "vend-1", dto.CreateOrderRequest{
		CustomerID: "cli-1",
		Items:      []dto.OrderItemRequest{linea("p1", 1)},
	})
	require.NoError(t, err)
	assert.Equal(t, "Av. Mitre 742", resp.ShippingAddress)

	c, _ := env.customers.GetByID("cli-1")
	c.Address = "Otra calle 123"

	got, err := env.uc.GetOrder(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Av. Mitre 742", got.ShippingAddress)
}

func TestCreateOrder_StockBajoNotificaAdmins(t *testing.T) {
	p := producto("p1", 6, 100)
	p.MinStock = 5
	env := newOrdersEnv(p)

	_, err := env.uc.CreateOrder(context.Background(), "vend-1", dto.CreateOrderRequest{
		CustomerID: "cli-1",
		Items:      []dto.OrderItemRequest{linea("p1", 3)},
	})
	require.NoError(t, err)

	// 6 - 3 = 3, por debajo del mínimo de 5.
	assert.True(t, env.trail.hasNotification("Stock bajo:"))
}

func TestCreateOrder_Validaciones(t *testing.T) {
	env := newOrdersEnv(producto("p1", 10, 100))
	ctx := context.Background()

	_, err := env.uc.CreateOrder(ctx, "", dto.CreateOrderRequest{
		CustomerID: "cli-1", Items: []dto.OrderItemRequest{linea("p1", 1)},
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = env.uc.CreateOrder(ctx, "vend-1", dto.CreateOrderRequest{CustomerID: "cli-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = env.uc.CreateOrder(ctx, "vend-1", dto.CreateOrderRequest{
		CustomerID: "cli-1", Items: []dto.OrderItemRequest{linea("p1", 0)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = env.uc.CreateOrder(ctx, "vend-1", dto.CreateOrderRequest{
		CustomerID: "cli-1",
		Items: []dto.OrderItemRequest{{
			ProductID: "p1", Quantity: 1, AdjustmentType: "DOS_POR_UNO",
		}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "ajuste desconocido")

	_, err = env.uc.CreateOrder(ctx, "vend-1", dto.CreateOrderRequest{
		CustomerID: "cli-99", Items: []dto.OrderItemRequest{linea("p1", 1)},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "cliente inexistente")

	_, err = env.uc.CreateOrder(ctx, "vend-1", dto.CreateOrderRequest{
		CustomerID: "cli-1", Items: []dto.OrderItemRequest{linea("p9", 1)},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inexistente")
}
