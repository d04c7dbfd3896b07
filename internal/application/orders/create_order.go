package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kioscosoft/distribuidora-api/internal/application/audit"
	"github.com/kioscosoft/distribuidora-api/internal/application/dto"
	"github.com/kioscosoft/distribuidora-api/internal/domain"
	"github.com/kioscosoft/distribuidora-api/internal/domain/entity"
	domorder "github.com/kioscosoft/distribuidora-api/internal/domain/order"
	"github.com/kioscosoft/distribuidora-api/internal/domain/repository"
)

// UseCase agrupa las operaciones del ciclo de vida de pedidos: creación con
// descuento de stock, cancelación compensatoria y cambios de estado. La
// creación y la cancelación corren en una sola transacción con bloqueo de
// fila por producto (SELECT FOR UPDATE).
type UseCase struct {
	txRunner     TxRunner
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
	trail        audit.Trail
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
	trail audit.Trail,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		trail:        trail,
	}
}

// newOrderNumber genera el número legible del pedido a partir de un UUID
// fresco. El esquema viejo usaba los dígitos bajos del timestamp y chocaba
// con volumen alto; 8 hex de UUID alcanzan para una distribuidora.
func newOrderNumber() string {
	return "PED-" + strings.ToUpper(uuid.New().String()[:8])
}

// CreateOrder valida el pedido, resuelve precios por nivel con ajustes
// manuales, descuenta stock de los productos con TrackStock y persiste
// cabecera y líneas, todo en una transacción. Ante cualquier fallo de
// validación no queda ningún efecto (ni auditoría).
func (uc *UseCase) CreateOrder(ctx context.Context, actorID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		adj := entity.AdjustmentType(item.AdjustmentType)
		if item.AdjustmentType != "" && !domorder.ValidAdjustment(adj) {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.FeePct.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}

	tier := customer.Tier
	if in.Tier != "" {
		tier = entity.PriceTier(in.Tier)
		if !entity.ValidTier(tier) {
			return nil, domain.ErrInvalidInput
		}
	}
	shippingAddress := in.ShippingAddress
	if shippingAddress == "" {
		shippingAddress = customer.Address // foto: no sigue cambios posteriores
	}

	now := time.Now()
	ord := &entity.Order{
		ID:              uuid.New().String(),
		Number:          newOrderNumber(),
		CustomerID:      customer.ID,
		CreatedBy:       actorID,
		Tier:            tier,
		FeePct:          in.FeePct,
		Status:          entity.StatusNoPago,
		ShippingAddress: shippingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var items []*entity.OrderItem
	var lowStock []*entity.Product

	err = uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
	) error {
		// Primer paso: bloquear y validar TODOS los productos antes de tocar
		// stock. Un faltante en cualquier línea aborta el pedido entero.
		products := make([]*entity.Product, len(in.Items))
		for i, item := range in.Items {
			product, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil || product.DeletedAt != nil {
				return domain.ErrNotFound
			}
			if product.TrackStock && product.CurrentStock < item.Quantity {
				return domain.ErrInsufficientStock
			}
			products[i] = product
		}

		// Segundo paso: foto de precios, descuento de stock y persistencia.
		subtotal := decimal.Zero
		items = items[:0]
		for i, item := range in.Items {
			product := products[i]
			adj := entity.AdjustmentType(item.AdjustmentType)
			if item.AdjustmentType == "" {
				adj = entity.AdjustmentNone
			}
			base := product.PriceForTier(tier)
			unit := domorder.UnitPrice(base, adj, item.AdjustmentValue)
			lineSubtotal := unit.Mul(decimal.NewFromInt(item.Quantity))
			subtotal = subtotal.Add(lineSubtotal)
			items = append(items, &entity.OrderItem{
				ID:              uuid.New().String(),
				OrderID:         ord.ID,
				ProductID:       product.ID,
				ProductName:     product.Name,
				Quantity:        item.Quantity,
				BasePrice:       base,
				Tier:            tier,
				AdjustmentType:  adj,
				AdjustmentValue: item.AdjustmentValue,
				UnitPrice:       unit,
				Subtotal:        lineSubtotal,
			})

			if product.TrackStock {
				newStock := product.CurrentStock - item.Quantity
				if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
					return err
				}
				product.CurrentStock = newStock
				if newStock < product.MinStock {
					lowStock = append(lowStock, product)
				}
			}
		}

		ord.Subtotal = subtotal
		ord.Fee = domorder.Fee(subtotal, in.FeePct)
		ord.Total = subtotal.Add(ord.Fee)

		if err := orderRepo.Create(ord); err != nil {
			return err
		}
		for _, it := range items {
			if err := orderRepo.CreateItem(it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Efectos secundarios best-effort, solo después del commit.
	uc.trail.Record(ctx, actorID,
		"ORDER_CREATED",
		fmt.Sprintf("Pedido %s para %s por $%s", ord.Number, customer.Name, ord.Total.StringFixed(2)),
		entity.CategoryOrders,
	)
	uc.trail.NotifyAdmins(ctx,
		"Nuevo pedido "+ord.Number,
		fmt.Sprintf("%s — %d líneas, total $%s", customer.Name, len(items), ord.Total.StringFixed(2)),
		entity.CategoryOrders,
	)
	for _, p := range lowStock {
		uc.trail.NotifyAdmins(ctx,
			"Stock bajo: "+p.Name,
			fmt.Sprintf("Quedan %d unidades (mínimo %d)", p.CurrentStock, p.MinStock),
			entity.CategoryStock,
		)
	}

	return uc.toResponse(ord, items), nil
}

func (uc *UseCase) toResponse(ord *entity.Order, items []*entity.OrderItem) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:              ord.ID,
		Number:          ord.Number,
		CustomerID:      ord.CustomerID,
		CreatedBy:       ord.CreatedBy,
		Tier:            string(ord.Tier),
		Subtotal:        ord.Subtotal,
		FeePct:          ord.FeePct,
		Fee:             ord.Fee,
		Total:           ord.Total,
		Status:          string(ord.Status),
		RouteID:         ord.RouteID,
		RequiresCode:    ord.RequiresCode,
		ShippingAddress: ord.ShippingAddress,
		PaidAt:          ord.PaidAt,
		DeliveredAt:     ord.DeliveredAt,
		CreatedAt:       ord.CreatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:              it.ID,
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			Quantity:        it.Quantity,
			BasePrice:       it.BasePrice,
			AdjustmentType:  string(it.AdjustmentType),
			AdjustmentValue: it.AdjustmentValue,
			UnitPrice:       it.UnitPrice,
			Subtotal:        it.Subtotal,
		})
	}
	return resp
}

// GetOrder obtiene un pedido por ID con sus líneas.
func (uc *UseCase) GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	ord, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.orderRepo.GetItems(id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ord, items), nil
}

// ListOrders lista pedidos con filtros opcionales de estado/cliente/ruta.
func (uc *UseCase) ListOrders(ctx context.Context, f repository.OrderFilter) (*dto.OrderListResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	list, err := uc.orderRepo.List(f)
	if err != nil {
		return nil, err
	}
	out := &dto.OrderListResponse{
		Items: make([]dto.OrderResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}
	for _, ord := range list {
		out.Items = append(out.Items, *uc.toResponse(ord, nil))
	}
	return out, nil
}
