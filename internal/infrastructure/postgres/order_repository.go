package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/kioscosoft/distribuidora-api/internal/domain"
	"github.com/kioscosoft/distribuidora-api/internal/domain/entity"
	"github.com/kioscosoft/distribuidora-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, number, customer_id, created_by, tier, subtotal, fee_pct, fee, total,
	status, route_id, delivery_code, requires_code, shipping_address, paid_at, delivered_at,
	created_at, updated_at`

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para pedidos.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste un pedido. Número duplicado retorna ErrDuplicate.
func (r *OrderRepo) Create(o *entity.Order) error {
	query := `
		INSERT INTO orders (id, number, customer_id, created_by, tier, subtotal, fee_pct, fee, total,
			status, route_id, delivery_code, requires_code, shipping_address, paid_at, delivered_at,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.Number, o.CustomerID, o.CreatedBy, string(o.Tier), o.Subtotal, o.FeePct, o.Fee,
		o.Total, string(o.Status), o.RouteID, o.DeliveryCode, o.RequiresCode, o.ShippingAddress,
		o.PaidAt, o.DeliveredAt, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de pedido.
func (r *OrderRepo) CreateItem(it *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, product_name, quantity, base_price,
			tier, adjustment_type, adjustment_value, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		it.ID, it.OrderID, it.ProductID, it.ProductName, it.Quantity, it.BasePrice,
		string(it.Tier), string(it.AdjustmentType), it.AdjustmentValue, it.UnitPrice, it.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	return r.getOne(`SELECT ` + orderColumns + ` FROM orders WHERE id = $1`, id)
}

// GetForUpdate obtiene un pedido bloqueando su fila. Solo dentro de una transacción.
func (r *OrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	return r.getOne(`SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *OrderRepo) getOne(query string, arg any) (*entity.Order, error) {
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&o.ID, &o.Number, &o.CustomerID, &o.CreatedBy, &o.Tier, &o.Subtotal, &o.FeePct, &o.Fee,
		&o.Total, &o.Status, &o.RouteID, &o.DeliveryCode, &o.RequiresCode, &o.ShippingAddress,
		&o.PaidAt, &o.DeliveredAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// GetItems obtiene las líneas del pedido en orden de inserción.
func (r *OrderRepo) GetItems(orderID string) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, product_name, quantity, base_price, tier,
			adjustment_type, adjustment_value, unit_price, subtotal
		FROM order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity,
			&it.BasePrice, &it.Tier, &it.AdjustmentType, &it.AdjustmentValue, &it.UnitPrice,
			&it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Update actualiza los campos mutables del pedido (estado, ruta, código, fechas).
// Los montos y las líneas son una foto de la creación y no se tocan.
func (r *OrderRepo) Update(o *entity.Order) error {
	query := `
		UPDATE orders SET status = $2, route_id = $3, delivery_code = $4, requires_code = $5,
			paid_at = $6, delivered_at = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, string(o.Status), o.RouteID, o.DeliveryCode, o.RequiresCode,
		o.PaidAt, o.DeliveredAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// ListByRoute lista los pedidos asignados a una ruta.
func (r *OrderRepo) ListByRoute(routeID string) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE route_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, routeID)
	if err != nil {
		return nil, fmt.Errorf("list orders by route: %w", err)
	}
	defer rows.Close()
	return scanOrders(rows)
}

// List lista pedidos con filtros opcionales de estado, cliente y ruta.
func (r *OrderRepo) List(f repository.OrderFilter) ([]*entity.Order, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + orderColumns + ` FROM orders WHERE 1=1`)
	args := []any{}
	if f.Status != "" {
		args = append(args, string(f.Status))
		sb.WriteString(` AND status = $` + strconv.Itoa(len(args)))
	}
	if f.CustomerID != "" {
		args = append(args, f.CustomerID)
		sb.WriteString(` AND customer_id = $` + strconv.Itoa(len(args)))
	}
	if f.RouteID != "" {
		args = append(args, f.RouteID)
		sb.WriteString(` AND route_id = $` + strconv.Itoa(len(args)))
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit)
	sb.WriteString(` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)))
	args = append(args, f.Offset)
	sb.WriteString(` OFFSET $` + strconv.Itoa(len(args)))

	rows, err := r.q.Query(context.Background(), sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	return scanOrders(rows)
}

func scanOrders(rows pgx.Rows) ([]*entity.Order, error) {
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.Number, &o.CustomerID, &o.CreatedBy, &o.Tier, &o.Subtotal,
			&o.FeePct, &o.Fee, &o.Total, &o.Status, &o.RouteID, &o.DeliveryCode, &o.RequiresCode,
			&o.ShippingAddress, &o.PaidAt, &o.DeliveredAt, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
