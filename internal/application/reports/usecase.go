// Package reports arma exportes para el back office (planilla de pedidos).
package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kioscosoft/distribuidora-api/internal/domain"
	"github.com/kioscosoft/distribuidora-api/internal/domain/entity"
	"github.com/kioscosoft/distribuidora-api/internal/domain/order"
	"github.com/kioscosoft/distribuidora-api/internal/domain/repository"
)

// OrderRow fila del reporte de pedidos.
type OrderRow struct {
	Number       string
	CustomerName string
	Status       string
	Subtotal     decimal.Decimal
	Fee          decimal.Decimal
	Total        decimal.Decimal
	CreatedAt    time.Time
}

// OrdersExporter serializa las filas al formato final (.xlsx en producción).
type OrdersExporter interface {
	ExportOrders(rows []OrderRow) ([]byte, error)
}

// UseCase generación de reportes.
type UseCase struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	exporter     OrdersExporter
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	exporter OrdersExporter,
) *UseCase {
	return &UseCase{orderRepo: orderRepo, customerRepo: customerRepo, exporter: exporter}
}

// OrdersReport exporta hasta limit pedidos (filtro opcional por estado) como
// planilla. Los nombres de cliente se resuelven una sola vez por cliente.
func (uc *UseCase) OrdersReport(ctx context.Context, actorID, status string, limit int) ([]byte, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthorized
	}
	if limit <= 0 || limit > 5000 {
		limit = 1000
	}
	var st entity.OrderStatus
	if status != "" {
		st = entity.OrderStatus(status)
		if !order.ValidStatus(st) {
			return nil, domain.ErrInvalidInput
		}
	}
	orders, err := uc.orderRepo.List(repository.OrderFilter{
		Status: st,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	names := make(map[string]string)
	rows := make([]OrderRow, 0, len(orders))
	for _, o := range orders {
		name, ok := names[o.CustomerID]
		if !ok {
			c, err := uc.customerRepo.GetByID(o.CustomerID)
			if err != nil {
				return nil, err
			}
			if c != nil {
				name = c.Name
			}
			names[o.CustomerID] = name
		}
		rows = append(rows, OrderRow{
			Number:       o.Number,
			CustomerName: name,
			Status:       string(o.Status),
			Subtotal:     o.Subtotal,
			Fee:          o.Fee,
			Total:        o.Total,
			CreatedAt:    o.CreatedAt,
		})
	}
	return uc.exporter.ExportOrders(rows)
}
