package repository

import "github.com/kioscosoft/distribuidora-api/internal/domain/entity"

// OrderFilter filtros de listado de pedidos.
type OrderFilter struct {
	Status     entity.OrderStatus
	CustomerID string
	RouteID    string
	Limit      int
	Offset     int
}

// OrderRepository puerto de persistencia para Order y sus líneas.
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateItem(item *entity.OrderItem) error
	GetByID(id string) (*entity.Order, error)
	GetForUpdate(id string) (*entity.Order, error)
	GetItems(orderID string) ([]*entity.OrderItem, error)
	Update(order *entity.Order) error
	ListByRoute(routeID string) ([]*entity.Order, error)
	List(f OrderFilter) ([]*entity.Order, error)
}
