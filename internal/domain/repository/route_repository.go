package repository

import "github.com/kioscosoft/distribuidora-api/internal/domain/entity"

// RouteRepository puerto de persistencia para DeliveryRoute.
type RouteRepository interface {
	Create(route *entity.DeliveryRoute) error
	GetByID(id string) (*entity.DeliveryRoute, error)
	GetForUpdate(id string) (*entity.DeliveryRoute, error)
	Update(route *entity.DeliveryRoute) error
	List(limit, offset int) ([]*entity.DeliveryRoute, error)
}
