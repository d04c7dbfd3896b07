package repository

import "github.com/kioscosoft/distribuidora-api/internal/domain/entity"

// ShipmentRepository puerto de persistencia para Shipment (uno por pedido).
type ShipmentRepository interface {
	Create(shipment *entity.Shipment) error
	GetByOrderID(orderID string) (*entity.Shipment, error)
	Update(shipment *entity.Shipment) error
}
