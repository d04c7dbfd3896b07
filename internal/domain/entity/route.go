package entity

import "time"

// RouteStatus estado de un reparto.
type RouteStatus string

const (
	RoutePending    RouteStatus = "PENDING"
	RouteInProgress RouteStatus = "IN_PROGRESS"
	RouteCompleted  RouteStatus = "COMPLETED"
)

// DeliveryRoute agrupa pedidos confirmados en un reparto. Un pedido pertenece
// a lo sumo a una ruta a la vez.
type DeliveryRoute struct {
	ID          string
	Name        string
	Date        time.Time
	DriverID    *string
	Status      RouteStatus
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
