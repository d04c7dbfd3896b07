package dto

import "time"

// CreateRouteRequest entrada para armar un reparto.
type CreateRouteRequest struct {
	Name        string   `json:"name"`
	Date        string   `json:"date"` // YYYY-MM-DD, vacío = hoy
	DriverID    *string  `json:"driver_id"`
	OrderIDs    []string `json:"order_ids" validate:"required,min=1"`
	RequireCode bool     `json:"require_code"`
}

// ToggleOrderRouteRequest asigna (route_id) o quita (null) un pedido de ruta.
type ToggleOrderRouteRequest struct {
	RouteID *string `json:"route_id"`
}

// DeliverOrderRequest entrega de un pedido; Code es obligatorio solo si el
// pedido exige código de confirmación.
type DeliverOrderRequest struct {
	Code string `json:"code"`
}

// RouteResponse salida de un reparto.
type RouteResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Date        time.Time  `json:"date"`
	DriverID    *string    `json:"driver_id,omitempty"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	OrderCount  int        `json:"order_count,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// RouteListResponse lista paginada de repartos.
type RouteListResponse struct {
	Items []RouteResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
