package dto

import "time"

// CreateShipmentRequest alta de envío para un pedido.
type CreateShipmentRequest struct {
	Provider     string `json:"provider" validate:"required"`
	TrackingCode string `json:"tracking_code"`
}

// UpdateShipmentStatusRequest estado libre del transportista.
type UpdateShipmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ShipmentResponse salida de un envío.
type ShipmentResponse struct {
	ID           string    `json:"id"`
	OrderID      string    `json:"order_id"`
	TrackingCode string    `json:"tracking_code"`
	Provider     string    `json:"provider"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
