package entity

import "time"

// Shipment envío asociado uno a uno con un pedido. Status es texto libre
// (lo define el transportista, no se enumera).
type Shipment struct {
	ID           string
	OrderID      string
	TrackingCode string
	Provider     string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
