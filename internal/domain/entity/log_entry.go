package entity

import "time"

// Categorías de auditoría/notificación.
const (
	CategoryOrders     = "orders"
	CategoryPayments   = "payments"
	CategoryDeliveries = "deliveries"
	CategoryCash       = "cash"
	CategoryStock      = "stock"
)

// LogEntry registro inmutable de auditoría: quién hizo qué. Nunca se
// actualiza ni se borra.
type LogEntry struct {
	ID        string
	UserID    string
	Action    string // código de acción, ej. "ORDER_CREATED"
	Details   string // texto libre legible
	Category  string
	CreatedAt time.Time
}
