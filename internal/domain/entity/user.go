package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin      = "admin"
	RoleVendedor   = "vendedor"
	RoleRepartidor = "repartidor"
)

// NotificationPrefs opt-in por categoría para el fan-out de notificaciones.
type NotificationPrefs struct {
	Orders     bool
	Payments   bool
	Deliveries bool
	Cash       bool
	Stock      bool
}

// Allows indica si el usuario aceptó recibir la categoría dada. Una categoría
// desconocida se entrega igual (mejor de más que perder un aviso).
func (p NotificationPrefs) Allows(category string) bool {
	switch category {
	case CategoryOrders:
		return p.Orders
	case CategoryPayments:
		return p.Payments
	case CategoryDeliveries:
		return p.Deliveries
	case CategoryCash:
		return p.Cash
	case CategoryStock:
		return p.Stock
	}
	return true
}

// User usuario del sistema (admin, vendedor o repartidor).
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	Prefs        NotificationPrefs
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
