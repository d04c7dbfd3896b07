package order

import (
	"time"

	"github.com/kioscosoft/distribuidora-api/internal/domain"
	"github.com/kioscosoft/distribuidora-api/internal/domain/entity"
)

// transitions tabla explícita de transiciones válidas. El esquema histórico
// permitía saltar de cualquier estado a cualquier otro; acá se restringe:
// DELIVERED y CANCELLED son terminales, y las vueltas desde DELIVERING a un
// estado de pago corresponden a quitar el pedido de una ruta.
var transitions = map[entity.OrderStatus]map[entity.OrderStatus]bool{
	entity.StatusNoPago: {
		entity.StatusPago:       true,
		entity.StatusFiado:      true,
		entity.StatusDelivering: true,
		entity.StatusCancelled:  true,
	},
	entity.StatusPago: {
		entity.StatusNoPago:     true,
		entity.StatusFiado:      true,
		entity.StatusDelivering: true,
		entity.StatusCancelled:  true,
	},
	entity.StatusFiado: {
		entity.StatusNoPago:     true,
		entity.StatusPago:       true,
		entity.StatusDelivering: true,
		entity.StatusCancelled:  true,
	},
	entity.StatusDelivering: {
		entity.StatusDelivered: true,
		entity.StatusNoPago:    true,
		entity.StatusPago:      true,
		entity.StatusFiado:     true,
		entity.StatusCancelled: true,
	},
	entity.StatusDelivered: {},
	entity.StatusCancelled: {},
}

// CanTransition indica si el cambio de estado es válido.
func CanTransition(from, to entity.OrderStatus) bool {
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	return allowed[to]
}

// Transition valida y aplica el cambio de estado sobre el pedido.
// Mantiene PaidAt: se fija al entrar a PAGO y se limpia al volver a NO_PAGO.
func Transition(o *entity.Order, to entity.OrderStatus, now time.Time) error {
	if !CanTransition(o.Status, to) {
		return domain.ErrInvalidTransition
	}
	switch {
	case to == entity.StatusPago:
		t := now
		o.PaidAt = &t
	case to == entity.StatusNoPago:
		o.PaidAt = nil
	}
	o.Status = to
	o.UpdatedAt = now
	return nil
}

// IsPaid indica si el estado representa un pedido cobrado.
func IsPaid(s entity.OrderStatus) bool { return s == entity.StatusPago }

// ValidStatus indica si el valor es un estado conocido.
func ValidStatus(s entity.OrderStatus) bool {
	_, ok := transitions[s]
	return ok
}
