package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/kioscosoft/distribuidora-api/internal/domain"
	"github.com/kioscosoft/distribuidora-api/internal/domain/entity"
	domorder "github.com/kioscosoft/distribuidora-api/internal/domain/order"
	"github.com/kioscosoft/distribuidora-api/internal/domain/repository"
)

// UpdateStatus cambia el estado de un pedido validando contra la tabla de
// transiciones. Entrar a PAGO o volver de PAGO a NO_PAGO dispara un aviso a
// los admins (alta de cobro y reversa, respectivamente); toda transición
// queda auditada con el viejo→nuevo y el número del pedido.
func (uc *UseCase) UpdateStatus(ctx context.Context, actorID, orderID string, newStatus entity.OrderStatus) error {
	if actorID == "" {
		return domain.ErrUnauthorized
	}
	if !domorder.ValidStatus(newStatus) {
		return domain.ErrInvalidInput
	}
	if newStatus == entity.StatusCancelled {
		// La cancelación restaura stock; debe pasar por CancelOrder.
		return uc.CancelOrder(ctx, actorID, orderID)
	}

	var ord *entity.Order
	var oldStatus entity.OrderStatus
	err := uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.ProductRepository,
	) error {
		var err error
		ord, err = orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if ord == nil {
			return domain.ErrNotFound
		}
		oldStatus = ord.Status
		if err := domorder.Transition(ord, newStatus, time.Now()); err != nil {
			return err
		}
		return orderRepo.Update(ord)
	})
	if err != nil {
		return err
	}

	uc.trail.Record(ctx, actorID,
		"ORDER_STATUS",
		fmt.Sprintf("Pedido %s: %s → %s", ord.Number, oldStatus, newStatus),
		entity.CategoryOrders,
	)
	switch {
	case newStatus == entity.StatusPago:
		uc.trail.NotifyAdmins(ctx,
			"Pedido cobrado "+ord.Number,
			fmt.Sprintf("Total $%s", ord.Total.StringFixed(2)),
			entity.CategoryPayments,
		)
	case oldStatus == entity.StatusPago && newStatus == entity.StatusNoPago:
		uc.trail.NotifyAdmins(ctx,
			"Reversa de cobro "+ord.Number,
			fmt.Sprintf("El pedido volvió a NO_PAGO (total $%s)", ord.Total.StringFixed(2)),
			entity.CategoryPayments,
		)
	}
	return nil
}
