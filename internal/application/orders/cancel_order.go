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

// CancelOrder cancela un pedido devolviendo al stock exactamente lo que la
// creación descontó (transacción compensatoria). Es idempotente: cancelar un
// pedido ya cancelado o inexistente no hace nada. Un pedido DELIVERED no se
// puede cancelar.
func (uc *UseCase) CancelOrder(ctx context.Context, actorID, orderID string) error {
	if actorID == "" {
		return domain.ErrUnauthorized
	}
	if orderID == "" {
		return domain.ErrInvalidInput
	}

	var cancelled *entity.Order
	err := uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
	) error {
		ord, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if ord == nil || ord.Status == entity.StatusCancelled {
			return nil // doble cancelación: no-op
		}
		now := time.Now()
		if err := domorder.Transition(ord, entity.StatusCancelled, now); err != nil {
			return err
		}

		items, err := orderRepo.GetItems(orderID)
		if err != nil {
			return err
		}
		// Restauración completa: cada línea con TrackStock suma su cantidad,
		// sin importar el tiempo transcurrido ni ediciones posteriores del
		// producto.
		for _, item := range items {
			product, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil || !product.TrackStock {
				continue
			}
			if err := productRepo.UpdateStock(product.ID, product.CurrentStock+item.Quantity); err != nil {
				return err
			}
		}

		if err := orderRepo.Update(ord); err != nil {
			return err
		}
		cancelled = ord
		return nil
	})
	if err != nil {
		return err
	}
	if cancelled == nil {
		return nil
	}

	uc.trail.Record(ctx, actorID,
		"ORDER_CANCELLED",
		fmt.Sprintf("Pedido %s cancelado, stock restaurado", cancelled.Number),
		entity.CategoryOrders,
	)
	uc.trail.NotifyAdmins(ctx,
		"Pedido cancelado "+cancelled.Number,
		fmt.Sprintf("Total $%s devuelto a stock", cancelled.Total.StringFixed(2)),
		entity.CategoryOrders,
	)
	return nil
}
