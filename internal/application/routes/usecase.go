// Package routes arma repartos: agrupa pedidos confirmados en una ruta,
// maneja el código de confirmación de entrega por pedido y el cierre masivo
// de la ruta ("llegó el camión entero").
package routes

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/kioscosoft/distribuidora-api/internal/application/audit"
	"github.com/kioscosoft/distribuidora-api/internal/application/dto"
	"github.com/kioscosoft/distribuidora-api/internal/domain"
	"github.com/kioscosoft/distribuidora-api/internal/domain/entity"
	domorder "github.com/kioscosoft/distribuidora-api/internal/domain/order"
	"github.com/kioscosoft/distribuidora-api/internal/domain/repository"
)

// UseCase operaciones de repartos.
type UseCase struct {
	txRunner  TxRunner
	routeRepo repository.RouteRepository
	orderRepo repository.OrderRepository
	trail     audit.Trail
	genCode   func() string
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	routeRepo repository.RouteRepository,
	orderRepo repository.OrderRepository,
	trail audit.Trail,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		routeRepo: routeRepo,
		orderRepo: orderRepo,
		trail:     trail,
		genCode:   randomCode,
	}
}

// randomCode código de confirmación de 4 dígitos, con ceros a la izquierda.
func randomCode() string {
	return fmt.Sprintf("%04d", rand.IntN(10000))
}

// CreateRoute crea el reparto y le cuelga los pedidos indicados en una sola
// transacción: cada pedido pasa a DELIVERING y, si requireCode, recibe un
// código fresco de 4 dígitos. Un pedido ya colgado de esta misma ruta se
// saltea (re-ejecutar es seguro); un pedido en estado no asignable aborta
// todo con ErrInvalidTransition.
func (uc *UseCase) CreateRoute(ctx context.Context, actorID string, in dto.CreateRouteRequest) (*dto.RouteResponse, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(in.OrderIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	date := time.Now()
	if in.Date != "" {
		parsed, err := time.Parse("2006-01-02", in.Date)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		date = parsed
	}

	now := time.Now()
	route := &entity.DeliveryRoute{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Date:      date,
		DriverID:  in.DriverID,
		Status:    entity.RoutePending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := uc.txRunner.RunRoute(ctx, func(
		routeRepo repository.RouteRepository,
		orderRepo repository.OrderRepository,
	) error {
		if err := routeRepo.Create(route); err != nil {
			return err
		}
		for _, orderID := range in.OrderIDs {
			ord, err := orderRepo.GetForUpdate(orderID)
			if err != nil {
				return err
			}
			if ord == nil {
				return domain.ErrNotFound
			}
			if ord.RouteID != nil && *ord.RouteID == route.ID {
				continue // ya colgado de esta ruta
			}
			if err := uc.attach(ord, route.ID, in.RequireCode, now); err != nil {
				return err
			}
			if err := orderRepo.Update(ord); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.trail.Record(ctx, actorID,
		"ROUTE_CREATED",
		fmt.Sprintf("Reparto %s con %d pedidos", route.Name, len(in.OrderIDs)),
		entity.CategoryDeliveries,
	)
	resp := toRouteResponse(route)
	resp.OrderCount = len(in.OrderIDs)
	return resp, nil
}

// attach cuelga el pedido de la ruta: estado DELIVERING y código según la
// política de la ruta. Asignar siempre regenera el código; sin requireCode
// se limpia cualquier código anterior.
func (uc *UseCase) attach(ord *entity.Order, routeID string, requireCode bool, now time.Time) error {
	if ord.Status != entity.StatusDelivering {
		if err := domorder.Transition(ord, entity.StatusDelivering, now); err != nil {
			return err
		}
	}
	ord.RouteID = &routeID
	if requireCode {
		ord.DeliveryCode = uc.genCode()
		ord.RequiresCode = true
	} else {
		ord.DeliveryCode = ""
		ord.RequiresCode = false
	}
	ord.UpdatedAt = now
	return nil
}

// ToggleOrderRoute asigna (routeID != nil) o quita (routeID == nil) un pedido
// de una ruta. Quitar limpia el código y vuelve el pedido a su estado de pago
// previo: PAGO si estaba cobrado, NO_PAGO si no.
func (uc *UseCase) ToggleOrderRoute(ctx context.Context, actorID, orderID string, routeID *string) error {
	if actorID == "" {
		return domain.ErrUnauthorized
	}
	var number string
	err := uc.txRunner.RunRoute(ctx, func(
		routeRepo repository.RouteRepository,
		orderRepo repository.OrderRepository,
	) error {
		ord, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if ord == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		if routeID != nil {
			route, err := routeRepo.GetByID(*routeID)
			if err != nil {
				return err
			}
			if route == nil {
				return domain.ErrNotFound
			}
			if err := uc.attach(ord, route.ID, true, now); err != nil {
				return err
			}
		} else {
			target := entity.StatusNoPago
			if ord.PaidAt != nil {
				target = entity.StatusPago
			}
			prevPaid := ord.PaidAt
			if err := domorder.Transition(ord, target, now); err != nil {
				return err
			}
			ord.PaidAt = prevPaid // la reversa de ruta no toca el cobro
			ord.RouteID = nil
			ord.DeliveryCode = ""
			ord.RequiresCode = false
		}
		number = ord.Number
		return orderRepo.Update(ord)
	})
	if err != nil {
		return err
	}

	action, details := "ORDER_ROUTE_ASSIGNED", "Pedido %s asignado a reparto"
	if routeID == nil {
		action, details = "ORDER_ROUTE_REMOVED", "Pedido %s quitado del reparto"
	}
	uc.trail.Record(ctx, actorID, action, fmt.Sprintf(details, number), entity.CategoryDeliveries)
	return nil
}

// DeliverOrder marca un pedido como entregado. Si el pedido exige código, el
// provisto debe coincidir exactamente o la operación falla sin tocar nada.
// DELIVERED es terminal: re-entregar retorna ErrInvalidTransition.
func (uc *UseCase) DeliverOrder(ctx context.Context, actorID, orderID, code string) error {
	if actorID == "" {
		return domain.ErrUnauthorized
	}
	var number string
	err := uc.txRunner.RunRoute(ctx, func(
		_ repository.RouteRepository,
		orderRepo repository.OrderRepository,
	) error {
		ord, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if ord == nil {
			return domain.ErrNotFound
		}
		if ord.RequiresCode && code != ord.DeliveryCode {
			return domain.ErrIncorrectCode
		}
		now := time.Now()
		if err := domorder.Transition(ord, entity.StatusDelivered, now); err != nil {
			return err
		}
		t := now
		ord.DeliveredAt = &t
		number = ord.Number
		return orderRepo.Update(ord)
	})
	if err != nil {
		return err
	}

	uc.trail.Record(ctx, actorID,
		"ORDER_DELIVERED",
		fmt.Sprintf("Pedido %s entregado", number),
		entity.CategoryDeliveries,
	)
	uc.trail.NotifyAdmins(ctx, "Pedido entregado "+number, "", entity.CategoryDeliveries)
	return nil
}

// StartRoute pasa el reparto de PENDING a IN_PROGRESS.
func (uc *UseCase) StartRoute(ctx context.Context, actorID, routeID string) error {
	if actorID == "" {
		return domain.ErrUnauthorized
	}
	return uc.txRunner.RunRoute(ctx, func(
		routeRepo repository.RouteRepository,
		_ repository.OrderRepository,
	) error {
		route, err := routeRepo.GetForUpdate(routeID)
		if err != nil {
			return err
		}
		if route == nil {
			return domain.ErrNotFound
		}
		if route.Status != entity.RoutePending {
			return domain.ErrInvalidTransition
		}
		route.Status = entity.RouteInProgress
		route.UpdatedAt = time.Now()
		return routeRepo.Update(route)
	})
}

// CompleteRoute cierra el reparto y marca como entregado todo pedido todavía
// colgado de la ruta, salteando el chequeo de código ("llegó el camión
// entero"). Si DeliverOrder y CompleteRoute compiten, gana la última
// escritura sobre el estado; no hay detección de conflicto. Los pedidos
// cancelados en ruta no se tocan. Completar una ruta ya completada es no-op.
func (uc *UseCase) CompleteRoute(ctx context.Context, actorID, routeID string) error {
	if actorID == "" {
		return domain.ErrUnauthorized
	}
	var delivered int
	err := uc.txRunner.RunRoute(ctx, func(
		routeRepo repository.RouteRepository,
		orderRepo repository.OrderRepository,
	) error {
		route, err := routeRepo.GetForUpdate(routeID)
		if err != nil {
			return err
		}
		if route == nil {
			return domain.ErrNotFound
		}
		if route.Status == entity.RouteCompleted {
			return nil
		}
		now := time.Now()
		route.Status = entity.RouteCompleted
		route.CompletedAt = &now
		route.UpdatedAt = now
		if err := routeRepo.Update(route); err != nil {
			return err
		}

		ords, err := orderRepo.ListByRoute(routeID)
		if err != nil {
			return err
		}
		for _, ord := range ords {
			if ord.Status == entity.StatusDelivered || ord.Status == entity.StatusCancelled {
				continue
			}
			// Cierre masivo: se fuerza el estado sin pasar por el código.
			ord.Status = entity.StatusDelivered
			t := now
			ord.DeliveredAt = &t
			ord.UpdatedAt = now
			if err := orderRepo.Update(ord); err != nil {
				return err
			}
			delivered++
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.trail.Record(ctx, actorID,
		"ROUTE_COMPLETED",
		fmt.Sprintf("Reparto completado, %d pedidos entregados", delivered),
		entity.CategoryDeliveries,
	)
	uc.trail.NotifyAdmins(ctx,
		"Reparto completado",
		fmt.Sprintf("%d pedidos marcados como entregados", delivered),
		entity.CategoryDeliveries,
	)
	return nil
}

// GetRoute obtiene un reparto por ID.
func (uc *UseCase) GetRoute(ctx context.Context, id string) (*dto.RouteResponse, error) {
	route, err := uc.routeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, domain.ErrNotFound
	}
	ords, err := uc.orderRepo.ListByRoute(id)
	if err != nil {
		return nil, err
	}
	resp := toRouteResponse(route)
	resp.OrderCount = len(ords)
	return resp, nil
}

// ListRoutes lista repartos paginados.
func (uc *UseCase) ListRoutes(ctx context.Context, limit, offset int) (*dto.RouteListResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.routeRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.RouteListResponse{
		Items: make([]dto.RouteResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, r := range list {
		out.Items = append(out.Items, *toRouteResponse(r))
	}
	return out, nil
}

func toRouteResponse(r *entity.DeliveryRoute) *dto.RouteResponse {
	return &dto.RouteResponse{
		ID:          r.ID,
		Name:        r.Name,
		Date:        r.Date,
		DriverID:    r.DriverID,
		Status:      string(r.Status),
		CompletedAt: r.CompletedAt,
		CreatedAt:   r.CreatedAt,
	}
}
