// Package shipping administra envíos (uno por pedido) y la etiqueta PDF.
package shipping

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kioscosoft/distribuidora-api/internal/application/audit"
	"github.com/kioscosoft/distribuidora-api/internal/application/dto"
	"github.com/kioscosoft/distribuidora-api/internal/domain"
	"github.com/kioscosoft/distribuidora-api/internal/domain/entity"
	"github.com/kioscosoft/distribuidora-api/internal/domain/repository"
)

// UseCase operaciones de envíos.
type UseCase struct {
	shipmentRepo repository.ShipmentRepository
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	labels       LabelGenerator
	trail        audit.Trail
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	shipmentRepo repository.ShipmentRepository,
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	labels LabelGenerator,
	trail audit.Trail,
) *UseCase {
	return &UseCase{
		shipmentRepo: shipmentRepo,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		labels:       labels,
		trail:        trail,
	}
}

// CreateShipment da de alta el envío de un pedido. Un segundo envío para el
// mismo pedido falla con ErrDuplicate (constraint único sobre order_id).
func (uc *UseCase) CreateShipment(ctx context.Context, actorID, orderID string, in dto.CreateShipmentRequest) (*dto.ShipmentResponse, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.Provider == "" {
		return nil, domain.ErrInvalidInput
	}
	ord, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	s := &entity.Shipment{
		ID:           uuid.New().String(),
		OrderID:      orderID,
		TrackingCode: in.TrackingCode,
		Provider:     in.Provider,
		Status:       "created",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.shipmentRepo.Create(s); err != nil {
		return nil, err
	}
	uc.trail.Record(ctx, actorID,
		"SHIPMENT_CREATED",
		fmt.Sprintf("Envío %s para pedido %s (%s)", s.TrackingCode, ord.Number, s.Provider),
		entity.CategoryDeliveries,
	)
	return toShipmentResponse(s), nil
}

// UpdateStatus actualiza el estado libre que reporta el transportista.
func (uc *UseCase) UpdateStatus(ctx context.Context, actorID, orderID string, in dto.UpdateShipmentStatusRequest) (*dto.ShipmentResponse, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.Status == "" {
		return nil, domain.ErrInvalidInput
	}
	s, err := uc.shipmentRepo.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	s.Status = in.Status
	s.UpdatedAt = time.Now()
	if err := uc.shipmentRepo.Update(s); err != nil {
		return nil, err
	}
	return toShipmentResponse(s), nil
}

// GetByOrder lee el envío de un pedido.
func (uc *UseCase) GetByOrder(ctx context.Context, orderID string) (*dto.ShipmentResponse, error) {
	s, err := uc.shipmentRepo.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toShipmentResponse(s), nil
}

// GenerateLabel arma la etiqueta PDF del pedido con la dirección foto del
// momento de creación. El envío es opcional (sin tracking, la etiqueta sale
// igual).
func (uc *UseCase) GenerateLabel(ctx context.Context, orderID string) ([]byte, error) {
	ord, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(ord.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	shipment, err := uc.shipmentRepo.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	return uc.labels.GenerateLabel(ctx, ord, customer, shipment)
}

func toShipmentResponse(s *entity.Shipment) *dto.ShipmentResponse {
	return &dto.ShipmentResponse{
		ID:           s.ID,
		OrderID:      s.OrderID,
		TrackingCode: s.TrackingCode,
		Provider:     s.Provider,
		Status:       s.Status,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
