package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kioscosoft/distribuidora-api/internal/domain"
	"github.com/kioscosoft/distribuidora-api/internal/domain/entity"
	"github.com/kioscosoft/distribuidora-api/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo implementación del puerto ShipmentRepository sobre PostgreSQL.
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository construye el adaptador de persistencia para envíos.
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

// Create persiste un envío. Un segundo envío del mismo pedido retorna
// ErrDuplicate (constraint único sobre order_id).
func (r *ShipmentRepo) Create(s *entity.Shipment) error {
	query := `
		INSERT INTO shipments (id, order_id, tracking_code, provider, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.OrderID, s.TrackingCode, s.Provider, s.Status, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert shipment: %w", err)
	}
	return nil
}

// GetByOrderID obtiene el envío de un pedido.
func (r *ShipmentRepo) GetByOrderID(orderID string) (*entity.Shipment, error) {
	query := `
		SELECT id, order_id, tracking_code, provider, status, created_at, updated_at
		FROM shipments WHERE order_id = $1`
	var s entity.Shipment
	err := r.q.QueryRow(context.Background(), query, orderID).Scan(
		&s.ID, &s.OrderID, &s.TrackingCode, &s.Provider, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	return &s, nil
}

// Update actualiza un envío existente.
func (r *ShipmentRepo) Update(s *entity.Shipment) error {
	query := `
		UPDATE shipments SET tracking_code = $2, provider = $3, status = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.TrackingCode, s.Provider, s.Status, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update shipment: %w", err)
	}
	return nil
}
