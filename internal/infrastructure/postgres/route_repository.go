package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kioscosoft/distribuidora-api/internal/domain/entity"
	"github.com/kioscosoft/distribuidora-api/internal/domain/repository"
)

var _ repository.RouteRepository = (*RouteRepo)(nil)

const routeColumns = `id, name, date, driver_id, status, completed_at, created_at, updated_at`

// RouteRepo implementación del puerto RouteRepository sobre PostgreSQL.
type RouteRepo struct {
	q Querier
}

// NewRouteRepository construye el adaptador de persistencia para rutas.
func NewRouteRepository(q Querier) *RouteRepo {
	return &RouteRepo{q: q}
}

// Create persiste una ruta.
func (r *RouteRepo) Create(route *entity.DeliveryRoute) error {
	query := `
		INSERT INTO delivery_routes (id, name, date, driver_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		route.ID, route.Name, route.Date, route.DriverID, string(route.Status),
		route.CreatedAt, route.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert route: %w", err)
	}
	return nil
}

// GetByID obtiene una ruta por ID.
func (r *RouteRepo) GetByID(id string) (*entity.DeliveryRoute, error) {
	return r.getOne(`SELECT `+routeColumns+` FROM delivery_routes WHERE id = $1`, id)
}

// GetForUpdate obtiene una ruta bloqueando su fila. Solo dentro de una transacción.
func (r *RouteRepo) GetForUpdate(id string) (*entity.DeliveryRoute, error) {
	return r.getOne(`SELECT `+routeColumns+` FROM delivery_routes WHERE id = $1 FOR UPDATE`, id)
}

func (r *RouteRepo) getOne(query string, arg any) (*entity.DeliveryRoute, error) {
	var route entity.DeliveryRoute
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&route.ID, &route.Name, &route.Date, &route.DriverID, &route.Status,
		&route.CompletedAt, &route.CreatedAt, &route.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get route: %w", err)
	}
	return &route, nil
}

// Update actualiza una ruta existente.
func (r *RouteRepo) Update(route *entity.DeliveryRoute) error {
	query := `
		UPDATE delivery_routes SET name = $2, date = $3, driver_id = $4, status = $5,
			completed_at = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		route.ID, route.Name, route.Date, route.DriverID, string(route.Status),
		route.CompletedAt, route.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update route: %w", err)
	}
	return nil
}

// List lista rutas ordenadas por fecha descendente.
func (r *RouteRepo) List(limit, offset int) ([]*entity.DeliveryRoute, error) {
	query := `SELECT ` + routeColumns + ` FROM delivery_routes ORDER BY date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	defer rows.Close()
	var list []*entity.DeliveryRoute
	for rows.Next() {
		var route entity.DeliveryRoute
		if err := rows.Scan(&route.ID, &route.Name, &route.Date, &route.DriverID, &route.Status,
			&route.CompletedAt, &route.CreatedAt, &route.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan route: %w", err)
		}
		list = append(list, &route)
	}
	return list, rows.Err()
}
