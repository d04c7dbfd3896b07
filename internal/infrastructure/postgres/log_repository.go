package postgres

import (
	"context"
	"fmt"

	"github.com/kioscosoft/distribuidora-api/internal/domain/entity"
	"github.com/kioscosoft/distribuidora-api/internal/domain/repository"
)

var _ repository.LogRepository = (*LogRepo)(nil)

// LogRepo implementación del puerto LogRepository sobre PostgreSQL.
// Las entradas son inmutables: solo INSERT y SELECT.
type LogRepo struct {
	q Querier
}

// NewLogRepository construye el adaptador del registro de auditoría.
func NewLogRepository(q Querier) *LogRepo {
	return &LogRepo{q: q}
}

// Create inserta una entrada de auditoría.
func (r *LogRepo) Create(e *entity.LogEntry) error {
	query := `
		INSERT INTO log_entries (id, user_id, action, details, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.UserID, e.Action, e.Details, e.Category, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert log entry: %w", err)
	}
	return nil
}

// List lista entradas, opcionalmente filtradas por categoría, más recientes primero.
func (r *LogRepo) List(category string, limit, offset int) ([]*entity.LogEntry, error) {
	query := `
		SELECT id, user_id, action, details, category, created_at
		FROM log_entries
		WHERE ($1 = '' OR category = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, category, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list log entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.LogEntry
	for rows.Next() {
		var e entity.LogEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.Details, &e.Category, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
