package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/kioscosoft/distribuidora-api/internal/domain"
	"github.com/kioscosoft/distribuidora-api/internal/domain/entity"
	"github.com/kioscosoft/distribuidora-api/internal/domain/repository"
)

var _ repository.CashShiftRepository = (*CashShiftRepo)(nil)
var _ repository.CashTransactionRepository = (*CashTransactionRepo)(nil)

const shiftColumns = `id, opened_by, opened_at, closed_at, start_amount, counted_amount,
	system_amount, variance, status`

// CashShiftRepo implementación del puerto CashShiftRepository sobre PostgreSQL.
type CashShiftRepo struct {
	q Querier
}

// NewCashShiftRepository construye el adaptador de persistencia para turnos.
func NewCashShiftRepository(q Querier) *CashShiftRepo {
	return &CashShiftRepo{q: q}
}

// Create persiste un turno. El índice parcial único sobre status='OPEN'
// convierte una carrera de doble apertura en ErrShiftAlreadyOpen.
func (r *CashShiftRepo) Create(s *entity.CashShift) error {
	query := `
		INSERT INTO cash_shifts (id, opened_by, opened_at, closed_at, start_amount,
			counted_amount, system_amount, variance, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.OpenedBy, s.OpenedAt, s.ClosedAt, s.StartAmount,
		s.CountedAmount, s.SystemAmount, s.Variance, string(s.Status),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrShiftAlreadyOpen
		}
		return fmt.Errorf("insert cash shift: %w", err)
	}
	return nil
}

// GetByID obtiene un turno por ID.
func (r *CashShiftRepo) GetByID(id string) (*entity.CashShift, error) {
	return r.getOne(`SELECT `+shiftColumns+` FROM cash_shifts WHERE id = $1`, id)
}

// GetOpen devuelve el único turno abierto o nil.
func (r *CashShiftRepo) GetOpen() (*entity.CashShift, error) {
	return r.getOne(`SELECT `+shiftColumns+` FROM cash_shifts WHERE status = 'OPEN'`, nil)
}

// GetOpenForUpdate devuelve el turno abierto bloqueando su fila.
// Solo dentro de una transacción.
func (r *CashShiftRepo) GetOpenForUpdate() (*entity.CashShift, error) {
	return r.getOne(`SELECT `+shiftColumns+` FROM cash_shifts WHERE status = 'OPEN' FOR UPDATE`, nil)
}

func (r *CashShiftRepo) getOne(query string, arg any) (*entity.CashShift, error) {
	var row pgx.Row
	if arg != nil {
		row = r.q.QueryRow(context.Background(), query, arg)
	} else {
		row = r.q.QueryRow(context.Background(), query)
	}
	var s entity.CashShift
	err := row.Scan(
		&s.ID, &s.OpenedBy, &s.OpenedAt, &s.ClosedAt, &s.StartAmount, &s.CountedAmount,
		&s.SystemAmount, &s.Variance, &s.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash shift: %w", err)
	}
	return &s, nil
}

// Update actualiza un turno (solo cambia al cerrar).
func (r *CashShiftRepo) Update(s *entity.CashShift) error {
	query := `
		UPDATE cash_shifts SET closed_at = $2, counted_amount = $3, system_amount = $4,
			variance = $5, status = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.ClosedAt, s.CountedAmount, s.SystemAmount, s.Variance, string(s.Status),
	)
	if err != nil {
		return fmt.Errorf("update cash shift: %w", err)
	}
	return nil
}

// List lista turnos ordenados por apertura descendente.
func (r *CashShiftRepo) List(limit, offset int) ([]*entity.CashShift, error) {
	query := `SELECT ` + shiftColumns + ` FROM cash_shifts ORDER BY opened_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cash shifts: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashShift
	for rows.Next() {
		var s entity.CashShift
		if err := rows.Scan(&s.ID, &s.OpenedBy, &s.OpenedAt, &s.ClosedAt, &s.StartAmount,
			&s.CountedAmount, &s.SystemAmount, &s.Variance, &s.Status); err != nil {
			return nil, fmt.Errorf("scan cash shift: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// CashTransactionRepo implementación del puerto CashTransactionRepository.
// El libro es solo de apéndice: no hay Update ni Delete.
type CashTransactionRepo struct {
	q Querier
}

// NewCashTransactionRepository construye el adaptador para movimientos de caja.
func NewCashTransactionRepository(q Querier) *CashTransactionRepo {
	return &CashTransactionRepo{q: q}
}

// Create persiste un movimiento.
func (r *CashTransactionRepo) Create(t *entity.CashTransaction) error {
	query := `
		INSERT INTO cash_transactions (id, shift_id, direction, amount, category, description,
			order_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.ShiftID, string(t.Direction), t.Amount, t.Category, t.Description,
		t.OrderID, t.CreatedBy, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cash transaction: %w", err)
	}
	return nil
}

// ListByShift lista los movimientos de un turno en orden cronológico.
func (r *CashTransactionRepo) ListByShift(shiftID string) ([]*entity.CashTransaction, error) {
	query := `
		SELECT id, shift_id, direction, amount, category, description, order_id, created_by, created_at
		FROM cash_transactions WHERE shift_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, shiftID)
	if err != nil {
		return nil, fmt.Errorf("list cash transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashTransaction
	for rows.Next() {
		var t entity.CashTransaction
		if err := rows.Scan(&t.ID, &t.ShiftID, &t.Direction, &t.Amount, &t.Category,
			&t.Description, &t.OrderID, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cash transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Sum devuelve los acumulados IN y OUT del turno.
func (r *CashTransactionRepo) Sum(shiftID string) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE direction = 'IN'), 0),
			COALESCE(SUM(amount) FILTER (WHERE direction = 'OUT'), 0)
		FROM cash_transactions WHERE shift_id = $1`
	var in, out decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, shiftID).Scan(&in, &out); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("sum cash transactions: %w", err)
	}
	return in, out, nil
}
