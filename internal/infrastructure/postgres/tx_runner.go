package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kioscosoft/distribuidora-api/internal/application/cash"
	"github.com/kioscosoft/distribuidora-api/internal/application/orders"
	"github.com/kioscosoft/distribuidora-api/internal/application/routes"
	"github.com/kioscosoft/distribuidora-api/internal/domain/repository"
)

// Ensure TxRunner implements the application tx ports.
var _ orders.TxRunner = (*TxRunner)(nil)
var _ routes.TxRunner = (*TxRunner)(nil)
var _ cash.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunOrder inicia una transacción con repos de pedidos y productos atados a
// la tx y hace Commit o Rollback.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewOrderRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(orderRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunRoute inicia una transacción con repos de rutas y pedidos.
func (r *TxRunner) RunRoute(ctx context.Context, fn func(
	routeRepo repository.RouteRepository,
	orderRepo repository.OrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	routeRepo := NewRouteRepository(tx)
	orderRepo := NewOrderRepository(tx)

	if err := fn(routeRepo, orderRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCash inicia una transacción con los repos de caja.
func (r *TxRunner) RunCash(ctx context.Context, fn func(
	shiftRepo repository.CashShiftRepository,
	txRepo repository.CashTransactionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	shiftRepo := NewCashShiftRepository(tx)
	txRepo := NewCashTransactionRepository(tx)

	if err := fn(shiftRepo, txRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
