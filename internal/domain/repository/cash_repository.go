package repository

import (
	"github.com/shopspring/decimal"

	"github.com/kioscosoft/distribuidora-api/internal/domain/entity"
)

// CashShiftRepository puerto de persistencia para turnos de caja.
// GetOpen devuelve el único turno OPEN o nil.
type CashShiftRepository interface {
	Create(shift *entity.CashShift) error
	GetByID(id string) (*entity.CashShift, error)
	GetOpen() (*entity.CashShift, error)
	GetOpenForUpdate() (*entity.CashShift, error)
	Update(shift *entity.CashShift) error
	List(limit, offset int) ([]*entity.CashShift, error)
}

// CashTransactionRepository libro de movimientos, solo de apéndice.
// Sum devuelve los acumulados IN y OUT del turno.
type CashTransactionRepository interface {
	Create(tx *entity.CashTransaction) error
	ListByShift(shiftID string) ([]*entity.CashTransaction, error)
	Sum(shiftID string) (in, out decimal.Decimal, err error)
}
