package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShiftStatus estado de un turno de caja.
type ShiftStatus string

const (
	ShiftOpen   ShiftStatus = "OPEN"
	ShiftClosed ShiftStatus = "CLOSED"
)

// CashDirection sentido de un movimiento de caja.
type CashDirection string

const (
	CashIn  CashDirection = "IN"
	CashOut CashDirection = "OUT"
)

// CashShift turno de caja delimitado por apertura y cierre. Invariante global:
// a lo sumo un turno OPEN en todo el sistema (índice parcial en la DB).
// Al cerrar: SystemAmount = StartAmount + ΣIN - ΣOUT y
// Variance = CountedAmount - SystemAmount. Un turno cerrado no se reabre.
type CashShift struct {
	ID            string
	OpenedBy      string
	OpenedAt      time.Time
	ClosedAt      *time.Time
	StartAmount   decimal.Decimal
	CountedAmount decimal.Decimal
	SystemAmount  decimal.Decimal
	Variance      decimal.Decimal
	Status        ShiftStatus
}

// CashTransaction movimiento firmado dentro de un turno. El libro es solo
// de apéndice: nunca se modifica ni se borra un movimiento pasado.
type CashTransaction struct {
	ID          string
	ShiftID     string
	Direction   CashDirection
	Amount      decimal.Decimal // siempre > 0, el signo lo da Direction
	Category    string
	Description string
	OrderID     *string
	CreatedBy   string
	CreatedAt   time.Time
}
