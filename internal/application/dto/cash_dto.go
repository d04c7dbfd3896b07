package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenShiftRequest apertura de turno con el conteo inicial.
type OpenShiftRequest struct {
	StartAmount decimal.Decimal `json:"start_amount"`
}

// AddCashTransactionRequest movimiento de caja dentro del turno abierto.
type AddCashTransactionRequest struct {
	Direction   string          `json:"direction" validate:"required"` // IN | OUT
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	OrderID     *string         `json:"order_id"`
}

// CloseShiftRequest cierre de turno con el conteo final.
type CloseShiftRequest struct {
	CountedAmount decimal.Decimal `json:"counted_amount"`
}

// CashShiftResponse salida de un turno de caja.
type CashShiftResponse struct {
	ID            string          `json:"id"`
	OpenedBy      string          `json:"opened_by"`
	OpenedAt      time.Time       `json:"opened_at"`
	ClosedAt      *time.Time      `json:"closed_at,omitempty"`
	StartAmount   decimal.Decimal `json:"start_amount"`
	CountedAmount decimal.Decimal `json:"counted_amount"`
	SystemAmount  decimal.Decimal `json:"system_amount"`
	Variance      decimal.Decimal `json:"variance"`
	Status        string          `json:"status"`
}

// CashTransactionResponse salida de un movimiento de caja.
type CashTransactionResponse struct {
	ID          string          `json:"id"`
	ShiftID     string          `json:"shift_id"`
	Direction   string          `json:"direction"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	OrderID     *string         `json:"order_id,omitempty"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
}
