// Package cash implementa el turno de caja: libro de movimientos solo de
// apéndice entre apertura y cierre, con arqueo al cerrar.
package cash

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kioscosoft/distribuidora-api/internal/application/audit"
	"github.com/kioscosoft/distribuidora-api/internal/application/dto"
	"github.com/kioscosoft/distribuidora-api/internal/domain"
	"github.com/kioscosoft/distribuidora-api/internal/domain/entity"
	"github.com/kioscosoft/distribuidora-api/internal/domain/repository"
)

// UseCase operaciones del turno de caja.
type UseCase struct {
	txRunner  TxRunner
	shiftRepo repository.CashShiftRepository
	cashRepo  repository.CashTransactionRepository
	trail     audit.Trail
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	shiftRepo repository.CashShiftRepository,
	cashRepo repository.CashTransactionRepository,
	trail audit.Trail,
) *UseCase {
	return &UseCase{txRunner: txRunner, shiftRepo: shiftRepo, cashRepo: cashRepo, trail: trail}
}

// OpenShift abre un turno con el conteo inicial. Falla con
// ErrShiftAlreadyOpen si ya hay un turno OPEN en el sistema (el invariante es
// global, no por usuario; el índice parcial de la DB lo respalda ante
// aperturas concurrentes).
func (uc *UseCase) OpenShift(ctx context.Context, actorID string, in dto.OpenShiftRequest) (*dto.CashShiftResponse, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.StartAmount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	shift := &entity.CashShift{
		ID:          uuid.New().String(),
		OpenedBy:    actorID,
		OpenedAt:    time.Now(),
		StartAmount: in.StartAmount,
		Status:      entity.ShiftOpen,
	}
	err := uc.txRunner.RunCash(ctx, func(
		shiftRepo repository.CashShiftRepository,
		_ repository.CashTransactionRepository,
	) error {
		open, err := shiftRepo.GetOpenForUpdate()
		if err != nil {
			return err
		}
		if open != nil {
			return domain.ErrShiftAlreadyOpen
		}
		return shiftRepo.Create(shift)
	})
	if err != nil {
		return nil, err
	}

	uc.trail.Record(ctx, actorID,
		"SHIFT_OPENED",
		fmt.Sprintf("Turno abierto con $%s", in.StartAmount.StringFixed(2)),
		entity.CategoryCash,
	)
	return toShiftResponse(shift), nil
}

// AddTransaction apenda un movimiento firmado al turno abierto. Sin turno
// abierto falla con ErrNoOpenShift. Nunca se modifica un movimiento pasado.
func (uc *UseCase) AddTransaction(ctx context.Context, actorID string, in dto.AddCashTransactionRequest) (*dto.CashTransactionResponse, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthorized
	}
	direction := entity.CashDirection(in.Direction)
	if direction != entity.CashIn && direction != entity.CashOut {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var tx *entity.CashTransaction
	err := uc.txRunner.RunCash(ctx, func(
		shiftRepo repository.CashShiftRepository,
		txRepo repository.CashTransactionRepository,
	) error {
		open, err := shiftRepo.GetOpenForUpdate()
		if err != nil {
			return err
		}
		if open == nil {
			return domain.ErrNoOpenShift
		}
		tx = &entity.CashTransaction{
			ID:          uuid.New().String(),
			ShiftID:     open.ID,
			Direction:   direction,
			Amount:      in.Amount,
			Category:    in.Category,
			Description: in.Description,
			OrderID:     in.OrderID,
			CreatedBy:   actorID,
			CreatedAt:   time.Now(),
		}
		return txRepo.Create(tx)
	})
	if err != nil {
		return nil, err
	}

	uc.trail.Record(ctx, actorID,
		"CASH_MOVEMENT",
		fmt.Sprintf("%s $%s (%s)", direction, in.Amount.StringFixed(2), in.Category),
		entity.CategoryCash,
	)
	return toTransactionResponse(tx), nil
}

// CloseShift cierra el turno abierto: calcula el monto de sistema
// (inicial + ΣIN - ΣOUT), la diferencia contra lo contado y deja el turno
// CLOSED. Un turno cerrado no se reabre.
func (uc *UseCase) CloseShift(ctx context.Context, actorID string, in dto.CloseShiftRequest) (*dto.CashShiftResponse, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthorized
	}

	var shift *entity.CashShift
	err := uc.txRunner.RunCash(ctx, func(
		shiftRepo repository.CashShiftRepository,
		txRepo repository.CashTransactionRepository,
	) error {
		open, err := shiftRepo.GetOpenForUpdate()
		if err != nil {
			return err
		}
		if open == nil {
			return domain.ErrNoOpenShift
		}
		totalIn, totalOut, err := txRepo.Sum(open.ID)
		if err != nil {
			return err
		}
		now := time.Now()
		open.SystemAmount = open.StartAmount.Add(totalIn).Sub(totalOut)
		open.CountedAmount = in.CountedAmount
		open.Variance = in.CountedAmount.Sub(open.SystemAmount)
		open.Status = entity.ShiftClosed
		open.ClosedAt = &now
		shift = open
		return shiftRepo.Update(open)
	})
	if err != nil {
		return nil, err
	}

	uc.trail.Record(ctx, actorID,
		"SHIFT_CLOSED",
		fmt.Sprintf("Turno cerrado: sistema $%s, contado $%s, diferencia $%s",
			shift.SystemAmount.StringFixed(2), shift.CountedAmount.StringFixed(2), shift.Variance.StringFixed(2)),
		entity.CategoryCash,
	)
	if !shift.Variance.IsZero() {
		uc.trail.NotifyAdmins(ctx,
			"Diferencia de caja",
			fmt.Sprintf("El arqueo cerró con una diferencia de $%s", shift.Variance.StringFixed(2)),
			entity.CategoryCash,
		)
	}
	return toShiftResponse(shift), nil
}

// GetOpenShift devuelve el turno abierto con sus movimientos, o ErrNoOpenShift.
func (uc *UseCase) GetOpenShift(ctx context.Context) (*dto.CashShiftResponse, []dto.CashTransactionResponse, error) {
	open, err := uc.shiftRepo.GetOpen()
	if err != nil {
		return nil, nil, err
	}
	if open == nil {
		return nil, nil, domain.ErrNoOpenShift
	}
	txs, err := uc.cashRepo.ListByShift(open.ID)
	if err != nil {
		return nil, nil, err
	}
	out := make([]dto.CashTransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, *toTransactionResponse(tx))
	}
	return toShiftResponse(open), out, nil
}

// ListShifts lista turnos históricos paginados.
func (uc *UseCase) ListShifts(ctx context.Context, limit, offset int) ([]dto.CashShiftResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.shiftRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CashShiftResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toShiftResponse(s))
	}
	return out, nil
}

func toShiftResponse(s *entity.CashShift) *dto.CashShiftResponse {
	return &dto.CashShiftResponse{
		ID:            s.ID,
		OpenedBy:      s.OpenedBy,
		OpenedAt:      s.OpenedAt,
		ClosedAt:      s.ClosedAt,
		StartAmount:   s.StartAmount,
		CountedAmount: s.CountedAmount,
		SystemAmount:  s.SystemAmount,
		Variance:      s.Variance,
		Status:        string(s.Status),
	}
}

func toTransactionResponse(tx *entity.CashTransaction) *dto.CashTransactionResponse {
	return &dto.CashTransactionResponse{
		ID:          tx.ID,
		ShiftID:     tx.ShiftID,
		Direction:   string(tx.Direction),
		Amount:      tx.Amount,
		Category:    tx.Category,
		Description: tx.Description,
		OrderID:     tx.OrderID,
		CreatedBy:   tx.CreatedBy,
		CreatedAt:   tx.CreatedAt,
	}
}
