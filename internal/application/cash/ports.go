package cash

import (
	"context"

	"github.com/kioscosoft/distribuidora-api/internal/domain/repository"
)

// TxRunner ejecuta una función con los repos de caja en una misma
// transacción. Abrir y cerrar turno bloquean la fila del turno abierto para
// que dos cajas no puedan abrirse o cerrarse a la vez.
type TxRunner interface {
	RunCash(ctx context.Context, fn func(
		shiftRepo repository.CashShiftRepository,
		txRepo repository.CashTransactionRepository,
	) error) error
}
