package cash_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kioscosoft/distribuidora-api/internal/application/cash"
	"github.com/kioscosoft/distribuidora-api/internal/application/dto"
	"github.com/kioscosoft/distribuidora-api/internal/domain"
	"github.com/kioscosoft/distribuidora-api/internal/domain/entity"
	"github.com/kioscosoft/distribuidora-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeTrail struct {
	actions       []string
	notifications []string
}

func (t *fakeTrail) Record(_ context.Context, _, action, _, _ string) {
	t.actions = append(t.actions, action)
}

func (t *fakeTrail) NotifyAdmins(_ context.Context, title, _, _ string) {
	t.notifications = append(t.notifications, title)
}

type fakeShiftRepo struct {
	shifts map[string]*entity.CashShift
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{shifts: make(map[string]*entity.CashShift)}
}

func (r *fakeShiftRepo) Create(s *entity.CashShift) error {
	cp := *s
	r.shifts[s.ID] = &cp
	return nil
}

func (r *fakeShiftRepo) GetByID(id string) (*entity.CashShift, error) { return r.shifts[id], nil }

func (r *fakeShiftRepo) GetOpen() (*entity.CashShift, error) {
	for _, s := range r.shifts {
		if s.Status == entity.ShiftOpen {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeShiftRepo) GetOpenForUpdate() (*entity.CashShift, error) { return r.GetOpen() }

func (r *fakeShiftRepo) Update(s *entity.CashShift) error {
	cp := *s
	r.shifts[s.ID] = &cp
	return nil
}

func (r *fakeShiftRepo) List(limit, offset int) ([]*entity.CashShift, error) {
	out := make([]*entity.CashShift, 0, len(r.shifts))
	for _, s := range r.shifts {
		out = append(out, s)
	}
	return out, nil
}

type fakeCashTxRepo struct {
	txs []*entity.CashTransaction
}

func (r *fakeCashTxRepo) Create(tx *entity.CashTransaction) error {
	cp := *tx
	r.txs = append(r.txs, &cp)
	return nil
}

func (r *fakeCashTxRepo) ListByShift(shiftID string) ([]*entity.CashTransaction, error) {
	var out []*entity.CashTransaction
	for _, tx := range r.txs {
		if tx.ShiftID == shiftID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (r *fakeCashTxRepo) Sum(shiftID string) (decimal.Decimal, decimal.Decimal, error) {
	in, out := decimal.Zero, decimal.Zero
	for _, tx := range r.txs {
		if tx.ShiftID != shiftID {
			continue
		}
		if tx.Direction == entity.CashIn {
			in = in.Add(tx.Amount)
		} else {
			out = out.Add(tx.Amount)
		}
	}
	return in, out, nil
}

type fakeTxRunner struct {
	shiftRepo *fakeShiftRepo
	txRepo    *fakeCashTxRepo
}

func (tr *fakeTxRunner) RunCash(_ context.Context, fn func(
	shiftRepo repository.CashShiftRepository,
	txRepo repository.CashTransactionRepository,
) error) error {
	return fn(tr.shiftRepo, tr.txRepo)
}

type cashEnv struct {
	uc     *cash.UseCase
	shifts *fakeShiftRepo
	txs    *fakeCashTxRepo
	trail  *fakeTrail
}

func newCashEnv() *cashEnv {
	shiftRepo := newFakeShiftRepo()
	txRepo := &fakeCashTxRepo{}
	trail := &fakeTrail{}
	uc := cash.NewUseCase(&fakeTxRunner{shiftRepo: shiftRepo, txRepo: txRepo}, shiftRepo, txRepo, trail)
	return &cashEnv{uc: uc, shifts: shiftRepo, txs: txRepo, trail: trail}
}

func monto(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// ──────────────────────────────────────────────────────────────────────────────
// OpenShift
// ──────────────────────────────────────────────────────────────────────────────

func TestOpenShift_AbreConConteoInicial(t *testing.T) {
	env := newCashEnv()

	resp, err := env.uc.OpenShift(context.Background(), "caja-1", dto.OpenShiftRequest{
		StartAmount: monto(1000),
	})
	require.NoError(t, err)
	assert.Equal(t, "OPEN", resp.Status)
	assert.True(t, resp.StartAmount.Equal(monto(1000)))
	assert.Contains(t, env.trail.actions, "SHIFT_OPENED")
}

func TestOpenShift_SegundoTurno_Falla(t *testing.T) {
	env := newCashEnv()
	ctx := context.Background()

	_, err := env.uc.OpenShift(ctx, "caja-1", dto.OpenShiftRequest{StartAmount: monto(1000)})
	require.NoError(t, err)

	// El invariante es global: otro usuario tampoco puede abrir.
	_, err = env.uc.OpenShift(ctx, "caja-2", dto.OpenShiftRequest{StartAmount: monto(500)})
	assert.ErrorIs(t, err, domain.ErrShiftAlreadyOpen)
}

func TestOpenShift_MontoNegativo(t *testing.T) {
	env := newCashEnv()
	_, err := env.uc.OpenShift(context.Background(), "caja-1", dto.OpenShiftRequest{
		StartAmount: monto(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// AddTransaction
// ──────────────────────────────────────────────────────────────────────────────

func TestAddTransaction_SinTurnoAbierto(t *testing.T) {
	env := newCashEnv()
	_, err := env.uc.AddTransaction(context.Background(), "caja-1", dto.AddCashTransactionRequest{
		Direction: "IN", Amount: monto(100),
	})
	assert.ErrorIs(t, err, domain.ErrNoOpenShift)
}

func TestAddTransaction_ApendaAlTurnoAbierto(t *testing.T) {
	env := newCashEnv()
	ctx := context.Background()
	shift, err := env.uc.OpenShift(ctx, "caja-1", dto.OpenShiftRequest{StartAmount: monto(1000)})
	require.NoError(t, err)

	tx, err := env.uc.AddTransaction(ctx, "caja-1", dto.AddCashTransactionRequest{
		Direction: "IN", Amount: monto(250), Category: "venta",
	})
	require.NoError(t, err)
	assert.Equal(t, shift.ID, tx.ShiftID)
	assert.Equal(t, "IN", tx.Direction)
	assert.True(t, tx.Amount.Equal(monto(250)))
}

func TestAddTransaction_Validaciones(t *testing.T) {
	env := newCashEnv()
	ctx := context.Background()
	_, err := env.uc.OpenShift(ctx, "caja-1", dto.OpenShiftRequest{StartAmount: monto(1000)})
	require.NoError(t, err)

	_, err = env.uc.AddTransaction(ctx, "caja-1", dto.AddCashTransactionRequest{
		Direction: "TRANSFER", Amount: monto(100),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "dirección desconocida")

	_, err = env.uc.AddTransaction(ctx, "caja-1", dto.AddCashTransactionRequest{
		Direction: "OUT", Amount: monto(0),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el monto debe ser positivo")
}

// ──────────────────────────────────────────────────────────────────────────────
// CloseShift
// ──────────────────────────────────────────────────────────────────────────────

func TestCloseShift_CalculaSistemaYDiferencia(t *testing.T) {
	env := newCashEnv()
	ctx := context.Background()
	_, err := env.uc.OpenShift(ctx, "caja-1", dto.OpenShiftRequest{StartAmount: monto(1000)})
	require.NoError(t, err)

	for _, mv := range []dto.AddCashTransactionRequest{
		{Direction: "IN", Amount: monto(500), Category: "venta"},
		{Direction: "IN", Amount: monto(300), Category: "venta"},
		{Direction: "OUT", Amount: monto(200), Category: "proveedor"},
	} {
		_, err := env.uc.AddTransaction(ctx, "caja-1", mv)
		require.NoError(t, err)
	}

	// sistema = 1000 + 800 - 200 = 1600; contado 1550 => diferencia -50
	resp, err := env.uc.CloseShift(ctx, "caja-1", dto.CloseShiftRequest{CountedAmount: monto(1550)})
	require.NoError(t, err)

	assert.True(t, resp.SystemAmount.Equal(monto(1600)))
	assert.True(t, resp.Variance.Equal(monto(-50)))
	assert.Equal(t, "CLOSED", resp.Status)
	assert.NotNil(t, resp.ClosedAt)
	assert.True(t, len(env.trail.notifications) > 0, "la diferencia no nula avisa a los admins")
}

func TestCloseShift_SinDiferencia_NoNotifica(t *testing.T) {
	env := newCashEnv()
	ctx := context.Background()
	_, err := env.uc.OpenShift(ctx, "caja-1", dto.OpenShiftRequest{StartAmount: monto(1000)})
	require.NoError(t, err)

	resp, err := env.uc.CloseShift(ctx, "caja-1", dto.CloseShiftRequest{CountedAmount: monto(1000)})
	require.NoError(t, err)
	assert.True(t, resp.Variance.IsZero())
	assert.Empty(t, env.trail.notifications)
}

func TestCloseShift_SinTurnoAbierto(t *testing.T) {
	env := newCashEnv()
	_, err := env.uc.CloseShift(context.Background(), "caja-1", dto.CloseShiftRequest{
		CountedAmount: monto(100),
	})
	assert.ErrorIs(t, err, domain.ErrNoOpenShift)
}

func TestCloseShift_PermiteAbrirUnoNuevo(t *testing.T) {
	env := newCashEnv()
	ctx := context.Background()
	_, err := env.uc.OpenShift(ctx, "caja-1", dto.OpenShiftRequest{StartAmount: monto(1000)})
	require.NoError(t, err)
	_, err = env.uc.CloseShift(ctx, "caja-1", dto.CloseShiftRequest{CountedAmount: monto(1000)})
	require.NoError(t, err)

	_, err = env.uc.OpenShift(ctx, "caja-2", dto.OpenShiftRequest{StartAmount: monto(500)})
	assert.NoError(t, err, "cerrado el anterior, se puede abrir otro turno")
}

// ──────────────────────────────────────────────────────────────────────────────
// GetOpenShift
// ──────────────────────────────────────────────────────────────────────────────

func TestGetOpenShift_DevuelveTurnoYMovimientos(t *testing.T) {
	env := newCashEnv()
	ctx := context.Background()
	_, err := env.uc.OpenShift(ctx, "caja-1", dto.OpenShiftRequest{StartAmount: monto(1000)})
	require.NoError(t, err)
	_, err = env.uc.AddTransaction(ctx, "caja-1", dto.AddCashTransactionRequest{
		Direction: "IN", Amount: monto(100),
	})
	require.NoError(t, err)

	shift, txs, err := env.uc.GetOpenShift(ctx)
	require.NoError(t, err)
	assert.Equal(t, "OPEN", shift.Status)
	assert.Len(t, txs, 1)
}

func TestGetOpenShift_SinTurno(t *testing.T) {
	env := newCashEnv()
	_, _, err := env.uc.GetOpenShift(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoOpenShift)
}
