package audit_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kioscosoft/distribuidora-api/internal/application/audit"
	"github.com/kioscosoft/distribuidora-api/internal/domain/entity"
	"github.com/kioscosoft/distribuidora-api/pkg/logger"
)

type fakeLogRepo struct {
	entries []*entity.LogEntry
}

func (r *fakeLogRepo) Create(e *entity.LogEntry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *fakeLogRepo) List(string, int, int) ([]*entity.LogEntry, error) { return r.entries, nil }

type fakeNotifRepo struct {
	created []*entity.Notification
}

func (r *fakeNotifRepo) Create(n *entity.Notification) error {
	r.created = append(r.created, n)
	return nil
}

func (r *fakeNotifRepo) ListByUser(string, bool, int, int) ([]*entity.Notification, error) {
	return nil, nil
}

func (r *fakeNotifRepo) MarkRead(string, string) error { return nil }

type fakeUserRepo struct {
	admins []*entity.User
}

func (r *fakeUserRepo) Create(*entity.User) error                 { return nil }
func (r *fakeUserRepo) GetByID(string) (*entity.User, error)      { return nil, nil }
func (r *fakeUserRepo) GetByEmail(string) (*entity.User, error)   { return nil, nil }
func (r *fakeUserRepo) Update(*entity.User) error                 { return nil }
func (r *fakeUserRepo) ListAdmins() ([]*entity.User, error)       { return r.admins, nil }

func prefsTodas() entity.NotificationPrefs {
	return entity.NotificationPrefs{Orders: true, Payments: true, Deliveries: true, Cash: true, Stock: true}
}

func newRecorder(admins ...*entity.User) (*audit.Recorder, *fakeLogRepo, *fakeNotifRepo) {
	logRepo := &fakeLogRepo{}
	notifRepo := &fakeNotifRepo{}
	userRepo := &fakeUserRepo{admins: admins}
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	return audit.NewRecorder(logRepo, notifRepo, userRepo, log), logRepo, notifRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRecord_GuardaLaEntrada(t *testing.T) {
	rec, logRepo, _ := newRecorder()

	rec.Record(context.Background(), "vend-1", "ORDER_CREATED", "Pedido PED-1", entity.CategoryOrders)

	assert.Len(t, logRepo.entries, 1)
	assert.Equal(t, "ORDER_CREATED", logRepo.entries[0].Action)
	assert.Equal(t, entity.CategoryOrders, logRepo.entries[0].Category)
}

func TestNotifyAdmins_UnaPorAdmin(t *testing.T) {
	rec, _, notifRepo := newRecorder(
		&entity.User{ID: "adm-1", Role: entity.RoleAdmin, Active: true, Prefs: prefsTodas()},
		&entity.User{ID: "adm-2", Role: entity.RoleAdmin, Active: true, Prefs: prefsTodas()},
	)

	rec.NotifyAdmins(context.Background(), "Nuevo pedido", "", entity.CategoryOrders)

	assert.Len(t, notifRepo.created, 2)
}

func TestNotifyAdmins_RespetaPreferencias(t *testing.T) {
	sinStock := prefsTodas()
	sinStock.Stock = false
	rec, _, notifRepo := newRecorder(
		&entity.User{ID: "adm-1", Role: entity.RoleAdmin, Active: true, Prefs: prefsTodas()},
		&entity.User{ID: "adm-2", Role: entity.RoleAdmin, Active: true, Prefs: sinStock},
	)

	rec.NotifyAdmins(context.Background(), "Stock bajo: yerba", "", entity.CategoryStock)

	assert.Len(t, notifRepo.created, 1)
	assert.Equal(t, "adm-1", notifRepo.created[0].UserID)
}

func TestNotifyAdmins_CategoriaDesconocidaSeEntregaIgual(t *testing.T) {
	rec, _, notifRepo := newRecorder(
		&entity.User{ID: "adm-1", Role: entity.RoleAdmin, Active: true},
	)

	rec.NotifyAdmins(context.Background(), "Aviso", "", "otra-categoria")

	assert.Len(t, notifRepo.created, 1)
}
