// Package audit implementa el registro de auditoría y el fan-out de
// notificaciones a admins. Todo es best-effort: un fallo acá se loguea al
// canal de diagnóstico y nunca hace fallar la operación primaria.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kioscosoft/distribuidora-api/internal/domain/entity"
	"github.com/kioscosoft/distribuidora-api/internal/domain/repository"
	"github.com/kioscosoft/distribuidora-api/pkg/logger"
)

// Trail es lo que los casos de uso necesitan del subsistema de auditoría.
type Trail interface {
	Record(ctx context.Context, userID, action, details, category string)
	NotifyAdmins(ctx context.Context, title, body, category string)
}

// Recorder implementación de Trail sobre los repositorios de log,
// notificaciones y usuarios.
type Recorder struct {
	logRepo   repository.LogRepository
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	log       *logger.Logger
}

var _ Trail = (*Recorder)(nil)

// NewRecorder construye el recorder.
func NewRecorder(
	logRepo repository.LogRepository,
	notifRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	log *logger.Logger,
) *Recorder {
	return &Recorder{logRepo: logRepo, notifRepo: notifRepo, userRepo: userRepo, log: log}
}

// Record agrega una entrada de auditoría. Los errores se tragan a propósito.
func (r *Recorder) Record(_ context.Context, userID, action, details, category string) {
	entry := &entity.LogEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		Category:  category,
		CreatedAt: time.Now(),
	}
	if err := r.logRepo.Create(entry); err != nil {
		r.log.Warn().Err(err).Str("action", action).Msg("auditoría: no se pudo registrar la entrada")
	}
}

// NotifyAdmins inserta una notificación por cada admin activo que tenga la
// categoría habilitada en sus preferencias.
func (r *Recorder) NotifyAdmins(_ context.Context, title, body, category string) {
	admins, err := r.userRepo.ListAdmins()
	if err != nil {
		r.log.Warn().Err(err).Msg("notificaciones: no se pudieron listar admins")
		return
	}
	now := time.Now()
	for _, admin := range admins {
		if !admin.Prefs.Allows(category) {
			continue
		}
		n := &entity.Notification{
			ID:        uuid.New().String(),
			UserID:    admin.ID,
			Title:     title,
			Body:      body,
			Category:  category,
			CreatedAt: now,
		}
		if err := r.notifRepo.Create(n); err != nil {
			r.log.Warn().Err(err).Str("user_id", admin.ID).Msg("notificaciones: no se pudo insertar")
		}
	}
}
