// Package notifications expone la bandeja de notificaciones por usuario.
package notifications

import (
	"context"

	"github.com/kioscosoft/distribuidora-api/internal/application/dto"
	"github.com/kioscosoft/distribuidora-api/internal/domain"
	"github.com/kioscosoft/distribuidora-api/internal/domain/repository"
)

// UseCase lectura y marcado de notificaciones.
type UseCase struct {
	repo repository.NotificationRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.NotificationRepository) *UseCase {
	return &UseCase{repo: repo}
}

// List lista las notificaciones del usuario, opcionalmente solo las no leídas.
func (uc *UseCase) List(ctx context.Context, userID string, onlyUnread bool, limit, offset int) ([]dto.NotificationResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.ListByUser(userID, onlyUnread, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, dto.NotificationResponse{
			ID:        n.ID,
			Title:     n.Title,
			Body:      n.Body,
			Category:  n.Category,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return out, nil
}

// MarkRead marca una notificación propia como leída.
func (uc *UseCase) MarkRead(ctx context.Context, userID, id string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}
	return uc.repo.MarkRead(id, userID)
}
