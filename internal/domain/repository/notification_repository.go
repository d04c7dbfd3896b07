package repository

import "github.com/kioscosoft/distribuidora-api/internal/domain/entity"

// NotificationRepository puerto de persistencia para notificaciones.
type NotificationRepository interface {
	Create(n *entity.Notification) error
	ListByUser(userID string, onlyUnread bool, limit, offset int) ([]*entity.Notification, error)
	MarkRead(id, userID string) error
}
