package repository

import "github.com/kioscosoft/distribuidora-api/internal/domain/entity"

// UserRepository puerto de persistencia para User.
// ListAdmins devuelve los admins activos con sus preferencias de notificación.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	ListAdmins() ([]*entity.User, error)
}
