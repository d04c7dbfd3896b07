package repository

import "github.com/kioscosoft/distribuidora-api/internal/domain/entity"

// LogRepository puerto del registro de auditoría (solo inserción y lectura).
type LogRepository interface {
	Create(entry *entity.LogEntry) error
	List(category string, limit, offset int) ([]*entity.LogEntry, error)
}
