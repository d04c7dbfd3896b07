package entity

import "time"

// Notification mensaje por destinatario con marca de leído. El filtrado por
// preferencias del usuario se hace al momento de enviar, no al leer.
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Body      string
	Category  string
	Read      bool
	CreatedAt time.Time
}
