package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation detecta el código 23505 (unique_violation) para que los
// repos lo mapeen a domain.ErrDuplicate.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "23505")
}

// likeEscaper neutraliza los comodines de LIKE en términos que vienen del usuario.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike prepara un término de búsqueda para usarlo dentro de un patrón
// LIKE ... ESCAPE '\'.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
