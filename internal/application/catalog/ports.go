package catalog

import (
	"context"

	"github.com/kioscosoft/distribuidora-api/internal/domain/entity"
)

// ProductCache cache de lectura de productos (Redis en producción). Un fallo
// del cache nunca hace fallar la operación: se cae a la DB.
type ProductCache interface {
	Get(ctx context.Context, id string) (*entity.Product, bool, error)
	Set(ctx context.Context, product *entity.Product) error
	Invalidate(ctx context.Context, id string) error
}
