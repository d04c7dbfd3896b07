// Package catalog administra el catálogo de productos y la cartera de
// clientes. El stock NO se edita por acá salvo ajuste manual explícito: lo
// mueven la creación y cancelación de pedidos.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kioscosoft/distribuidora-api/internal/application/audit"
	"github.com/kioscosoft/distribuidora-api/internal/application/dto"
	"github.com/kioscosoft/distribuidora-api/internal/domain"
	"github.com/kioscosoft/distribuidora-api/internal/domain/entity"
	"github.com/kioscosoft/distribuidora-api/internal/domain/repository"
	"github.com/kioscosoft/distribuidora-api/pkg/logger"
)

// ProductUseCase CRUD de productos con cache de lectura.
type ProductUseCase struct {
	repo  repository.ProductRepository
	cache ProductCache
	trail audit.Trail
	log   *logger.Logger
}

// NewProductUseCase construye el caso de uso. cache puede ser nil (sin Redis).
func NewProductUseCase(repo repository.ProductRepository, cache ProductCache, trail audit.Trail, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, cache: cache, trail: trail, log: log}
}

// Create da de alta un producto. SKU duplicado retorna ErrDuplicate (lo
// detecta el constraint único de la DB, sin chequeo previo).
func (uc *ProductUseCase) Create(ctx context.Context, actorID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CurrentStock < 0 || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := &entity.Product{
		ID:             uuid.New().String(),
		SKU:            in.SKU,
		Name:           in.Name,
		Category:       in.Category,
		TrackStock:     in.TrackStock,
		CurrentStock:   in.CurrentStock,
		MinStock:       in.MinStock,
		PriceMayorista: in.PriceMayorista,
		PriceMinorista: in.PriceMinorista,
		PriceFinal:     in.PriceFinal,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	uc.trail.Record(ctx, actorID, "PRODUCT_CREATED", fmt.Sprintf("Producto %s (%s)", p.Name, p.SKU), entity.CategoryStock)
	return toProductResponse(p), nil
}

// GetByID lee un producto, primero del cache y si no de la DB.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	if uc.cache != nil {
		if p, ok, err := uc.cache.Get(ctx, id); err != nil {
			uc.log.Warn().Err(err).Msg("cache de productos: fallo de lectura")
		} else if ok {
			return toProductResponse(p), nil
		}
	}
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, p); err != nil {
			uc.log.Warn().Err(err).Msg("cache de productos: fallo de escritura")
		}
	}
	return toProductResponse(p), nil
}

// Update modifica campos del producto e invalida el cache. El ajuste manual
// de stock viaja aparte (UpdateStock): el UPDATE general no escribe
// current_stock.
func (uc *ProductUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthorized
	}
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.TrackStock != nil {
		p.TrackStock = *in.TrackStock
	}
	if in.CurrentStock != nil {
		if *in.CurrentStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		p.CurrentStock = *in.CurrentStock
	}
	if in.MinStock != nil {
		p.MinStock = *in.MinStock
	}
	if in.PriceMayorista != nil {
		p.PriceMayorista = *in.PriceMayorista
	}
	if in.PriceMinorista != nil {
		p.PriceMinorista = *in.PriceMinorista
	}
	if in.PriceFinal != nil {
		p.PriceFinal = *in.PriceFinal
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	if in.CurrentStock != nil {
		if err := uc.repo.UpdateStock(id, *in.CurrentStock); err != nil {
			return nil, err
		}
	}
	uc.invalidate(ctx, id)
	uc.trail.Record(ctx, actorID, "PRODUCT_UPDATED", fmt.Sprintf("Producto %s actualizado", p.SKU), entity.CategoryStock)
	return toProductResponse(p), nil
}

// Delete baja lógica del producto (los pedidos históricos lo siguen
// referenciando).
func (uc *ProductUseCase) Delete(ctx context.Context, actorID, id string) error {
	if actorID == "" {
		return domain.ErrUnauthorized
	}
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil || p.DeletedAt != nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.SoftDelete(id); err != nil {
		return err
	}
	uc.invalidate(ctx, id)
	uc.trail.Record(ctx, actorID, "PRODUCT_DELETED", fmt.Sprintf("Producto %s dado de baja", p.SKU), entity.CategoryStock)
	return nil
}

// List lista productos paginados.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, p := range list {
		out.Items = append(out.Items, *toProductResponse(p))
	}
	return out, nil
}

func (uc *ProductUseCase) invalidate(ctx context.Context, id string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, id); err != nil {
		uc.log.Warn().Err(err).Str("product_id", id).Msg("cache de productos: fallo de invalidación")
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:             p.ID,
		SKU:            p.SKU,
		Name:           p.Name,
		Category:       p.Category,
		TrackStock:     p.TrackStock,
		CurrentStock:   p.CurrentStock,
		MinStock:       p.MinStock,
		PriceMayorista: p.PriceMayorista,
		PriceMinorista: p.PriceMinorista,
		PriceFinal:     p.PriceFinal,
		Active:         p.Active,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
