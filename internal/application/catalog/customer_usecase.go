package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/kioscosoft/distribuidora-api/internal/application/audit"
	"github.com/kioscosoft/distribuidora-api/internal/application/dto"
	"github.com/kioscosoft/distribuidora-api/internal/domain"
	"github.com/kioscosoft/distribuidora-api/internal/domain/entity"
	"github.com/kioscosoft/distribuidora-api/internal/domain/repository"
)

// CustomerUseCase CRUD de clientes.
type CustomerUseCase struct {
	repo  repository.CustomerRepository
	trail audit.Trail
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, trail audit.Trail) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, trail: trail}
}

// Create da de alta un cliente. CUIT duplicado retorna ErrDuplicate.
func (uc *CustomerUseCase) Create(ctx context.Context, actorID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.Name == "" || in.TaxID == "" {
		return nil, domain.ErrInvalidInput
	}
	tier := entity.PriceTier(in.Tier)
	if in.Tier == "" {
		tier = entity.TierFinal
	}
	if !entity.ValidTier(tier) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TaxID:     in.TaxID,
		Phone:     in.Phone,
		Address:   in.Address,
		Tier:      tier,
		CreatedBy: actorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(c); err != nil {
		return nil, err
	}
	uc.trail.Record(ctx, actorID, "CUSTOMER_CREATED", fmt.Sprintf("Cliente %s (%s)", c.Name, c.TaxID), entity.CategoryOrders)
	return toCustomerResponse(c), nil
}

// GetByID lee un cliente por ID.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(c), nil
}

// Update modifica campos del cliente. El CUIT no se edita.
func (uc *CustomerUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthorized
	}
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.Address != nil {
		c.Address = *in.Address
	}
	if in.Tier != nil {
		tier := entity.PriceTier(*in.Tier)
		if !entity.ValidTier(tier) {
			return nil, domain.ErrInvalidInput
		}
		c.Tier = tier
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(c); err != nil {
		return nil, err
	}
	uc.trail.Record(ctx, actorID, "CUSTOMER_UPDATED", fmt.Sprintf("Cliente %s actualizado", c.Name), entity.CategoryOrders)
	return toCustomerResponse(c), nil
}

// Delete baja lógica del cliente.
func (uc *CustomerUseCase) Delete(ctx context.Context, actorID, id string) error {
	if actorID == "" {
		return domain.ErrUnauthorized
	}
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if c == nil || c.DeletedAt != nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.SoftDelete(id); err != nil {
		return err
	}
	uc.trail.Record(ctx, actorID, "CUSTOMER_DELETED", fmt.Sprintf("Cliente %s dado de baja", c.Name), entity.CategoryOrders)
	return nil
}

// List lista clientes paginados.
func (uc *CustomerUseCase) List(ctx context.Context, limit, offset int) (*dto.CustomerListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.CustomerListResponse{
		Items: make([]dto.CustomerResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, c := range list {
		out.Items = append(out.Items, *toCustomerResponse(c))
	}
	return out, nil
}

// Search busca por nombre sin distinguir mayúsculas ni tildes
// ("gomez" encuentra "Gómez").
func (uc *CustomerUseCase) Search(ctx context.Context, query string, limit int) (*dto.CustomerListResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 20
	}
	list, err := uc.repo.Search(NormalizeText(query), limit)
	if err != nil {
		return nil, err
	}
	out := &dto.CustomerListResponse{
		Items: make([]dto.CustomerResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: limit},
	}
	for _, c := range list {
		out.Items = append(out.Items, *toCustomerResponse(c))
	}
	return out, nil
}

// NormalizeText pasa a minúsculas y quita marcas diacríticas (NFD + descarte
// de combining marks). Se usa para la búsqueda de clientes.
func NormalizeText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Phone:     c.Phone,
		Address:   c.Address,
		Tier:      string(c.Tier),
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
