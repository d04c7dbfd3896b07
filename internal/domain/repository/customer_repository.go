package repository

import "github.com/kioscosoft/distribuidora-api/internal/domain/entity"

// CustomerRepository puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByTaxID(taxID string) (*entity.Customer, error)
	Update(customer *entity.Customer) error
	List(limit, offset int) ([]*entity.Customer, error)
	Search(normalizedQuery string, limit int) ([]*entity.Customer, error)
	SoftDelete(id string) error
}
