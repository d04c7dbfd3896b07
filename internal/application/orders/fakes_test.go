package orders_test

import (
	"context"
	"strings"

	"github.com/kioscosoft/distribuidora-api/internal/domain/entity"
	"github.com/kioscosoft/distribuidora-api/internal/domain/repository"
)

// Fakes en memoria para ejercitar los casos de uso sin base de datos. El
// txRunner falso imita el rollback real: saca una foto de los repos antes de
// correr fn y la restaura si fn falla.

// ──────────────────────────────────────────────────────────────────────────────
// Auditoría
// ──────────────────────────────────────────────────────────────────────────────

type fakeTrail struct {
	actions       []string
	notifications []string
}

func (t *fakeTrail) Record(_ context.Context, _, action, _, _ string) {
	t.actions = append(t.actions, action)
}

func (t *fakeTrail) NotifyAdmins(_ context.Context, title, _, _ string) {
	t.notifications = append(t.notifications, title)
}

func (t *fakeTrail) hasNotification(prefix string) bool {
	for _, n := range t.notifications {
		if strings.HasPrefix(n, prefix) {
			return true
		}
	}
	return false
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product, len(products))}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) snapshot() map[string]*entity.Product {
	snap := make(map[string]*entity.Product, len(r.products))
	for id, p := range r.products {
		cp := *p
		snap[id] = &cp
	}
	return snap
}

func (r *fakeProductRepo) restore(snap map[string]*entity.Product) {
	r.products = snap
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateStock(productID string, currentStock int64) error {
	if p, ok := r.products[productID]; ok {
		p.CurrentStock = currentStock
	}
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) SoftDelete(id string) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) stock(id string) int64 {
	return r.products[id].CurrentStock
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	orders map[string]*entity.Order
	items  map[string][]*entity.OrderItem
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: make(map[string]*entity.Order),
		items:  make(map[string][]*entity.OrderItem),
	}
}

type orderSnapshot struct {
	orders map[string]*entity.Order
	items  map[string][]*entity.OrderItem
}

func (r *fakeOrderRepo) snapshot() orderSnapshot {
	snap := orderSnapshot{
		orders: make(map[string]*entity.Order, len(r.orders)),
		items:  make(map[string][]*entity.OrderItem, len(r.items)),
	}
	for id, o := range r.orders {
		cp := *o
		snap.orders[id] = &cp
	}
	for id, its := range r.items {
		cps := make([]*entity.OrderItem, len(its))
		for i, it := range its {
			cp := *it
			cps[i] = &cp
		}
		snap.items[id] = cps
	}
	return snap
}

func (r *fakeOrderRepo) restore(snap orderSnapshot) {
	r.orders = snap.orders
	r.items = snap.items
}

func (r *fakeOrderRepo) Create(o *entity.Order) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) CreateItem(it *entity.OrderItem) error {
	cp := *it
	r.items[it.OrderID] = append(r.items[it.OrderID], &cp)
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	return r.orders[id], nil
}

func (r *fakeOrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	return r.orders[id], nil
}

func (r *fakeOrderRepo) GetItems(orderID string) ([]*entity.OrderItem, error) {
	return r.items[orderID], nil
}

func (r *fakeOrderRepo) Update(o *entity.Order) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) ListByRoute(routeID string) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.orders {
		if o.RouteID != nil && *o.RouteID == routeID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) List(f repository.OrderFilter) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.orders {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.CustomerID != "" && o.CustomerID != f.CustomerID {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes
// ──────────────────────────────────────────────────────────────────────────────

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func newFakeCustomerRepo(customers ...*entity.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{customers: make(map[string]*entity.Customer, len(customers))}
	for _, c := range customers {
		cp := *c
		r.customers[c.ID] = &cp
	}
	return r
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.customers[id], nil
}

func (r *fakeCustomerRepo) GetByTaxID(taxID string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.TaxID == taxID {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) Update(c *entity.Customer) error {
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	out := make([]*entity.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCustomerRepo) Search(normalizedQuery string, limit int) ([]*entity.Customer, error) {
	return nil, nil
}

func (r *fakeCustomerRepo) SoftDelete(id string) error {
	delete(r.customers, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Transacciones
// ──────────────────────────────────────────────────────────────────────────────

type fakeTxRunner struct {
	orderRepo   *fakeOrderRepo
	productRepo *fakeProductRepo
}

func (tr *fakeTxRunner) RunOrder(_ context.Context, fn func(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
) error) error {
	ordersSnap := tr.orderRepo.snapshot()
	productsSnap := tr.productRepo.snapshot()
	if err := fn(tr.orderRepo, tr.productRepo); err != nil {
		tr.orderRepo.restore(ordersSnap)
		tr.productRepo.restore(productsSnap)
		return err
	}
	return nil
}
