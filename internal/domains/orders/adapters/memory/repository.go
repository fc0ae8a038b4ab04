package memory

import (
	"context"
	"errors"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
)

var (
	_ ports.OrderRepository = (*OrderRepository)(nil)
	_ ports.CartRepository  = (*CartRepository)(nil)
)

// table keeps values of one entity type in insertion order under a lock.
type table[T any] struct {
	mu     sync.RWMutex
	rows   *orderedmap.OrderedMap[int64, T]
	nextID int64
	id     func(*T) *int64
}

func newTable[T any](id func(*T) *int64) *table[T] {
	return &table[T]{rows: orderedmap.New[int64, T](), id: id}
}

func (t *table[T]) list() []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*T, 0, t.rows.Len())
	for pair := t.rows.Oldest(); pair != nil; pair = pair.Next() {
		clone := pair.Value
		out = append(out, &clone)
	}
	return out
}

func (t *table[T]) get(id int64) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows.Get(id)
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &row, nil
}

func (t *table[T]) put(row T) *T {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.id(&row)
	if *id == 0 {
		t.nextID++
		*id = t.nextID
	} else if *id > t.nextID {
		t.nextID = *id
	}
	t.rows.Set(*id, row)
	return &row
}

func (t *table[T]) remove(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows.Delete(id); !ok {
		return ports.ErrNotFound
	}
	return nil
}

func (t *table[T]) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = orderedmap.New[int64, T]()
	t.nextID = 0
}

// OrderRepository is an in-memory order persistence adapter.
type OrderRepository struct {
	rows *table[domain.Order]
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{rows: newTable(func(o *domain.Order) *int64 { return &o.ID })}
}

func (r *OrderRepository) FindAll(_ context.Context) ([]*domain.Order, error) {
	return r.rows.list(), nil
}

func (r *OrderRepository) FindByID(_ context.Context, id int64) (*domain.Order, error) {
	return r.rows.get(id)
}

func (r *OrderRepository) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	return r.rows.put(*order), nil
}

func (r *OrderRepository) Delete(_ context.Context, order *domain.Order) error {
	if order == nil {
		return errors.New("order is nil")
	}
	return r.rows.remove(order.ID)
}

func (r *OrderRepository) Reset() { r.rows.reset() }

// CartRepository is an in-memory cart persistence adapter.
type CartRepository struct {
	rows *table[domain.Cart]
}

func NewCartRepository() *CartRepository {
	return &CartRepository{rows: newTable(func(c *domain.Cart) *int64 { return &c.ID })}
}

func (r *CartRepository) FindAll(_ context.Context) ([]*domain.Cart, error) {
	return r.rows.list(), nil
}

func (r *CartRepository) FindByID(_ context.Context, id int64) (*domain.Cart, error) {
	return r.rows.get(id)
}

func (r *CartRepository) Save(_ context.Context, cart *domain.Cart) (*domain.Cart, error) {
	if cart == nil {
		return nil, errors.New("cart is nil")
	}
	return r.rows.put(*cart), nil
}

func (r *CartRepository) Delete(_ context.Context, cart *domain.Cart) error {
	if cart == nil {
		return errors.New("cart is nil")
	}
	return r.rows.remove(cart.ID)
}

func (r *CartRepository) Reset() { r.rows.reset() }
