package memory

import (
	"context"
	"errors"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
)

var (
	_ ports.ProductRepository  = (*ProductRepository)(nil)
	_ ports.CategoryRepository = (*CategoryRepository)(nil)
)

// ProductRepository is an in-memory product persistence adapter. Records are
// listed in insertion order.
type ProductRepository struct {
	mu       sync.RWMutex
	products *orderedmap.OrderedMap[int64, domain.Product]
	nextID   int64
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: orderedmap.New[int64, domain.Product]()}
}

func (r *ProductRepository) FindAll(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0, r.products.Len())
	for pair := r.products.Oldest(); pair != nil; pair = pair.Next() {
		clone := pair.Value
		list = append(list, &clone)
	}
	return list, nil
}

func (r *ProductRepository) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products.Get(id)
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &product, nil
}

func (r *ProductRepository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	r.products.Set(clone.ID, clone)
	return &clone, nil
}

func (r *ProductRepository) Delete(_ context.Context, product *domain.Product) error {
	if product == nil {
		return errors.New("product is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products.Delete(product.ID); !ok {
		return ports.ErrNotFound
	}
	return nil
}

// Reset drops every stored product.
func (r *ProductRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = orderedmap.New[int64, domain.Product]()
	r.nextID = 0
}

// CategoryRepository is an in-memory category persistence adapter.
type CategoryRepository struct {
	mu         sync.RWMutex
	categories *orderedmap.OrderedMap[int64, domain.Category]
	nextID     int64
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: orderedmap.New[int64, domain.Category]()}
}

func (r *CategoryRepository) FindAll(_ context.Context) ([]*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Category, 0, r.categories.Len())
	for pair := r.categories.Oldest(); pair != nil; pair = pair.Next() {
		clone := pair.Value
		list = append(list, &clone)
	}
	return list, nil
}

func (r *CategoryRepository) FindByID(_ context.Context, id int64) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	category, ok := r.categories.Get(id)
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &category, nil
}

func (r *CategoryRepository) Save(_ context.Context, category *domain.Category) (*domain.Category, error) {
	if category == nil {
		return nil, errors.New("category is nil")
	}
	clone := *category
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	r.categories.Set(clone.ID, clone)
	return &clone, nil
}

func (r *CategoryRepository) Delete(_ context.Context, category *domain.Category) error {
	if category == nil {
		return errors.New("category is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories.Delete(category.ID); !ok {
		return ports.ErrNotFound
	}
	return nil
}

// Reset drops every stored category.
func (r *CategoryRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories = orderedmap.New[int64, domain.Category]()
	r.nextID = 0
}
