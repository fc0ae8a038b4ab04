package application

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/adapters/memory"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-commerce-api/internal/shared/domainerr"
)

// scriptedProductRepo returns a fixed listing and records delete calls.
type scriptedProductRepo struct {
	listing []*domain.Product
	saveErr error
	deleted []int64
}

func (f *scriptedProductRepo) FindAll(_ context.Context) ([]*domain.Product, error) {
	return f.listing, nil
}

func (f *scriptedProductRepo) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	for _, p := range f.listing {
		if p.ID == id {
			clone := *p
			return &clone, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (f *scriptedProductRepo) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	clone := *product
	return &clone, nil
}

func (f *scriptedProductRepo) Delete(_ context.Context, product *domain.Product) error {
	f.deleted = append(f.deleted, product.ID)
	return nil
}

func newCatalog(t *testing.T) (*ProductService, *catalogmemory.CategoryRepository) {
	t.Helper()
	categories := catalogmemory.NewCategoryRepository()
	_, err := categories.Save(context.Background(), &domain.Category{Title: "Electronics", ImageURL: "http://example.com/electronics.png"})
	require.NoError(t, err)
	return NewProductService(catalogmemory.NewProductRepository(), categories), categories
}

func laptopHP() types.ProductDTO {
	return types.ProductDTO{
		ProductTitle: "Laptop HP",
		ImageURL:     "http://example.com/laptop-hp.jpg",
		SKU:          "LAPTOP-001",
		PriceUnit:    decimal.RequireFromString("899.99"),
		Quantity:     10,
		Category:     &types.CategoryDTO{CategoryID: 1},
	}
}

func TestProductService_SaveThenFindByID(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	saved, err := svc.Save(ctx, laptopHP())
	require.NoError(t, err)
	assert.NotZero(t, saved.ProductID)
	assert.Equal(t, "Laptop HP", saved.ProductTitle)
	assert.Equal(t, "899.99", saved.PriceUnit.StringFixed(2))

	fetched, err := svc.FindByID(ctx, saved.ProductID)
	require.NoError(t, err)
	assert.Equal(t, saved, fetched)
	require.NotNil(t, fetched.Category)
	assert.Equal(t, int64(1), fetched.Category.CategoryID)
	assert.Equal(t, "Electronics", fetched.Category.CategoryTitle)
}

func TestProductService_SaveIgnoresSuppliedIdentity(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	input := laptopHP()
	input.ProductID = 77
	saved, err := svc.Save(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ProductID)

	_, err = svc.FindByID(ctx, 77)
	assert.ErrorIs(t, err, domainerr.ErrNotFound)
}

func TestProductService_SaveZeroPrice(t *testing.T) {
	svc, _ := newCatalog(t)

	input := laptopHP()
	input.ProductTitle = "Free Sample"
	input.PriceUnit = decimal.Zero
	input.Quantity = 100
	saved, err := svc.Save(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, saved.PriceUnit.IsZero())
}

func TestProductService_SaveRejectsMissingCategory(t *testing.T) {
	svc, _ := newCatalog(t)

	input := laptopHP()
	input.Category = nil
	_, err := svc.Save(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrMissingCategory)
}

func TestProductService_IdempotentRead(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()
	saved, err := svc.Save(ctx, laptopHP())
	require.NoError(t, err)

	first, err := svc.FindByID(ctx, saved.ProductID)
	require.NoError(t, err)
	second, err := svc.FindByID(ctx, saved.ProductID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestProductService_FindAllRemovesDuplicates(t *testing.T) {
	e := &domain.Product{ID: 1, Title: "Laptop Dell", PriceUnit: decimal.RequireFromString("999.99"), Quantity: 10, CategoryID: 1}
	f := &domain.Product{ID: 2, Title: "Mouse Logitech", PriceUnit: decimal.RequireFromString("29.99"), Quantity: 50, CategoryID: 1}
	repo := &scriptedProductRepo{listing: []*domain.Product{e, e, f}}
	categories := catalogmemory.NewCategoryRepository()
	_, err := categories.Save(context.Background(), &domain.Category{Title: "Electronics"})
	require.NoError(t, err)

	svc := NewProductService(repo, categories)
	result, err := svc.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Laptop Dell", result[0].ProductTitle)
	assert.Equal(t, "Mouse Logitech", result[1].ProductTitle)
	assert.Equal(t, "Electronics", result[1].Category.CategoryTitle)
}

func TestProductService_FindAllStructuralDuplicatesWithoutIdentity(t *testing.T) {
	a := &domain.Product{Title: "Cable", PriceUnit: decimal.RequireFromString("5.00"), CategoryID: 1}
	b := &domain.Product{Title: "Cable", PriceUnit: decimal.RequireFromString("5"), CategoryID: 1}
	c := &domain.Product{Title: "Adapter", PriceUnit: decimal.RequireFromString("5"), CategoryID: 1}
	svc := NewProductService(&scriptedProductRepo{listing: []*domain.Product{a, b, c}}, catalogmemory.NewCategoryRepository())

	result, err := svc.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Cable", result[0].ProductTitle)
	assert.Equal(t, "Adapter", result[1].ProductTitle)
}

func TestProductService_FindAllEmptyStore(t *testing.T) {
	svc, _ := newCatalog(t)
	result, err := svc.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestProductService_NotFoundContract(t *testing.T) {
	repo := &scriptedProductRepo{}
	svc := NewProductService(repo, catalogmemory.NewCategoryRepository())
	ctx := context.Background()

	_, err := svc.FindByID(ctx, 999999)
	require.ErrorIs(t, err, domainerr.ErrNotFound)
	assert.Contains(t, err.Error(), "999999")

	err = svc.DeleteByID(ctx, 999999)
	require.ErrorIs(t, err, domainerr.ErrNotFound)
	assert.Contains(t, err.Error(), "999999")
	assert.Empty(t, repo.deleted)
}

func TestProductService_DeleteExisting(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()
	saved, err := svc.Save(ctx, laptopHP())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteByID(ctx, saved.ProductID))
	_, err = svc.FindByID(ctx, saved.ProductID)
	assert.ErrorIs(t, err, domainerr.ErrNotFound)
}

func TestProductService_UpdateReplacesNotMerges(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()
	saved, err := svc.Save(ctx, laptopHP())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, types.ProductDTO{
		ProductID:    saved.ProductID,
		ProductTitle: "Laptop HP EliteBook",
		Category:     &types.CategoryDTO{CategoryID: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, "Laptop HP EliteBook", updated.ProductTitle)
	assert.Empty(t, updated.SKU)
	assert.Empty(t, updated.ImageURL)
	assert.True(t, updated.PriceUnit.IsZero())
	assert.Zero(t, updated.Quantity)

	fetched, err := svc.FindByID(ctx, saved.ProductID)
	require.NoError(t, err)
	assert.Equal(t, updated, fetched)
}

func TestProductService_UpdateRequiresExistingIdentity(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, laptopHP())
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, ErrMissingIdentity)

	missing := laptopHP()
	missing.ProductID = 404
	_, err = svc.Update(ctx, missing)
	require.ErrorIs(t, err, domainerr.ErrNotFound)
	assert.Contains(t, err.Error(), "404")
}

func TestProductService_PersistenceFailurePropagates(t *testing.T) {
	boom := errors.New("insert or update on table \"products\" violates foreign key constraint")
	svc := NewProductService(&scriptedProductRepo{saveErr: boom}, catalogmemory.NewCategoryRepository())

	_, err := svc.Save(context.Background(), laptopHP())
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrInvalidInput)
	assert.NotErrorIs(t, err, domainerr.ErrNotFound)
}

func TestProductService_DanglingCategoryKeepsIdentity(t *testing.T) {
	svc := NewProductService(catalogmemory.NewProductRepository(), catalogmemory.NewCategoryRepository())
	input := laptopHP()
	input.Category = &types.CategoryDTO{CategoryID: 8}

	saved, err := svc.Save(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, types.CategoryDTO{CategoryID: 8}, *saved.Category)
}
