// Package postgres persists the catalog through GORM. The same adapter runs
// against PostgreSQL and SQLite.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
)

var (
	_ ports.ProductRepository  = (*ProductRepository)(nil)
	_ ports.CategoryRepository = (*CategoryRepository)(nil)
)

type categoryRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Title     string    `gorm:"column:title"`
	ImageURL  string    `gorm:"column:image_url"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (categoryRecord) TableName() string { return "categories" }

type productRecord struct {
	ID         int64           `gorm:"primaryKey;column:id"`
	Title      string          `gorm:"column:title"`
	ImageURL   string          `gorm:"column:image_url"`
	SKU        string          `gorm:"column:sku"`
	PriceUnit  decimal.Decimal `gorm:"column:price_unit;type:decimal(10,2)"`
	Quantity   int32           `gorm:"column:quantity"`
	CategoryID int64           `gorm:"column:category_id"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// ProductRepository persists products. Run migrations before use.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// FindAll returns every product ordered by identity.
func (r *ProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Save inserts a product without identity and replaces the row otherwise.
func (r *ProductRepository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toProductRecord(product)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "image_url", "sku", "price_unit", "quantity", "category_id", "updated_at"}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, record.ID)
}

func (r *ProductRepository) Delete(ctx context.Context, product *domain.Product) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if product == nil {
		return errors.New("product is nil")
	}
	result := r.db.WithContext(ctx).Delete(&productRecord{}, product.ID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("product repository not configured")
	}
	return nil
}

// CategoryRepository persists categories. Run migrations before use.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []categoryRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	categories := make([]*domain.Category, 0, len(records))
	for i := range records {
		categories = append(categories, records[i].toDomain())
	}
	return categories, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record categoryRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *CategoryRepository) Save(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if category == nil {
		return nil, errors.New("category is nil")
	}
	record := categoryRecord{ID: category.ID, Title: category.Title, ImageURL: category.ImageURL}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "image_url", "updated_at"}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, record.ID)
}

// Delete removes a category. Referencing products make the database refuse.
func (r *CategoryRepository) Delete(ctx context.Context, category *domain.Category) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if category == nil {
		return errors.New("category is nil")
	}
	result := r.db.WithContext(ctx).Delete(&categoryRecord{}, category.ID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("category repository not configured")
	}
	return nil
}

func toProductRecord(p *domain.Product) productRecord {
	return productRecord{
		ID:         p.ID,
		Title:      p.Title,
		ImageURL:   p.ImageURL,
		SKU:        p.SKU,
		PriceUnit:  p.PriceUnit,
		Quantity:   p.Quantity,
		CategoryID: p.CategoryID,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:         r.ID,
		Title:      r.Title,
		ImageURL:   r.ImageURL,
		SKU:        r.SKU,
		PriceUnit:  r.PriceUnit,
		Quantity:   r.Quantity,
		CategoryID: r.CategoryID,
	}
}

func (r categoryRecord) toDomain() *domain.Category {
	return &domain.Category{ID: r.ID, Title: r.Title, ImageURL: r.ImageURL}
}
