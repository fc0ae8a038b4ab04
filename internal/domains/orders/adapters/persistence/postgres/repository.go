package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
)

var (
	_ ports.OrderRepository = (*OrderRepository)(nil)
	_ ports.CartRepository  = (*CartRepository)(nil)
)

// orderRecord maps the order entity to a relational table.
type orderRecord struct {
	ID          int64           `gorm:"primaryKey;column:id"`
	OrderDate   time.Time       `gorm:"column:order_date"`
	Description string          `gorm:"column:description"`
	Fee         decimal.Decimal `gorm:"column:fee;type:decimal(10,2)"`
	CartID      int64           `gorm:"column:cart_id"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type cartRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	UserID    int64     `gorm:"column:user_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (cartRecord) TableName() string { return "carts" }

// OrderRepository persists orders using GORM.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Save inserts or replaces an order.
func (r *OrderRepository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := orderRecord{
		ID:          order.ID,
		OrderDate:   order.OrderDate.UTC(),
		Description: order.Description,
		Fee:         order.Fee,
		CartID:      order.CartID,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"order_date", "description", "fee", "cart_id", "updated_at"}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, record.ID)
}

func (r *OrderRepository) Delete(ctx context.Context, order *domain.Order) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if order == nil {
		return errors.New("order is nil")
	}
	result := r.db.WithContext(ctx).Delete(&orderRecord{}, order.ID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("order repository not configured")
	}
	return nil
}

// CartRepository persists carts using GORM.
type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) FindAll(ctx context.Context) ([]*domain.Cart, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []cartRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	carts := make([]*domain.Cart, 0, len(records))
	for i := range records {
		carts = append(carts, &domain.Cart{ID: records[i].ID, UserID: records[i].UserID})
	}
	return carts, nil
}

func (r *CartRepository) FindByID(ctx context.Context, id int64) (*domain.Cart, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record cartRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return &domain.Cart{ID: record.ID, UserID: record.UserID}, nil
}

func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, errors.New("cart is nil")
	}
	record := cartRecord{ID: cart.ID, UserID: cart.UserID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "updated_at"}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, record.ID)
}

// Delete removes a cart. The database refuses while orders reference it.
func (r *CartRepository) Delete(ctx context.Context, cart *domain.Cart) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if cart == nil {
		return errors.New("cart is nil")
	}
	result := r.db.WithContext(ctx).Delete(&cartRecord{}, cart.ID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *CartRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("cart repository not configured")
	}
	return nil
}

func (r orderRecord) toDomain() *domain.Order {
	return &domain.Order{
		ID:          r.ID,
		OrderDate:   r.OrderDate.UTC(),
		Description: r.Description,
		Fee:         r.Fee,
		CartID:      r.CartID,
	}
}
