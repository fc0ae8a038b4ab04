package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Tables lists the managed tables, dependants first.
var Tables = []string{"order_idempotency_keys", "orders", "carts", "products", "categories"}

// Run applies the schema for the catalog and orders contexts. The repository
// adapters never migrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&categoryRecord{},
		&productRecord{},
		&cartRecord{},
		&orderRecord{},
		&orderIdempotencyRecord{},
	)
}

// Category schema mirrors the catalog persistence adapter.
type categoryRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Title     string    `gorm:"column:title;size:255"`
	ImageURL  string    `gorm:"column:image_url;size:1024"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (categoryRecord) TableName() string { return "categories" }

// Product schema mirrors the catalog persistence adapter.
type productRecord struct {
	ID         int64           `gorm:"primaryKey;column:id"`
	Title      string          `gorm:"column:title;size:255"`
	ImageURL   string          `gorm:"column:image_url;size:1024"`
	SKU        string          `gorm:"column:sku;size:64;index"`
	PriceUnit  decimal.Decimal `gorm:"column:price_unit;type:decimal(10,2);not null;default:0"`
	Quantity   int32           `gorm:"column:quantity;not null;default:0"`
	CategoryID int64           `gorm:"column:category_id;not null;index"`
	Category   categoryRecord  `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Cart schema mirrors the orders persistence adapter.
type cartRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	UserID    int64     `gorm:"column:user_id;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (cartRecord) TableName() string { return "carts" }

// Order schema mirrors the orders persistence adapter.
type orderRecord struct {
	ID          int64           `gorm:"primaryKey;column:id"`
	OrderDate   time.Time       `gorm:"column:order_date;index"`
	Description string          `gorm:"column:description;size:1024"`
	Fee         decimal.Decimal `gorm:"column:fee;type:decimal(10,2);not null;default:0"`
	CartID      int64           `gorm:"column:cart_id;not null;index"`
	Cart        cartRecord      `gorm:"foreignKey:CartID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Idempotency keys outlive the orders they point at, so there is no foreign
// key. An order_id of zero marks a reservation still in flight.
type orderIdempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128"`
	OrderID     int64     `gorm:"column:order_id;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (orderIdempotencyRecord) TableName() string { return "order_idempotency_keys" }
