package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore persists order idempotency keys through GORM.
type IdempotencyStore struct {
	db     *gorm.DB
	now    func() time.Time
	expiry time.Duration
}

func NewIdempotencyStore(db *gorm.DB) *IdempotencyStore {
	return &IdempotencyStore{db: db, now: time.Now, expiry: ports.DefaultReservationExpiry}
}

// WithClock overrides the time source for deterministic testing.
func (s *IdempotencyStore) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Get loads a record by key, returning nil when absent.
func (s *IdempotencyStore) Get(ctx context.Context, key string) (*ports.IdempotencyRecord, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record idempotencyRecord
	if err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toPortRecord(&record), nil
}

// Reserve inserts a pending row for the key. When the key exists, an expired
// pending row is taken over; anything else is compared against the hash.
func (s *IdempotencyStore) Reserve(ctx context.Context, key, requestHash string) (*ports.IdempotencyRecord, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	dbRecord := idempotencyRecord{
		Key:         key,
		RequestHash: requestHash,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "key"}}, DoNothing: true}).
		Create(&dbRecord)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 {
		return toPortRecord(&dbRecord), nil
	}

	res = s.db.WithContext(ctx).Model(&idempotencyRecord{}).
		Where("key = ? AND order_id = 0 AND updated_at <= ?", key, now.Add(-s.expiry)).
		Updates(map[string]any{"request_hash": requestHash, "created_at": now, "updated_at": now})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 {
		return toPortRecord(&dbRecord), nil
	}

	existing, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errors.New("idempotency key vanished after conflict")
	}
	if existing.RequestHash != requestHash {
		return existing, ports.ErrIdempotencyConflict
	}
	if existing.Pending() {
		return existing, ports.ErrIdempotencyInProgress
	}
	return existing, nil
}

// Complete binds a pending key to its order.
func (s *IdempotencyStore) Complete(ctx context.Context, key string, orderID int64) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Model(&idempotencyRecord{}).
		Where("key = ? AND order_id = 0", key).
		Updates(map[string]any{"order_id": orderID, "updated_at": s.now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	existing, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	switch {
	case existing == nil:
		return fmt.Errorf("idempotency key %q: %w", key, ports.ErrNotFound)
	case existing.OrderID != orderID:
		return ports.ErrIdempotencyConflict
	}
	return nil
}

// Release deletes the key while it is still pending.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Where("key = ? AND order_id = 0", key).Delete(&idempotencyRecord{}).Error
}

func (s *IdempotencyStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres idempotency store not configured")
	}
	return nil
}

type idempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key"`
	RequestHash string    `gorm:"column:request_hash"`
	OrderID     int64     `gorm:"column:order_id"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (idempotencyRecord) TableName() string { return "order_idempotency_keys" }

func toPortRecord(rec *idempotencyRecord) *ports.IdempotencyRecord {
	if rec == nil {
		return nil
	}
	return &ports.IdempotencyRecord{
		Key:         rec.Key,
		RequestHash: rec.RequestHash,
		OrderID:     rec.OrderID,
		CreatedAt:   rec.CreatedAt.UTC(),
		UpdatedAt:   rec.UpdatedAt.UTC(),
	}
}
