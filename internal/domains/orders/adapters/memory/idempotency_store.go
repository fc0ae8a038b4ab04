package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore keeps idempotency keys in process memory.
type IdempotencyStore struct {
	mu      sync.RWMutex
	records map[string]ports.IdempotencyRecord
	now     func() time.Time
	expiry  time.Duration
}

func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{
		records: map[string]ports.IdempotencyRecord{},
		now:     time.Now,
		expiry:  ports.DefaultReservationExpiry,
	}
}

// WithClock overrides the time source for deterministic testing.
func (s *IdempotencyStore) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *IdempotencyStore) Get(_ context.Context, key string) (*ports.IdempotencyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (s *IdempotencyStore) Reserve(_ context.Context, key, requestHash string) (*ports.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	if existing, ok := s.records[key]; ok && !s.abandoned(existing, now) {
		if existing.RequestHash != requestHash {
			return &existing, ports.ErrIdempotencyConflict
		}
		if existing.Pending() {
			return &existing, ports.ErrIdempotencyInProgress
		}
		return &existing, nil
	}

	record := ports.IdempotencyRecord{Key: key, RequestHash: requestHash, CreatedAt: now, UpdatedAt: now}
	s.records[key] = record
	return &record, nil
}

func (s *IdempotencyStore) Complete(_ context.Context, key string, orderID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[key]
	if !ok {
		return fmt.Errorf("idempotency key %q: %w", key, ports.ErrNotFound)
	}
	if !record.Pending() {
		if record.OrderID == orderID {
			return nil
		}
		return ports.ErrIdempotencyConflict
	}
	record.OrderID = orderID
	record.UpdatedAt = s.now().UTC()
	s.records[key] = record
	return nil
}

func (s *IdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record, ok := s.records[key]; ok && record.Pending() {
		delete(s.records, key)
	}
	return nil
}

// Reset drops every stored key.
func (s *IdempotencyStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = map[string]ports.IdempotencyRecord{}
}

func (s *IdempotencyStore) abandoned(record ports.IdempotencyRecord, now time.Time) bool {
	return record.Pending() && now.Sub(record.UpdatedAt) >= s.expiry
}
