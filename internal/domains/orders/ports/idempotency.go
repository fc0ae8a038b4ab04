package ports

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrIdempotencyConflict indicates the same key was used with a different order payload.
	ErrIdempotencyConflict = errors.New("idempotency conflict")
	// ErrIdempotencyInProgress indicates another request holds the key and has not finished yet.
	ErrIdempotencyInProgress = errors.New("idempotency key in progress")
)

// IdempotencyRecord ties a client-supplied key to the order it created. A
// reserved key has no order yet.
type IdempotencyRecord struct {
	Key         string
	RequestHash string
	OrderID     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Pending reports whether the key is reserved but not yet bound to an order.
func (r IdempotencyRecord) Pending() bool { return r.OrderID == 0 }

// IdempotencyStore persists idempotency keys so order retries can be replayed safely.
type IdempotencyStore interface {
	// Get returns the stored record for the key, or nil when unknown.
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	// Reserve claims an unknown key for the request hash and returns the new
	// pending record. A completed key with the same hash is returned as is. A
	// different hash yields ErrIdempotencyConflict and a live reservation with
	// the same hash yields ErrIdempotencyInProgress. Reservations left pending
	// past the store's expiry may be claimed again.
	Reserve(ctx context.Context, key, requestHash string) (*IdempotencyRecord, error)
	// Complete binds a pending key to the order it produced.
	Complete(ctx context.Context, key string, orderID int64) error
	// Release drops a pending reservation so the key can be retried. Completed
	// keys are left untouched.
	Release(ctx context.Context, key string) error
}

// DefaultReservationExpiry bounds how long a pending key blocks retries when
// its holder never completes or releases it.
const DefaultReservationExpiry = 5 * time.Minute
