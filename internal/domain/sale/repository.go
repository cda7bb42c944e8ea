package sale

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LocalStore is the durable local cache and pending-sale queue the sync
// engine drains and refreshes. Implementations own PendingSale and the
// cached reference collections; the sync engine holds no state of its own.
type LocalStore interface {
	// EnqueueSale appends a locally completed sale to the queue
	EnqueueSale(ctx context.Context, pending *PendingSale) error
	// PendingSales returns only entries that have not been synced yet
	PendingSales(ctx context.Context) ([]PendingSale, error)
	// MarkSaleSynced flips the entry's synced flag, exactly once
	MarkSaleSynced(ctx context.Context, id uuid.UUID) error

	// CacheProducts replaces the cached product collection wholesale
	CacheProducts(ctx context.Context, products []Product) error
	// CacheCategories replaces the cached category collection wholesale
	CacheCategories(ctx context.Context, categories []Category) error
	// CacheCustomers replaces the cached customer collection wholesale
	CacheCustomers(ctx context.Context, customers []Customer) error
	// UpdateCachedProductStock overwrites one cached product's stock projection
	UpdateCachedProductStock(ctx context.Context, productID uuid.UUID, newStock decimal.Decimal) error
}

// RemoteStore is the narrow contract over the authoritative backend.
// Inserting a sale whose id already exists must be a no-op, which makes
// the push phase idempotent under wholesale retry.
type RemoteStore interface {
	InsertSyncedSale(ctx context.Context, pending PendingSale) error
	ProductStock(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error)
	WriteProductStock(ctx context.Context, productID uuid.UUID, newStock decimal.Decimal) error

	ListProducts(ctx context.Context, withCategory bool) ([]Product, error)
	ListCategories(ctx context.Context) ([]Category, error)
	ListCustomers(ctx context.Context) ([]Customer, error)
}

// AuthProvider resolves the current authenticated principal.
// Returns shared.ErrUnauthorized when there is no valid session.
type AuthProvider interface {
	CurrentUser(ctx context.Context) (*Principal, error)
}
