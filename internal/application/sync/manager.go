package sync

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/akib4796/omnishop-manager-sub002/internal/domain/sale"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Manager orchestrates synchronization between the durable local queue and
// the authoritative remote store. It is an explicitly constructed service;
// call sites receive it by reference rather than through global access.
//
// At most one sync pass runs at a time. Concurrent SyncAll calls are
// rejected immediately, never queued. The in-flight flag is released on
// every exit path, so a failed pass never locks out future syncs.
type Manager struct {
	local    sale.LocalStore
	remote   sale.RemoteStore
	auth     sale.AuthProvider
	notifier *Notifier
	logger   *zap.Logger
	syncing  atomic.Bool
}

// NewManager creates a sync manager with its dependencies injected
func NewManager(
	local sale.LocalStore,
	remote sale.RemoteStore,
	auth sale.AuthProvider,
	notifier *Notifier,
	logger *zap.Logger,
) *Manager {
	return &Manager{
		local:    local,
		remote:   remote,
		auth:     auth,
		notifier: notifier,
		logger:   logger,
	}
}

// Subscribe registers a status listener and returns its unsubscribe function
func (m *Manager) Subscribe(fn Listener) func() {
	return m.notifier.Subscribe(fn)
}

// Syncing reports whether a sync pass is currently in flight
func (m *Manager) Syncing() bool {
	return m.syncing.Load()
}

// SyncAll runs one full sync pass: push the pending-sale queue, then pull
// the reference snapshot. It is a no-op when a pass is already running.
// Failures are reported through the status stream; the surrounding
// application is never expected to crash on a sync failure.
func (m *Manager) SyncAll(ctx context.Context) error {
	if !m.syncing.CompareAndSwap(false, true) {
		m.logger.Debug("sync pass already in flight, skipping")
		return nil
	}
	defer m.syncing.Store(false)

	m.notifier.Notify(StatusSyncing, "")

	principal, err := m.auth.CurrentUser(ctx)
	if err != nil {
		err = fmt.Errorf("resolve principal: %w", err)
		m.notifier.Notify(StatusError, err.Error())
		return err
	}
	m.logger.Info("sync pass started",
		zap.String("user_id", principal.UserID.String()),
		zap.String("tenant_id", principal.TenantID.String()),
	)

	if err := m.syncPendingSales(ctx); err != nil {
		m.notifier.Notify(StatusError, err.Error())
		return err
	}

	if err := m.syncFromServer(ctx); err != nil {
		m.notifier.Notify(StatusError, err.Error())
		return err
	}

	m.notifier.Notify(StatusSuccess, "")
	m.logger.Info("sync pass completed")
	return nil
}

// syncPendingSales drains the unsynced queue against the remote store.
// Entries are pushed concurrently with settle-all semantics: one entry's
// failure never cancels its siblings. Failed entries simply stay unsynced
// and are retried verbatim on the next pass; the persisted flag is the
// only retry state.
func (m *Manager) syncPendingSales(ctx context.Context) error {
	entries, err := m.local.PendingSales(ctx)
	if err != nil {
		return fmt.Errorf("read pending sales: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	errs := make([]error, len(entries))
	for i := range entries {
		wg.Add(1)
		go func(i int, pending sale.PendingSale) {
			defer wg.Done()
			errs[i] = m.pushSale(ctx, pending)
		}(i, entries[i])
	}
	wg.Wait()

	succeeded := 0
	for i, pushErr := range errs {
		if pushErr == nil {
			succeeded++
			continue
		}
		m.logger.Warn("pending sale failed to sync, will retry next pass",
			zap.String("sale_id", entries[i].ID.String()),
			zap.Error(pushErr),
		)
	}

	m.notifier.Notify(StatusSyncing, fmt.Sprintf("pushed %d of %d pending sales", succeeded, len(entries)))
	return nil
}

// pushSale writes one queued sale to the remote store, adjusts remote
// stock for each line item, and only then marks the local entry synced.
// The remote insert is idempotent on the sale id, so a retried entry that
// already landed is absorbed as a duplicate no-op.
func (m *Manager) pushSale(ctx context.Context, pending sale.PendingSale) error {
	if err := m.remote.InsertSyncedSale(ctx, pending); err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	for _, item := range pending.Sale.Items {
		// Read-then-write; concurrent writers to the same product can lose
		// updates. Kept as-is pending a server-side atomic decrement.
		stock, err := m.remote.ProductStock(ctx, item.ProductID)
		if err != nil {
			return fmt.Errorf("read stock for product %s: %w", item.ProductID, err)
		}
		if err := m.remote.WriteProductStock(ctx, item.ProductID, stock.Sub(item.Quantity)); err != nil {
			return fmt.Errorf("write stock for product %s: %w", item.ProductID, err)
		}
	}

	if err := m.local.MarkSaleSynced(ctx, pending.ID); err != nil {
		return fmt.Errorf("mark sale synced: %w", err)
	}
	return nil
}

// syncFromServer pulls the full reference snapshot and overwrites the local
// cache wholesale. The cache is disposable; on failure the previously
// cached data stays in place, stale but intact.
func (m *Manager) syncFromServer(ctx context.Context) error {
	products, err := m.remote.ListProducts(ctx, true)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	categories, err := m.remote.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	customers, err := m.remote.ListCustomers(ctx)
	if err != nil {
		return fmt.Errorf("list customers: %w", err)
	}

	if err := m.local.CacheProducts(ctx, products); err != nil {
		return fmt.Errorf("cache products: %w", err)
	}
	if err := m.local.CacheCategories(ctx, categories); err != nil {
		return fmt.Errorf("cache categories: %w", err)
	}
	if err := m.local.CacheCustomers(ctx, customers); err != nil {
		return fmt.Errorf("cache customers: %w", err)
	}

	m.logger.Info("reference cache refreshed",
		zap.Int("products", len(products)),
		zap.Int("categories", len(categories)),
		zap.Int("customers", len(customers)),
	)
	return nil
}

// DecrementStockLocally projects a sale onto the cached stock figure for
// immediate feedback while offline. It is best effort and eventually
// corrected: the authoritative value arrives with the next pull.
func (m *Manager) DecrementStockLocally(ctx context.Context, productID uuid.UUID, quantity decimal.Decimal) error {
	stock, err := m.remote.ProductStock(ctx, productID)
	if err != nil {
		return fmt.Errorf("read stock for product %s: %w", productID, err)
	}
	if err := m.local.UpdateCachedProductStock(ctx, productID, stock.Sub(quantity)); err != nil {
		return fmt.Errorf("update cached stock for product %s: %w", productID, err)
	}
	return nil
}
